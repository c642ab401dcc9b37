package controllers

import (
	"errors"
	"net/http"

	"foodgram/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TagController struct {
	db *gorm.DB
}

func NewTagController(db *gorm.DB) *TagController {
	return &TagController{db: db}
}

// GET /api/tags - без пагинации
func (tc *TagController) List(c *gin.Context) {
	var tags []models.Tag
	if err := tc.db.WithContext(c.Request.Context()).Order("id").Find(&tags).Error; err != nil {
		internalError(c, err, "Ошибка получения тегов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": tags, "success": true, "error": nil})
}

// GET /api/tags/:id
func (tc *TagController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var tag models.Tag
	if err := tc.db.WithContext(c.Request.Context()).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Тег не найден"})
			return
		}
		internalError(c, err, "Ошибка получения тега")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": tag, "success": true, "error": nil})
}

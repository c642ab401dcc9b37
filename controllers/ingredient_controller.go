package controllers

import (
	"errors"
	"net/http"
	"strings"

	"foodgram/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IngredientController struct {
	db *gorm.DB
}

func NewIngredientController(db *gorm.DB) *IngredientController {
	return &IngredientController{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// GET /api/ingredients?name=<начало названия> - без пагинации
func (ic *IngredientController) List(c *gin.Context) {
	query := ic.db.WithContext(c.Request.Context()).Model(&models.Ingredient{})
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likeEscaper.Replace(strings.ToLower(name))+"%")
	}
	var ingredients []models.Ingredient
	if err := query.Order("name, id").Find(&ingredients).Error; err != nil {
		internalError(c, err, "Ошибка получения ингредиентов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": ingredients, "success": true, "error": nil})
}

// GET /api/ingredients/:id
func (ic *IngredientController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var ingredient models.Ingredient
	if err := ic.db.WithContext(c.Request.Context()).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Ингредиент не найден"})
			return
		}
		internalError(c, err, "Ошибка получения ингредиента")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": ingredient, "success": true, "error": nil})
}

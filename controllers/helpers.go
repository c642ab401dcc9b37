package controllers

import (
	"net/http"

	"foodgram/models"
	"foodgram/utils"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) uint {
	return uint(c.GetInt("user_id"))
}

func isSuperuser(c *gin.Context) bool {
	return c.GetString("role") == models.RoleAdmin
}

// pathID читает :id. Невалидный id - 404, как и несуществующий объект.
func pathID(c *gin.Context) (uint, bool) {
	id := utils.ParseIDSafe(c.Param("id"))
	if id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Страница не найдена"})
		return 0, false
	}
	return id, true
}

func internalError(c *gin.Context, err error, context string) {
	utils.LogError(err, context)
	c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": context})
}

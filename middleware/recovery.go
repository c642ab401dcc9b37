package middleware

import (
	"net/http"

	"foodgram/utils"

	"github.com/gin-gonic/gin"
)

func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.LogPanic(recovered, "HTTP Request "+c.Request.Method+" "+c.Request.URL.Path)

		c.JSON(http.StatusInternalServerError, gin.H{
			"result":  nil,
			"success": false,
			"error":   "Internal server error",
		})
		c.Abort()
	})
}

package middleware

import (
	"time"

	"foodgram/utils"

	"github.com/gin-gonic/gin"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := utils.Logger.Info()
		if status >= 500 {
			event = utils.Logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("user_id", c.GetInt("user_id")).
			Msg("request")
	}
}

package middleware

import (
	"net/http"
	"strings"

	"foodgram/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken принимает "Bearer <jwt>" и "Token <jwt>"
func bearerToken(header string) (string, bool) {
	for _, prefix := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(header, prefix) {
			token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
			return token, token != ""
		}
	}
	return "", false
}

// authenticate проверяет токен и кладет user_id, role, token в контекст
func authenticate(c *gin.Context, secret, token string) bool {
	if utils.IsTokenBlacklisted(c.Request.Context(), utils.GetRedis(), token) {
		c.JSON(http.StatusUnauthorized, gin.H{"result": nil, "success": false, "error": "Token has been revoked"})
		c.Abort()
		return false
	}

	claims, err := utils.ParseJWT(token, secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"result": nil, "success": false, "error": "Invalid or expired token"})
		c.Abort()
		return false
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"result": nil, "success": false, "error": "Invalid token payload"})
		c.Abort()
		return false
	}
	role, _ := claims["role"].(string)

	c.Set("user_id", int(userID))
	c.Set("role", role)
	c.Set("token", token)
	return true
}

// JWTAuthMiddleware пропускает только авторизованных
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"result": nil, "success": false, "error": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}
		if !authenticate(c, secret, token) {
			return
		}
		c.Next()
	}
}

// OptionalJWTMiddleware для публичных эндпоинтов: без заголовка запрос идет анонимно,
// с битым или отозванным токеном - 401.
func OptionalJWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := bearerToken(header)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"result": nil, "success": false, "error": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}
		if !authenticate(c, secret, token) {
			return
		}
		c.Next()
	}
}

package controllers

import (
	"errors"
	"net/http"
	"strings"

	"foodgram/models"
	"foodgram/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type AuthController struct {
	db        *gorm.DB
	rdb       *redis.Client
	jwtSecret string
}

func NewAuthController(db *gorm.DB, rdb *redis.Client, jwtSecret string) *AuthController {
	return &AuthController{db: db, rdb: rdb, jwtSecret: jwtSecret}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/token/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Укажите email и пароль"})
		return
	}
	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if ok, msg := utils.CanAttemptLogin(ctx, ac.rdb, email); !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"result": nil, "success": false, "error": msg})
		return
	}

	var user models.User
	err := ac.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err, "Ошибка поиска пользователя")
		return
	}
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		utils.MarkLoginFailed(ctx, ac.rdb, email)
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Неверный email или пароль"})
		return
	}
	utils.ResetLoginFailures(ctx, ac.rdb, email)

	token, err := utils.GenerateJWT(user.ID, user.Role, ac.jwtSecret)
	if err != nil {
		internalError(c, err, "Ошибка генерации токена")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"auth_token": token}, "success": true, "error": nil})
}

// POST /api/auth/token/logout - токен попадает в черный список до истечения
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString("token")
	claims, err := utils.ParseJWT(token, ac.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"result": nil, "success": false, "error": "Invalid or expired token"})
		return
	}
	if err := utils.BlacklistToken(c.Request.Context(), ac.rdb, token, utils.TokenTTL(claims)); err != nil {
		internalError(c, err, "Ошибка выхода")
		return
	}
	c.Status(http.StatusNoContent)
}

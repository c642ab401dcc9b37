package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"foodgram/config"
	"foodgram/models"
	"foodgram/services"
	"foodgram/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EmailSender отправляет письмо, nil - почта не настроена
type EmailSender func(to, subject, body string) error

type UserController struct {
	db        *gorm.DB
	present   presenter
	sendEmail EmailSender
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	uc := &UserController{db: db, present: presenter{db: db, media: services.NewMediaStore(cfg.MediaRoot, cfg.MediaURL)}}
	if cfg.SMTPHost != "" {
		uc.sendEmail = func(to, subject, body string) error {
			return utils.SendEmail(to, subject, body, cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		}
	}
	return uc
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150,username"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,max=150"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,max=150"`
}

// POST /api/users
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Некорректные данные: " + err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.EqualFold(req.Username, "me") {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Имя пользователя \"me\" недоступно"})
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var taken int64
	if err := uc.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = ? OR username = ?", email, req.Username).
		Count(&taken).Error; err != nil {
		internalError(c, err, "Ошибка проверки пользователя")
		return
	}
	if taken > 0 {
		c.JSON(http.StatusConflict, gin.H{"result": nil, "success": false, "error": "Пользователь с таким email или username уже существует"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		internalError(c, err, "Ошибка хеширования пароля")
		return
	}
	user := models.User{
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
		Role:      models.RoleUser,
	}
	if err := uc.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"result": nil, "success": false, "error": "Пользователь с таким email или username уже существует"})
			return
		}
		internalError(c, err, "Ошибка создания пользователя")
		return
	}

	if uc.sendEmail != nil {
		go func(to, name string) {
			body := fmt.Sprintf("%s, добро пожаловать в Foodgram!", name)
			if err := uc.sendEmail(to, "Foodgram: регистрация", body); err != nil {
				utils.LogError(err, "welcome email to "+to)
			}
		}(user.Email, user.FirstName)
	}

	c.JSON(http.StatusCreated, gin.H{"result": gin.H{
		"email":      user.Email,
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	}, "success": true, "error": nil})
}

// GET /api/users
func (uc *UserController) List(c *gin.Context) {
	ctx := c.Request.Context()
	page := utils.ParsePage(c.Query("page"), c.Query("limit"))

	var total int64
	if err := uc.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		internalError(c, err, "Ошибка получения пользователей")
		return
	}
	var users []models.User
	if err := uc.db.WithContext(ctx).Order("id").Offset(page.Offset()).Limit(page.Size).Find(&users).Error; err != nil {
		internalError(c, err, "Ошибка получения пользователей")
		return
	}
	views, err := uc.present.users(ctx, currentUserID(c), users)
	if err != nil {
		internalError(c, err, "Ошибка получения подписок")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": utils.PageResult(page, total, views, len(views)), "success": true, "error": nil})
}

// GET /api/users/me
func (uc *UserController) Me(c *gin.Context) {
	uc.respondUser(c, currentUserID(c))
}

// GET /api/users/:id
func (uc *UserController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	uc.respondUser(c, id)
}

func (uc *UserController) respondUser(c *gin.Context, id uint) {
	ctx := c.Request.Context()
	var user models.User
	if err := uc.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Пользователь не найден"})
			return
		}
		internalError(c, err, "Ошибка получения пользователя")
		return
	}
	view, err := uc.present.user(ctx, currentUserID(c), user)
	if err != nil {
		internalError(c, err, "Ошибка получения подписок")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": view, "success": true, "error": nil})
}

// POST /api/users/set_password
func (uc *UserController) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Некорректные данные: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	var user models.User
	if err := uc.db.WithContext(ctx).First(&user, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"result": nil, "success": false, "error": "Пользователь не найден"})
		return
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Неверный текущий пароль"})
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": err.Error()})
		return
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		internalError(c, err, "Ошибка хеширования пароля")
		return
	}
	if err := uc.db.WithContext(ctx).Model(&user).Update("password", hash).Error; err != nil {
		internalError(c, err, "Ошибка смены пароля")
		return
	}
	c.Status(http.StatusNoContent)
}

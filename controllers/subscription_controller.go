package controllers

import (
	"context"
	"errors"
	"net/http"

	"foodgram/config"
	"foodgram/models"
	"foodgram/services"
	"foodgram/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubscriptionController struct {
	db      *gorm.DB
	present presenter
}

func NewSubscriptionController(db *gorm.DB, cfg *config.Config) *SubscriptionController {
	return &SubscriptionController{db: db, present: presenter{db: db, media: services.NewMediaStore(cfg.MediaRoot, cfg.MediaURL)}}
}

// subscriptionViews - авторы с последними рецептами, recipesLimit <= 0 - все рецепты
func (sc *SubscriptionController) subscriptionViews(ctx context.Context, authors []models.User, recipesLimit int) ([]SubscriptionView, error) {
	ids := make([]uint, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	recipes, counts, err := services.AuthorRecipes(ctx, sc.db, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	views := make([]SubscriptionView, 0, len(authors))
	for _, a := range authors {
		short := make([]ShortRecipeView, 0, len(recipes[a.ID]))
		for _, r := range recipes[a.ID] {
			short = append(short, sc.present.short(r))
		}
		views = append(views, SubscriptionView{
			UserView:     userView(a, true),
			Recipes:      short,
			RecipesCount: counts[a.ID],
		})
	}
	return views, nil
}

// GET /api/users/subscriptions
func (sc *SubscriptionController) List(c *gin.Context) {
	ctx := c.Request.Context()
	page := utils.ParsePage(c.Query("page"), c.Query("limit"))

	authors, total, err := services.SubscribedAuthors(ctx, sc.db, currentUserID(c), page)
	if err != nil {
		internalError(c, err, "Ошибка получения подписок")
		return
	}
	views, err := sc.subscriptionViews(ctx, authors, utils.ParseIntSafe(c.Query("recipes_limit")))
	if err != nil {
		internalError(c, err, "Ошибка получения рецептов подписок")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": utils.PageResult(page, total, views, len(views)), "success": true, "error": nil})
}

// POST /api/users/:id/subscribe
func (sc *SubscriptionController) Subscribe(c *gin.Context) {
	authorID, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	err := services.Subscribe(ctx, sc.db, currentUserID(c), authorID)
	switch {
	case errors.Is(err, services.ErrSelfSubscription):
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Нельзя подписаться на самого себя"})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Пользователь не найден"})
		return
	case errors.Is(err, services.ErrAlreadySubscribed):
		c.JSON(http.StatusConflict, gin.H{"result": nil, "success": false, "error": "Вы уже подписаны на этого автора"})
		return
	case err != nil:
		internalError(c, err, "Ошибка подписки")
		return
	}

	var author models.User
	if err := sc.db.WithContext(ctx).First(&author, authorID).Error; err != nil {
		internalError(c, err, "Ошибка получения автора")
		return
	}
	views, err := sc.subscriptionViews(ctx, []models.User{author}, utils.ParseIntSafe(c.Query("recipes_limit")))
	if err != nil {
		internalError(c, err, "Ошибка получения рецептов автора")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": views[0], "success": true, "error": nil})
}

// DELETE /api/users/:id/subscribe
func (sc *SubscriptionController) Unsubscribe(c *gin.Context) {
	authorID, ok := pathID(c)
	if !ok {
		return
	}

	err := services.Unsubscribe(c.Request.Context(), sc.db, currentUserID(c), authorID)
	switch {
	case errors.Is(err, services.ErrSelfSubscription):
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Нельзя отписаться от самого себя"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Пользователь не найден"})
	case errors.Is(err, services.ErrNotSubscribed):
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Вы не подписаны на этого автора"})
	case err != nil:
		internalError(c, err, "Ошибка отписки")
	default:
		c.Status(http.StatusNoContent)
	}
}

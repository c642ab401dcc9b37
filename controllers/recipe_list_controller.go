package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"foodgram/config"
	"foodgram/models"
	"foodgram/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecipeListController обслуживает /recipes/:id/favorite и /recipes/:id/shopping_cart,
// один экземпляр на список.
type RecipeListController struct {
	db      *gorm.DB
	list    services.RecipeList
	present presenter
}

func NewRecipeListController(db *gorm.DB, cfg *config.Config, list services.RecipeList) *RecipeListController {
	return &RecipeListController{
		db:      db,
		list:    list,
		present: presenter{db: db, media: services.NewMediaStore(cfg.MediaRoot, cfg.MediaURL)},
	}
}

func (lc *RecipeListController) loadRecipe(c *gin.Context) (*models.Recipe, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}
	var recipe models.Recipe
	if err := lc.db.WithContext(c.Request.Context()).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Рецепт не найден"})
			return nil, false
		}
		internalError(c, err, "Ошибка получения рецепта")
		return nil, false
	}
	return &recipe, true
}

// POST /api/recipes/:id/{favorite,shopping_cart}
func (lc *RecipeListController) Add(c *gin.Context) {
	recipe, ok := lc.loadRecipe(c)
	if !ok {
		return
	}
	err := services.AddToList(c.Request.Context(), lc.db, lc.list, currentUserID(c), recipe.ID)
	if errors.Is(err, services.ErrAlreadyInList) {
		c.JSON(http.StatusConflict, gin.H{"result": nil, "success": false, "error": fmt.Sprintf("Рецепт \"%s\" уже добавлен", recipe.Name)})
		return
	}
	if err != nil {
		internalError(c, err, "Ошибка добавления рецепта в "+lc.list.String())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": lc.present.short(*recipe), "success": true, "error": nil})
}

// DELETE /api/recipes/:id/{favorite,shopping_cart}
func (lc *RecipeListController) Remove(c *gin.Context) {
	recipe, ok := lc.loadRecipe(c)
	if !ok {
		return
	}
	err := services.RemoveFromList(c.Request.Context(), lc.db, lc.list, currentUserID(c), recipe.ID)
	if errors.Is(err, services.ErrNotInList) {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": fmt.Sprintf("Рецепта \"%s\" нет в списке", recipe.Name)})
		return
	}
	if err != nil {
		internalError(c, err, "Ошибка удаления рецепта из "+lc.list.String())
		return
	}
	c.Status(http.StatusNoContent)
}

package controllers

import (
	"errors"
	"net/http"

	"foodgram/config"
	"foodgram/models"
	"foodgram/services"
	"foodgram/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RecipeController struct {
	db      *gorm.DB
	media   services.MediaStore
	present presenter
}

func NewRecipeController(db *gorm.DB, cfg *config.Config) *RecipeController {
	media := services.NewMediaStore(cfg.MediaRoot, cfg.MediaURL)
	return &RecipeController{db: db, media: media, present: presenter{db: db, media: media}}
}

// GET /api/recipes - новые сверху, фильтры is_favorited, is_in_shopping_cart, author, tags
func (rc *RecipeController) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	page := utils.ParsePage(c.Query("page"), c.Query("limit"))

	query, err := services.ParseRecipeFilter(c.Request.URL.Query()).Apply(ctx, rc.db, userID)
	if err != nil {
		internalError(c, err, "Ошибка фильтрации рецептов")
		return
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		internalError(c, err, "Ошибка получения рецептов")
		return
	}
	var recipes []models.Recipe
	if err := services.PreloadRecipe(query).
		Order("recipes.pub_date DESC, recipes.id DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&recipes).Error; err != nil {
		internalError(c, err, "Ошибка получения рецептов")
		return
	}
	views, err := rc.present.recipes(ctx, userID, recipes)
	if err != nil {
		internalError(c, err, "Ошибка получения рецептов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": utils.PageResult(page, total, views, len(views)), "success": true, "error": nil})
}

// GET /api/recipes/:id
func (rc *RecipeController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	recipe, err := services.LoadRecipe(c.Request.Context(), rc.db, id)
	if err != nil {
		rc.recipeLoadError(c, err)
		return
	}
	rc.respondRecipe(c, http.StatusOK, recipe)
}

// POST /api/recipes
func (rc *RecipeController) Create(c *gin.Context) {
	var in services.RecipeInput
	if !bindRecipeInput(c, &in) {
		return
	}
	if in.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "image: обязательное поле"})
		return
	}
	image, ok := rc.saveImage(c, in.Image)
	if !ok {
		return
	}

	recipe, err := services.CreateRecipe(c.Request.Context(), rc.db, currentUserID(c), in, image)
	if err != nil {
		rc.recipeSaveError(c, err)
		return
	}
	rc.respondRecipe(c, http.StatusCreated, recipe)
}

// PATCH /api/recipes/:id - только автор или админ
func (rc *RecipeController) Update(c *gin.Context) {
	recipe, ok := rc.loadOwnRecipe(c)
	if !ok {
		return
	}
	var in services.RecipeInput
	if !bindRecipeInput(c, &in) {
		return
	}
	image := ""
	if in.Image != "" {
		if image, ok = rc.saveImage(c, in.Image); !ok {
			return
		}
	}

	updated, err := services.UpdateRecipe(c.Request.Context(), rc.db, recipe, in, image)
	if err != nil {
		rc.recipeSaveError(c, err)
		return
	}
	rc.respondRecipe(c, http.StatusOK, updated)
}

// DELETE /api/recipes/:id - только автор или админ
func (rc *RecipeController) Delete(c *gin.Context) {
	recipe, ok := rc.loadOwnRecipe(c)
	if !ok {
		return
	}
	if err := services.DeleteRecipe(c.Request.Context(), rc.db, recipe.ID); err != nil {
		rc.recipeLoadError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rc *RecipeController) loadOwnRecipe(c *gin.Context) (*models.Recipe, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}
	var recipe models.Recipe
	if err := rc.db.WithContext(c.Request.Context()).First(&recipe, id).Error; err != nil {
		rc.recipeLoadError(c, err)
		return nil, false
	}
	if recipe.AuthorID != currentUserID(c) && !isSuperuser(c) {
		c.JSON(http.StatusForbidden, gin.H{"result": nil, "success": false, "error": "Изменять рецепт может только автор"})
		return nil, false
	}
	return &recipe, true
}

// Картинка приходит base64 внутри JSON, поэтому тело ограничено целиком
const maxRecipeBodySize = 10 << 20 // 10 MB

func bindRecipeInput(c *gin.Context, in *services.RecipeInput) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRecipeBodySize)
	if err := c.ShouldBindJSON(in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"result": nil, "success": false, "error": "Слишком большой запрос"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "Некорректные данные: " + err.Error()})
		return false
	}
	return true
}

func (rc *RecipeController) saveImage(c *gin.Context, dataURI string) (string, bool) {
	image, err := rc.media.SaveRecipeImage(dataURI)
	if err != nil {
		if errors.Is(err, services.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "image: " + err.Error()})
			return "", false
		}
		internalError(c, err, "Ошибка сохранения картинки")
		return "", false
	}
	return image, true
}

func (rc *RecipeController) recipeLoadError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Рецепт не найден"})
		return
	}
	internalError(c, err, "Ошибка получения рецепта")
}

func (rc *RecipeController) recipeSaveError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": verr.Error()})
		return
	}
	internalError(c, err, "Ошибка сохранения рецепта")
}

func (rc *RecipeController) respondRecipe(c *gin.Context, status int, recipe *models.Recipe) {
	view, err := rc.present.recipe(c.Request.Context(), currentUserID(c), recipe)
	if err != nil {
		internalError(c, err, "Ошибка получения рецепта")
		return
	}
	c.JSON(status, gin.H{"result": view, "success": true, "error": nil})
}

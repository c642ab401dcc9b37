package services

import (
	"context"
	"fmt"
	"sort"

	"foodgram/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredientInput struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required,min=1"`
}

// RecipeInput - тело создания и редактирования рецепта.
// Image - data URI в base64, при редактировании может быть пустым.
type RecipeInput struct {
	Ingredients []IngredientInput `json:"ingredients" binding:"required,min=1,dive"`
	Tags        []uint            `json:"tags" binding:"required,min=1"`
	Image       string            `json:"image"`
	Name        string            `json:"name" binding:"required,max=200"`
	Text        string            `json:"text" binding:"required"`
	CookingTime int               `json:"cooking_time" binding:"required,min=1"`
}

// ValidationError - ошибка данных клиента, отдается как 400
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// PreloadRecipe подгружает все, что нужно для ответа API
func PreloadRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredient_amounts.id") }).
		Preload("Ingredients.Ingredient")
}

func LoadRecipe(ctx context.Context, db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := PreloadRecipe(db.WithContext(ctx)).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// validateRecipeRelations проверяет, что ингредиенты и теги существуют, а ингредиенты не повторяются
func validateRecipeRelations(tx *gorm.DB, in RecipeInput) ([]models.Tag, error) {
	seen := make(map[uint]bool, len(in.Ingredients))
	ids := make([]uint, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if seen[ing.ID] {
			return nil, &ValidationError{Field: "ingredients", Message: fmt.Sprintf("Ингредиент %d указан несколько раз", ing.ID)}
		}
		seen[ing.ID] = true
		ids = append(ids, ing.ID)
	}
	if missing, err := missingIDs(tx, &models.Ingredient{}, ids); err != nil {
		return nil, err
	} else if missing != 0 {
		return nil, &ValidationError{Field: "ingredients", Message: fmt.Sprintf("Недопустимый первичный ключ %d - объект не существует", missing)}
	}

	tagIDs := uniqueIDs(in.Tags)
	if missing, err := missingIDs(tx, &models.Tag{}, tagIDs); err != nil {
		return nil, err
	} else if missing != 0 {
		return nil, &ValidationError{Field: "tags", Message: fmt.Sprintf("Недопустимый первичный ключ %d - объект не существует", missing)}
	}

	var tags []models.Tag
	if err := tx.Where("id IN ?", tagIDs).Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// missingIDs возвращает первый id из ids, которого нет в таблице model, или 0
func missingIDs(tx *gorm.DB, model interface{}, ids []uint) (uint, error) {
	var found []uint
	if err := tx.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return 0, err
	}
	exists := make(map[uint]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	for _, id := range ids {
		if !exists[id] {
			return id, nil
		}
	}
	return 0, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func amountsFor(recipeID uint, in RecipeInput) []models.IngredientAmount {
	amounts := make([]models.IngredientAmount, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		amounts = append(amounts, models.IngredientAmount{RecipeID: recipeID, IngredientID: ing.ID, Amount: ing.Amount})
	}
	return amounts
}

func cleanRecipeText(in RecipeInput) (string, error) {
	text := StripHTML(in.Text)
	if text == "" {
		return "", &ValidationError{Field: "text", Message: "Описание не может быть пустым"}
	}
	return text, nil
}

// CreateRecipe создает рецепт автора с ингредиентами и тегами в одной транзакции.
// imagePath - уже сохраненная картинка.
func CreateRecipe(ctx context.Context, db *gorm.DB, authorID uint, in RecipeInput, imagePath string) (*models.Recipe, error) {
	text, err := cleanRecipeText(in)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       imagePath,
		Text:        text,
		CookingTime: in.CookingTime,
	}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := validateRecipeRelations(tx, in)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		amounts := amountsFor(recipe.ID, in)
		if err := tx.Create(&amounts).Error; err != nil {
			return fmt.Errorf("create ingredient amounts: %w", err)
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("set recipe tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return LoadRecipe(ctx, db, recipe.ID)
}

// UpdateRecipe заменяет поля, ингредиенты и теги рецепта. Пустой imagePath - картинка не меняется.
func UpdateRecipe(ctx context.Context, db *gorm.DB, recipe *models.Recipe, in RecipeInput, imagePath string) (*models.Recipe, error) {
	text, err := cleanRecipeText(in)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         in.Name,
		"text":         text,
		"cooking_time": in.CookingTime,
	}
	if imagePath != "" {
		updates["image"] = imagePath
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := validateRecipeRelations(tx, in)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Recipe{ID: recipe.ID}).Updates(updates).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientAmount{}).Error; err != nil {
			return fmt.Errorf("clear ingredient amounts: %w", err)
		}
		amounts := amountsFor(recipe.ID, in)
		if err := tx.Create(&amounts).Error; err != nil {
			return fmt.Errorf("create ingredient amounts: %w", err)
		}
		if err := tx.Model(&models.Recipe{ID: recipe.ID}).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("set recipe tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return LoadRecipe(ctx, db, recipe.ID)
}

// DeleteRecipe удаляет рецепт вместе с количествами, тегами и членством в списках.
// Картинку подчищает StartMediaCleanupCron.
func DeleteRecipe(ctx context.Context, db *gorm.DB, recipeID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.IngredientAmount{}, &models.Favorite{}, &models.ShoppingCart{}} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(model).Error; err != nil {
				return fmt.Errorf("delete recipe relations: %w", err)
			}
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error; err != nil {
			return fmt.Errorf("delete recipe tags: %w", err)
		}
		res := tx.Delete(&models.Recipe{}, recipeID)
		if res.Error != nil {
			return fmt.Errorf("delete recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

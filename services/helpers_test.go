package services

import (
	"context"
	"path/filepath"
	"testing"

	"foodgram/database"
	"foodgram/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: username,
		LastName:  "Test",
		Password:  "hash",
		Role:      models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()
	ing := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ing).Error)
	return ing
}

func createTag(t *testing.T, db *gorm.DB, name, color, slug string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func createRecipe(t *testing.T, db *gorm.DB, author models.User, name string, tags []models.Tag, amounts map[uint]int) *models.Recipe {
	t.Helper()
	in := RecipeInput{Name: name, Text: "Описание " + name, CookingTime: 10}
	for _, tag := range tags {
		in.Tags = append(in.Tags, tag.ID)
	}
	for id, amount := range amounts {
		in.Ingredients = append(in.Ingredients, IngredientInput{ID: id, Amount: amount})
	}
	recipe, err := CreateRecipe(context.Background(), db, author.ID, in, "recipes/images/"+name+".png")
	require.NoError(t, err)
	return recipe
}

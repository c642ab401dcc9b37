package database

import (
	"fmt"

	"foodgram/migrations"
	"foodgram/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientAmount{},
		&models.Favorite{},
		&models.ShoppingCart{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := migrations.CreateRecipeIndexes(db); err != nil {
		return fmt.Errorf("create recipe indexes: %w", err)
	}
	return nil
}

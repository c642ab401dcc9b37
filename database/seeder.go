package database

import (
	"encoding/json"
	"fmt"
	"os"

	"foodgram/models"
	"foodgram/utils"

	"gorm.io/gorm"
)

const seedBatchSize = 500

// SeedIngredients заполняет справочник ингредиентов из JSON, если таблица пуста.
// Формат файла: [{"name": "мука", "measurement_unit": "г"}, ...]
func SeedIngredients(db *gorm.DB, path string) (int, error) {
	return seedFromFile[models.Ingredient](db, path)
}

// SeedTags заполняет теги из JSON, если таблица пуста.
// Формат файла: [{"name": "Завтрак", "color": "#E26C2D", "slug": "breakfast"}, ...]
func SeedTags(db *gorm.DB, path string) (int, error) {
	return seedFromFile[models.Tag](db, path)
}

func seedFromFile[T any](db *gorm.DB, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	var count int64
	if err := db.Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil // уже заполнено, ничего не делаем
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	for i := range records {
		if err := utils.ValidateStruct(records[i]); err != nil {
			return 0, fmt.Errorf("seed file %s, record %d: %w", path, i, err)
		}
	}
	if err := db.CreateInBatches(&records, seedBatchSize).Error; err != nil {
		return 0, err
	}
	return len(records), nil
}

package migrations

import "gorm.io/gorm"

// CreateRecipeIndexes создает индексы, которые не описать тегами gorm.
// SQL общий для postgres и sqlite (тесты).
func CreateRecipeIndexes(db *gorm.DB) error {
	statements := []string{
		// Поиск ингредиентов по началу названия без учета регистра
		`CREATE INDEX IF NOT EXISTS idx_ingredients_name_lower ON ingredients (lower(name))`,
		// Лента рецептов: новые сверху
		`CREATE INDEX IF NOT EXISTS idx_recipes_pub_date_id ON recipes (pub_date DESC, id DESC)`,
		// Выгрузка списка покупок идет по ingredient_amounts в порядке id
		`CREATE INDEX IF NOT EXISTS idx_ingredient_amounts_recipe_id_id ON ingredient_amounts (recipe_id, id)`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ShoppingItem - строка списка покупок
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}

// CartIngredientRow - строка ingredient_amounts рецепта из корзины вместе с ингредиентом
type CartIngredientRow struct {
	ID              uint
	RecipeID        uint
	Name            string
	MeasurementUnit string
	Amount          int
}

// CartIngredientRows читает строки количеств всех рецептов из корзины пользователя
// в порядке id строки.
func CartIngredientRows(ctx context.Context, db *gorm.DB, userID uint) ([]CartIngredientRow, error) {
	var rows []CartIngredientRow
	err := db.WithContext(ctx).
		Table("ingredient_amounts AS ia").
		Select("ia.id AS id, ia.recipe_id AS recipe_id, i.name AS name, i.measurement_unit AS measurement_unit, ia.amount AS amount").
		Joins("JOIN ingredients AS i ON i.id = ia.ingredient_id").
		Joins("JOIN shopping_carts AS sc ON sc.recipe_id = ia.recipe_id").
		Where("sc.user_id = ?", userID).
		Order("ia.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load shopping cart ingredients: %w", err)
	}
	return rows, nil
}

type shoppingKey struct {
	name string
	unit string
}

// AggregateShoppingList суммирует количества по паре (название, единица измерения).
// Разные записи справочника с одинаковыми названием и единицей сливаются в одну строку.
// Порядок - по первому появлению пары в rows.
func AggregateShoppingList(rows []CartIngredientRow) []ShoppingItem {
	items := make([]ShoppingItem, 0, len(rows))
	index := make(map[shoppingKey]int, len(rows))
	for _, row := range rows {
		key := shoppingKey{name: row.Name, unit: row.MeasurementUnit}
		if i, ok := index[key]; ok {
			items[i].TotalAmount += row.Amount
			continue
		}
		index[key] = len(items)
		items = append(items, ShoppingItem{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			TotalAmount:     row.Amount,
		})
	}
	return items
}

// BuildShoppingList собирает список покупок пользователя. Пустая корзина - пустой список.
func BuildShoppingList(ctx context.Context, db *gorm.DB, userID uint) ([]ShoppingItem, error) {
	rows, err := CartIngredientRows(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	return AggregateShoppingList(rows), nil
}

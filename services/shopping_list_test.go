package services

import (
	"context"
	"testing"

	"foodgram/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateShoppingListKeepsFirstEncounterOrder(t *testing.T) {
	rows := []CartIngredientRow{
		{ID: 1, RecipeID: 1, Name: "мука", MeasurementUnit: "г", Amount: 200},
		{ID: 2, RecipeID: 1, Name: "яйца", MeasurementUnit: "шт.", Amount: 2},
		{ID: 3, RecipeID: 2, Name: "мука", MeasurementUnit: "г", Amount: 300},
		{ID: 4, RecipeID: 2, Name: "мука", MeasurementUnit: "кг", Amount: 1},
	}

	items := AggregateShoppingList(rows)

	assert.Equal(t, []ShoppingItem{
		{Name: "мука", MeasurementUnit: "г", TotalAmount: 500},
		{Name: "яйца", MeasurementUnit: "шт.", TotalAmount: 2},
		{Name: "мука", MeasurementUnit: "кг", TotalAmount: 1},
	}, items)
}

func TestAggregateShoppingListEmpty(t *testing.T) {
	assert.Empty(t, AggregateShoppingList(nil))
}

func TestBuildShoppingList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createUser(t, db, "author")
	buyer := createUser(t, db, "buyer")
	tag := createTag(t, db, "Завтрак", "#E26C2D", "breakfast")
	flour := createIngredient(t, db, "мука", "г")
	eggs := createIngredient(t, db, "яйца", "шт.")

	pancakes := createRecipe(t, db, author, "блины", []models.Tag{tag}, map[uint]int{flour.ID: 200})
	require.NoError(t, db.Create(&models.IngredientAmount{RecipeID: pancakes.ID, IngredientID: eggs.ID, Amount: 2}).Error)
	bread := createRecipe(t, db, author, "хлеб", []models.Tag{tag}, map[uint]int{flour.ID: 300})
	createRecipe(t, db, author, "не в корзине", []models.Tag{tag}, map[uint]int{flour.ID: 1000})

	items, err := BuildShoppingList(ctx, db, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, AddToList(ctx, db, ShoppingCart, buyer.ID, pancakes.ID))
	require.NoError(t, AddToList(ctx, db, ShoppingCart, buyer.ID, bread.ID))

	items, err = BuildShoppingList(ctx, db, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingItem{
		{Name: "мука", MeasurementUnit: "г", TotalAmount: 500},
		{Name: "яйца", MeasurementUnit: "шт.", TotalAmount: 2},
	}, items)

	// другой пользователь видит только свою корзину
	items, err = BuildShoppingList(ctx, db, author.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, RemoveFromList(ctx, db, ShoppingCart, buyer.ID, bread.ID))
	items, err = BuildShoppingList(ctx, db, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingItem{
		{Name: "мука", MeasurementUnit: "г", TotalAmount: 200},
		{Name: "яйца", MeasurementUnit: "шт.", TotalAmount: 2},
	}, items)
}

func TestBuildShoppingListMergesDuplicateCatalogEntries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createUser(t, db, "author")
	tag := createTag(t, db, "Обед", "#49B64E", "lunch")
	salt1 := createIngredient(t, db, "соль", "г")
	salt2 := createIngredient(t, db, "соль", "г")

	soup := createRecipe(t, db, author, "суп", []models.Tag{tag}, map[uint]int{salt1.ID: 5})
	stew := createRecipe(t, db, author, "рагу", []models.Tag{tag}, map[uint]int{salt2.ID: 7})
	require.NoError(t, AddToList(ctx, db, ShoppingCart, author.ID, soup.ID))
	require.NoError(t, AddToList(ctx, db, ShoppingCart, author.ID, stew.ID))

	items, err := BuildShoppingList(ctx, db, author.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingItem{{Name: "соль", MeasurementUnit: "г", TotalAmount: 12}}, items)
}

func TestShoppingListTwoRecipesFlourAndEggs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createUser(t, db, "author")
	tag := createTag(t, db, "Завтрак", "#E26C2D", "breakfast")
	flour := createIngredient(t, db, "мука", "г")
	eggs := createIngredient(t, db, "яйца", "шт.")

	a := createRecipe(t, db, author, "омлет с мукой", []models.Tag{tag}, map[uint]int{flour.ID: 200})
	require.NoError(t, db.Create(&models.IngredientAmount{RecipeID: a.ID, IngredientID: eggs.ID, Amount: 3}).Error)
	b := createRecipe(t, db, author, "оладьи", []models.Tag{tag}, map[uint]int{flour.ID: 100})
	require.NoError(t, db.Create(&models.IngredientAmount{RecipeID: b.ID, IngredientID: eggs.ID, Amount: 2}).Error)

	require.NoError(t, AddToList(ctx, db, ShoppingCart, author.ID, a.ID))
	require.NoError(t, AddToList(ctx, db, ShoppingCart, author.ID, b.ID))

	items, err := BuildShoppingList(ctx, db, author.ID)
	require.NoError(t, err)

	lines := LayoutShoppingList(items)
	require.Len(t, lines, 3)
	assert.Equal(t, "1. мука - 300 г", lines[1].Text)
	assert.Equal(t, "2. яйца - 5 шт.", lines[2].Text)
}

package services

import (
	"context"
	"testing"

	"foodgram/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeListMembership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createUser(t, db, "author")
	reader := createUser(t, db, "reader")
	tag := createTag(t, db, "Ужин", "#8775D2", "dinner")
	flour := createIngredient(t, db, "мука", "г")
	recipe := createRecipe(t, db, author, "пирог", []models.Tag{tag}, map[uint]int{flour.ID: 100})
	other := createRecipe(t, db, author, "торт", []models.Tag{tag}, map[uint]int{flour.ID: 200})

	for _, list := range []RecipeList{Favorite, ShoppingCart} {
		t.Run(list.String(), func(t *testing.T) {
			require.NoError(t, AddToList(ctx, db, list, reader.ID, recipe.ID))
			assert.ErrorIs(t, AddToList(ctx, db, list, reader.ID, recipe.ID), ErrAlreadyInList)

			listed, err := ListedRecipeIDs(ctx, db, list, reader.ID, []uint{recipe.ID, other.ID})
			require.NoError(t, err)
			assert.Equal(t, map[uint]bool{recipe.ID: true}, listed)

			listed, err = ListedRecipeIDs(ctx, db, list, 0, []uint{recipe.ID})
			require.NoError(t, err)
			assert.Empty(t, listed)

			require.NoError(t, RemoveFromList(ctx, db, list, reader.ID, recipe.ID))
			assert.ErrorIs(t, RemoveFromList(ctx, db, list, reader.ID, recipe.ID), ErrNotInList)
		})
	}
}

func TestRecipeListsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createUser(t, db, "author")
	tag := createTag(t, db, "Ужин", "#8775D2", "dinner")
	flour := createIngredient(t, db, "мука", "г")
	recipe := createRecipe(t, db, author, "пирог", []models.Tag{tag}, map[uint]int{flour.ID: 100})

	require.NoError(t, AddToList(ctx, db, Favorite, author.ID, recipe.ID))
	assert.ErrorIs(t, RemoveFromList(ctx, db, ShoppingCart, author.ID, recipe.ID), ErrNotInList)
	assert.Equal(t, "favorites", Favorite.Table())
	assert.Equal(t, "shopping_carts", ShoppingCart.Table())
}

func TestUnknownRecipeList(t *testing.T) {
	db := newTestDB(t)
	err := AddToList(context.Background(), db, RecipeList(42), 1, 1)
	assert.Error(t, err)
	assert.Equal(t, "RecipeList(42)", RecipeList(42).String())
}

package services

import (
	"context"
	"net/url"
	"testing"

	"foodgram/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseRecipeFilter(t *testing.T) {
	q := url.Values{
		"is_favorited":        {"1"},
		"is_in_shopping_cart": {"true"},
		"author":              {"7"},
		"tags":                {"breakfast", "lunch", "breakfast", " "},
	}

	f := ParseRecipeFilter(q)

	assert.True(t, f.IsFavorited)
	assert.False(t, f.IsInShoppingCart)
	assert.Equal(t, uint(7), f.AuthorID)
	assert.Equal(t, []string{"breakfast", "lunch"}, f.TagSlugs)
}

type filterFixture struct {
	db        *gorm.DB
	alice     models.User
	bob       models.User
	breakfast *models.Recipe
	lunch     *models.Recipe
	both      *models.Recipe
}

func newFilterFixture(t *testing.T) filterFixture {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	breakfastTag := createTag(t, db, "Завтрак", "#E26C2D", "breakfast")
	lunchTag := createTag(t, db, "Обед", "#49B64E", "lunch")
	flour := createIngredient(t, db, "мука", "г")

	return filterFixture{
		db:        db,
		alice:     alice,
		bob:       bob,
		breakfast: createRecipe(t, db, alice, "каша", []models.Tag{breakfastTag}, map[uint]int{flour.ID: 10}),
		lunch:     createRecipe(t, db, bob, "суп", []models.Tag{lunchTag}, map[uint]int{flour.ID: 20}),
		both:      createRecipe(t, db, bob, "омлет", []models.Tag{breakfastTag, lunchTag}, map[uint]int{flour.ID: 30}),
	}
}

func filteredIDs(t *testing.T, fx filterFixture, f RecipeFilter, userID uint) []uint {
	t.Helper()
	query, err := f.Apply(context.Background(), fx.db, userID)
	require.NoError(t, err)

	var total int64
	require.NoError(t, query.Count(&total).Error)

	var recipes []models.Recipe
	require.NoError(t, query.Order("recipes.id").Find(&recipes).Error)
	assert.Equal(t, int64(len(recipes)), total)

	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestRecipeFilterTagsAreOred(t *testing.T) {
	fx := newFilterFixture(t)

	ids := filteredIDs(t, fx, RecipeFilter{TagSlugs: []string{"breakfast", "lunch"}}, 0)
	assert.Equal(t, []uint{fx.breakfast.ID, fx.lunch.ID, fx.both.ID}, ids)

	ids = filteredIDs(t, fx, RecipeFilter{TagSlugs: []string{"breakfast"}}, 0)
	assert.Equal(t, []uint{fx.breakfast.ID, fx.both.ID}, ids)

	ids = filteredIDs(t, fx, RecipeFilter{TagSlugs: []string{"unknown"}}, 0)
	assert.Empty(t, ids)
}

func TestRecipeFilterAuthor(t *testing.T) {
	fx := newFilterFixture(t)

	ids := filteredIDs(t, fx, RecipeFilter{AuthorID: fx.bob.ID}, 0)
	assert.Equal(t, []uint{fx.lunch.ID, fx.both.ID}, ids)

	// несуществующий автор не сужает выборку
	ids = filteredIDs(t, fx, RecipeFilter{AuthorID: 9999}, 0)
	assert.Len(t, ids, 3)
}

func TestRecipeFilterLists(t *testing.T) {
	fx := newFilterFixture(t)
	ctx := context.Background()
	require.NoError(t, AddToList(ctx, fx.db, Favorite, fx.alice.ID, fx.lunch.ID))
	require.NoError(t, AddToList(ctx, fx.db, ShoppingCart, fx.alice.ID, fx.both.ID))

	ids := filteredIDs(t, fx, RecipeFilter{IsFavorited: true}, fx.alice.ID)
	assert.Equal(t, []uint{fx.lunch.ID}, ids)

	ids = filteredIDs(t, fx, RecipeFilter{IsInShoppingCart: true}, fx.alice.ID)
	assert.Equal(t, []uint{fx.both.ID}, ids)

	ids = filteredIDs(t, fx, RecipeFilter{IsFavorited: true, IsInShoppingCart: true}, fx.alice.ID)
	assert.Empty(t, ids)

	// без пользователя фильтры списков не применяются
	ids = filteredIDs(t, fx, RecipeFilter{IsFavorited: true}, 0)
	assert.Len(t, ids, 3)
}

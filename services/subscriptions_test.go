package services

import (
	"context"
	"testing"

	"foodgram/models"
	"foodgram/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSubscribeLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reader := createUser(t, db, "reader")
	author := createUser(t, db, "author")

	assert.ErrorIs(t, Subscribe(ctx, db, reader.ID, reader.ID), ErrSelfSubscription)
	assert.ErrorIs(t, Subscribe(ctx, db, reader.ID, 999), gorm.ErrRecordNotFound)

	require.NoError(t, Subscribe(ctx, db, reader.ID, author.ID))
	assert.ErrorIs(t, Subscribe(ctx, db, reader.ID, author.ID), ErrAlreadySubscribed)

	subscribed, err := SubscribedAuthorIDs(ctx, db, reader.ID, []uint{author.ID, reader.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{author.ID: true}, subscribed)

	require.NoError(t, Unsubscribe(ctx, db, reader.ID, author.ID))
	assert.ErrorIs(t, Unsubscribe(ctx, db, reader.ID, author.ID), ErrNotSubscribed)
}

func TestSelfSubscriptionRejectedByDatabase(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "narcissus")

	err := db.Create(&models.Subscription{UserID: user.ID, AuthorID: user.ID}).Error
	assert.Error(t, err)
}

func TestSubscribedAuthorsWithRecipes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reader := createUser(t, db, "reader")
	tag := createTag(t, db, "Обед", "#49B64E", "lunch")
	flour := createIngredient(t, db, "мука", "г")

	var authors []models.User
	for _, name := range []string{"a1", "a2", "a3"} {
		author := createUser(t, db, name)
		authors = append(authors, author)
		require.NoError(t, Subscribe(ctx, db, reader.ID, author.ID))
	}
	for _, name := range []string{"r1", "r2", "r3"} {
		createRecipe(t, db, authors[0], name, []models.Tag{tag}, map[uint]int{flour.ID: 1})
	}

	page, total, err := SubscribedAuthors(ctx, db, reader.ID, utils.Page{Number: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, authors[0].ID, page[0].ID)

	page, _, err = SubscribedAuthors(ctx, db, reader.ID, utils.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, authors[2].ID, page[0].ID)

	recipes, counts, err := AuthorRecipes(ctx, db, []uint{authors[0].ID, authors[1].ID}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[authors[0].ID])
	assert.Zero(t, counts[authors[1].ID])
	assert.Len(t, recipes[authors[0].ID], 2)
	assert.Empty(t, recipes[authors[1].ID])

	recipes, _, err = AuthorRecipes(ctx, db, []uint{authors[0].ID}, 0)
	require.NoError(t, err)
	assert.Len(t, recipes[authors[0].ID], 3)
}

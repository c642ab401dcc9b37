package services

import (
	"context"
	"errors"
	"fmt"

	"foodgram/models"
	"foodgram/utils"

	"gorm.io/gorm"
)

var (
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("not subscribed")
)

// Subscribe подписывает userID на authorID. Если автора нет - gorm.ErrRecordNotFound.
func Subscribe(ctx context.Context, db *gorm.DB, userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfSubscription
	}
	db = db.WithContext(ctx)

	var author models.User
	if err := db.Select("id").First(&author, authorID).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check subscription: %w", err)
	}
	if count > 0 {
		return ErrAlreadySubscribed
	}

	if err := db.Create(&models.Subscription{UserID: userID, AuthorID: authorID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

func Unsubscribe(ctx context.Context, db *gorm.DB, userID, authorID uint) error {
	if userID == authorID {
		return ErrSelfSubscription
	}
	db = db.WithContext(ctx)

	var author models.User
	if err := db.Select("id").First(&author, authorID).Error; err != nil {
		return err
	}

	res := db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Subscription{})
	if res.Error != nil {
		return fmt.Errorf("delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotSubscribed
	}
	return nil
}

// SubscribedAuthorIDs - на кого из authorIDs подписан userID
func SubscribedAuthorIDs(ctx context.Context, db *gorm.DB, userID uint, authorIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return result, nil
	}
	var ids []uint
	if err := db.WithContext(ctx).Model(&models.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// SubscribedAuthors - страница авторов, на которых подписан userID, по id
func SubscribedAuthors(ctx context.Context, db *gorm.DB, userID uint, page utils.Page) ([]models.User, int64, error) {
	db = db.WithContext(ctx)
	sub := db.Model(&models.Subscription{}).Select("author_id").Where("user_id = ?", userID)
	query := db.Model(&models.User{}).Where("users.id IN (?)", sub).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	var authors []models.User
	if err := query.Order("users.id").Offset(page.Offset()).Limit(page.Size).Find(&authors).Error; err != nil {
		return nil, 0, fmt.Errorf("load subscriptions: %w", err)
	}
	return authors, total, nil
}

// AuthorRecipes - последние рецепты каждого автора (limit <= 0 - все) и общее число его рецептов
func AuthorRecipes(ctx context.Context, db *gorm.DB, authorIDs []uint, limit int) (map[uint][]models.Recipe, map[uint]int64, error) {
	recipes := make(map[uint][]models.Recipe, len(authorIDs))
	counts := make(map[uint]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return recipes, counts, nil
	}
	db = db.WithContext(ctx)

	var rows []struct {
		AuthorID uint
		Total    int64
	}
	if err := db.Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("count author recipes: %w", err)
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}

	for _, authorID := range authorIDs {
		query := db.Where("author_id = ?", authorID).Order("pub_date DESC, id DESC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		var list []models.Recipe
		if err := query.Find(&list).Error; err != nil {
			return nil, nil, fmt.Errorf("load author recipes: %w", err)
		}
		recipes[authorID] = list
	}
	return recipes, counts, nil
}

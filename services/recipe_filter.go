package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"foodgram/models"
	"foodgram/utils"

	"gorm.io/gorm"
)

// RecipeFilter - фильтры ленты рецептов из query-параметров
type RecipeFilter struct {
	IsFavorited      bool
	IsInShoppingCart bool
	AuthorID         uint
	TagSlugs         []string
}

// ParseRecipeFilter: is_favorited и is_in_shopping_cart включаются только значением "1",
// tags можно передавать несколько раз.
func ParseRecipeFilter(query url.Values) RecipeFilter {
	f := RecipeFilter{
		IsFavorited:      query.Get("is_favorited") == "1",
		IsInShoppingCart: query.Get("is_in_shopping_cart") == "1",
		AuthorID:         utils.ParseIDSafe(query.Get("author")),
	}
	seen := make(map[string]bool)
	for _, slug := range query["tags"] {
		slug = strings.TrimSpace(slug)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		f.TagSlugs = append(f.TagSlugs, slug)
	}
	return f
}

// Apply строит запрос по recipes. Каждый фильтр - подзапрос по id, поэтому дублей нет.
// Фильтры по спискам без пользователя не применяются, автор, которого нет, игнорируется.
func (f RecipeFilter) Apply(ctx context.Context, db *gorm.DB, userID uint) (*gorm.DB, error) {
	base := db.WithContext(ctx)
	query := base.Model(&models.Recipe{})

	if userID != 0 {
		if f.IsFavorited {
			query = query.Where("recipes.id IN (?)", listSubquery(base, Favorite, userID))
		}
		if f.IsInShoppingCart {
			query = query.Where("recipes.id IN (?)", listSubquery(base, ShoppingCart, userID))
		}
	}

	if f.AuthorID != 0 {
		var count int64
		if err := base.Model(&models.User{}).Where("id = ?", f.AuthorID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check author filter: %w", err)
		}
		if count > 0 {
			query = query.Where("recipes.author_id = ?", f.AuthorID)
		}
	}

	if len(f.TagSlugs) > 0 {
		tagged := base.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		query = query.Where("recipes.id IN (?)", tagged)
	}

	// Session, чтобы запрос можно было переиспользовать для Count и Find
	return query.Session(&gorm.Session{}), nil
}

func listSubquery(db *gorm.DB, list RecipeList, userID uint) *gorm.DB {
	return db.Table(list.Table()).Select("recipe_id").Where("user_id = ?", userID)
}

package controllers

import (
	"context"

	"foodgram/models"
	"foodgram/services"

	"gorm.io/gorm"
)

type UserView struct {
	Email        string `json:"email"`
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type RecipeIngredientView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeView struct {
	ID               uint                   `json:"id"`
	Tags             []models.Tag           `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// ShortRecipeView - рецепт в ответах списков и подписок
type ShortRecipeView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

type SubscriptionView struct {
	UserView
	Recipes      []ShortRecipeView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

// presenter собирает ответы API, флаги считаются пачкой на страницу
type presenter struct {
	db    *gorm.DB
	media services.MediaStore
}

func userView(u models.User, subscribed bool) UserView {
	return UserView{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func (p presenter) users(ctx context.Context, viewerID uint, users []models.User) ([]UserView, error) {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	subscribed, err := services.SubscribedAuthorIDs(ctx, p.db, viewerID, ids)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u, subscribed[u.ID]))
	}
	return views, nil
}

func (p presenter) user(ctx context.Context, viewerID uint, u models.User) (UserView, error) {
	views, err := p.users(ctx, viewerID, []models.User{u})
	if err != nil {
		return UserView{}, err
	}
	return views[0], nil
}

func (p presenter) short(r models.Recipe) ShortRecipeView {
	return ShortRecipeView{ID: r.ID, Name: r.Name, Image: p.media.URLFor(r.Image), CookingTime: r.CookingTime}
}

func (p presenter) recipes(ctx context.Context, viewerID uint, recipes []models.Recipe) ([]RecipeView, error) {
	ids := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}
	favorited, err := services.ListedRecipeIDs(ctx, p.db, services.Favorite, viewerID, ids)
	if err != nil {
		return nil, err
	}
	inCart, err := services.ListedRecipeIDs(ctx, p.db, services.ShoppingCart, viewerID, ids)
	if err != nil {
		return nil, err
	}
	subscribed, err := services.SubscribedAuthorIDs(ctx, p.db, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		ingredients := make([]RecipeIngredientView, 0, len(r.Ingredients))
		for _, ia := range r.Ingredients {
			ingredients = append(ingredients, RecipeIngredientView{
				ID:              ia.IngredientID,
				Name:            ia.Ingredient.Name,
				MeasurementUnit: ia.Ingredient.MeasurementUnit,
				Amount:          ia.Amount,
			})
		}
		tags := r.Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		views = append(views, RecipeView{
			ID:               r.ID,
			Tags:             tags,
			Author:           userView(r.Author, subscribed[r.AuthorID]),
			Ingredients:      ingredients,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            p.media.URLFor(r.Image),
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return views, nil
}

func (p presenter) recipe(ctx context.Context, viewerID uint, r *models.Recipe) (RecipeView, error) {
	views, err := p.recipes(ctx, viewerID, []models.Recipe{*r})
	if err != nil {
		return RecipeView{}, err
	}
	return views[0], nil
}

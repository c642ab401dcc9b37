package models

import "time"

// Favorite - рецепт в избранном пользователя. Пара (user_id, recipe_id) уникальна.
type Favorite struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	RecipeID  uint      `json:"recipe_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

// ShoppingCart - рецепт в списке покупок пользователя, устроен так же, как Favorite
type ShoppingCart struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	RecipeID  uint      `json:"recipe_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE"`
}

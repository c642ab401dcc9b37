package models

import "time"

type Tag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"type:varchar(200);uniqueIndex;not null" validate:"required,max=200"`
	Color string `json:"color" gorm:"type:varchar(7);uniqueIndex;not null" validate:"required,hexcolor7"`
	Slug  string `json:"slug" gorm:"type:varchar(200);uniqueIndex;not null" validate:"required,max=200,slug"`
}

// Ingredient - справочник ингредиентов, меняется только через сидер
type Ingredient struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"type:varchar(200);not null;index" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(200);not null" validate:"required,max=200"`
}

type Recipe struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AuthorID    uint      `json:"author_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Image       string    `json:"image" gorm:"type:varchar(255);not null"` // путь относительно MEDIA_ROOT
	Text        string    `json:"text" gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null;check:chk_recipes_cooking_time,cooking_time >= 1"`
	PubDate     time.Time `json:"pub_date" gorm:"autoCreateTime;index"`

	Author      User               `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []IngredientAmount `json:"ingredients" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// IngredientAmount - сколько ингредиента нужно рецепту.
// Не больше одной строки на пару (recipe_id, ingredient_id).
type IngredientAmount struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	RecipeID     uint `json:"recipe_id" gorm:"not null;uniqueIndex:uniq_ingredient_amounts_recipe_ingredient"`
	IngredientID uint `json:"ingredient_id" gorm:"not null;uniqueIndex:uniq_ingredient_amounts_recipe_ingredient;index"`
	Amount       int  `json:"amount" gorm:"not null;check:chk_ingredient_amounts_amount,amount >= 1"`

	Ingredient Ingredient `json:"-" gorm:"foreignKey:IngredientID;references:ID;constraint:OnDelete:CASCADE"`
}

package services

import (
	"context"
	"errors"
	"fmt"

	"foodgram/models"

	"gorm.io/gorm"
)

// RecipeList - пользовательский список рецептов: избранное или корзина покупок
type RecipeList int

const (
	Favorite RecipeList = iota + 1
	ShoppingCart
)

var (
	ErrAlreadyInList = errors.New("recipe already in list")
	ErrNotInList     = errors.New("recipe not in list")
)

// recipeListRelation описывает, как хранится членство рецепта в списке
type recipeListRelation struct {
	name  string
	table string
	row   func(userID, recipeID uint) interface{}
}

var recipeListRelations = map[RecipeList]recipeListRelation{
	Favorite: {
		name:  "favorite",
		table: "favorites",
		row: func(userID, recipeID uint) interface{} {
			return &models.Favorite{UserID: userID, RecipeID: recipeID}
		},
	},
	ShoppingCart: {
		name:  "shopping_cart",
		table: "shopping_carts",
		row: func(userID, recipeID uint) interface{} {
			return &models.ShoppingCart{UserID: userID, RecipeID: recipeID}
		},
	},
}

func (l RecipeList) relation() (recipeListRelation, error) {
	rel, ok := recipeListRelations[l]
	if !ok {
		return recipeListRelation{}, fmt.Errorf("unknown recipe list %d", int(l))
	}
	return rel, nil
}

func (l RecipeList) String() string {
	if rel, ok := recipeListRelations[l]; ok {
		return rel.name
	}
	return fmt.Sprintf("RecipeList(%d)", int(l))
}

// Table - имя таблицы членства, нужно фильтрам рецептов
func (l RecipeList) Table() string {
	return recipeListRelations[l].table
}

// AddToList добавляет рецепт в список. Повторное добавление - ErrAlreadyInList.
func AddToList(ctx context.Context, db *gorm.DB, list RecipeList, userID, recipeID uint) error {
	rel, err := list.relation()
	if err != nil {
		return err
	}
	row := rel.row(userID, recipeID)

	var count int64
	if err := db.WithContext(ctx).Model(row).Where(row).Count(&count).Error; err != nil {
		return fmt.Errorf("check %s membership: %w", rel.name, err)
	}
	if count > 0 {
		return ErrAlreadyInList
	}

	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyInList
		}
		return fmt.Errorf("add to %s: %w", rel.name, err)
	}
	return nil
}

// RemoveFromList убирает рецепт из списка. Если его там не было - ErrNotInList.
func RemoveFromList(ctx context.Context, db *gorm.DB, list RecipeList, userID, recipeID uint) error {
	rel, err := list.relation()
	if err != nil {
		return err
	}
	res := db.WithContext(ctx).Delete(rel.row(userID, recipeID))
	if res.Error != nil {
		return fmt.Errorf("remove from %s: %w", rel.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotInList
	}
	return nil
}

// ListedRecipeIDs возвращает, какие из recipeIDs есть в списке пользователя
func ListedRecipeIDs(ctx context.Context, db *gorm.DB, list RecipeList, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	listed := make(map[uint]bool, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return listed, nil
	}
	rel, err := list.relation()
	if err != nil {
		return nil, err
	}

	var ids []uint
	if err := db.WithContext(ctx).Table(rel.table).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load %s membership: %w", rel.name, err)
	}
	for _, id := range ids {
		listed[id] = true
	}
	return listed, nil
}

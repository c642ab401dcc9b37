package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"foodgram/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ShoppingCartController struct {
	db       *gorm.DB
	renderer *services.ShoppingListRenderer
}

func NewShoppingCartController(db *gorm.DB, fontPath string) *ShoppingCartController {
	return &ShoppingCartController{db: db, renderer: services.NewShoppingListRenderer(fontPath)}
}

// GET /api/recipes/download_shopping_cart - PDF со списком покупок пользователя
func (sc *ShoppingCartController) Download(c *gin.Context) {
	items, err := services.BuildShoppingList(c.Request.Context(), sc.db, currentUserID(c))
	if err != nil {
		internalError(c, err, "Ошибка получения списка покупок")
		return
	}

	var buf bytes.Buffer
	if err := sc.renderer.Render(&buf, items); err != nil {
		if errors.Is(err, services.ErrFontUnavailable) {
			internalError(c, err, "Шрифт для PDF недоступен")
			return
		}
		internalError(c, err, "Ошибка формирования PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`,
		services.ShoppingListFilename, url.PathEscape(services.ShoppingListTitle+".pdf")))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

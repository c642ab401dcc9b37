package services

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
)

const (
	ShoppingListTitle    = "Список покупок"
	ShoppingListFilename = "shopping_list.pdf"

	shoppingFontFamily = "ShoppingListFont"
	titleFontSize      = 20
	itemFontSize       = 14

	// Координаты в пунктах A4 (595x842), ось Y идет сверху вниз
	pageLeft     = 50.0
	titleTop     = 60.0
	firstItemTop = 100.0
	lineStep     = 22.0
	pageBottom   = 800.0
)

// ErrFontUnavailable - шрифт для PDF не загрузился, это ошибка конфигурации, а не запроса
var ErrFontUnavailable = errors.New("shopping list font unavailable")

// TextLine - одна надпись на странице PDF
type TextLine struct {
	Page     int // с 1
	X        float64
	Y        float64
	FontSize float64
	Text     string
}

func FormatShoppingItem(index int, item ShoppingItem) string {
	return fmt.Sprintf("%d. %s - %d %s", index, item.Name, item.TotalAmount, item.MeasurementUnit)
}

// LayoutShoppingList раскладывает заголовок и строки по страницам.
// Каждая следующая строка на lineStep ниже предыдущей, при переполнении - новая страница.
func LayoutShoppingList(items []ShoppingItem) []TextLine {
	lines := make([]TextLine, 0, len(items)+1)
	lines = append(lines, TextLine{Page: 1, X: pageLeft, Y: titleTop, FontSize: titleFontSize, Text: ShoppingListTitle})

	page, y := 1, firstItemTop
	for i, item := range items {
		if y > pageBottom {
			page++
			y = titleTop
		}
		lines = append(lines, TextLine{Page: page, X: pageLeft, Y: y, FontSize: itemFontSize, Text: FormatShoppingItem(i+1, item)})
		y += lineStep
	}
	return lines
}

// ShoppingListRenderer рисует список покупок в PDF TTF-шрифтом с поддержкой кириллицы
type ShoppingListRenderer struct {
	FontPath string

	uncompressed bool // потоки страниц без сжатия, для тестов
}

func NewShoppingListRenderer(fontPath string) *ShoppingListRenderer {
	return &ShoppingListRenderer{FontPath: fontPath}
}

// Render пишет PDF в w. Без шрифта документ не создается вовсе.
func (r *ShoppingListRenderer) Render(w io.Writer, items []ShoppingItem) error {
	font, err := os.ReadFile(r.FontPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(ShoppingListTitle, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(!r.uncompressed)
	pdf.AddUTF8FontFromBytes(shoppingFontFamily, "", font)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}

	page := 0
	for _, line := range LayoutShoppingList(items) {
		for page < line.Page {
			pdf.AddPage()
			page++
		}
		pdf.SetFont(shoppingFontFamily, "", line.FontSize)
		pdf.Text(line.X, line.Y, line.Text)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render shopping list pdf: %w", err)
	}
	return nil
}

package utils

const (
	DefaultPageSize = 6
	MaxPageSize     = 10
)

type Page struct {
	Number int // с 1
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage разбирает ?page=&limit=. limit больше максимума урезается до MaxPageSize.
func ParsePage(pageStr, limitStr string) Page {
	page := ParseIntSafe(pageStr)
	limit := ParseIntSafe(limitStr)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Page{Number: page, Size: limit}
}

// PageResult собирает страницу в том же виде, что и остальные списки API
func PageResult(p Page, total int64, content interface{}, numberOfElements int) map[string]interface{} {
	totalPages := int((total + int64(p.Size) - 1) / int64(p.Size))
	return map[string]interface{}{
		"totalPages":       totalPages,
		"totalElements":    total,
		"first":            p.Number == 1,
		"last":             p.Number >= totalPages,
		"size":             p.Size,
		"content":          content,
		"number":           p.Number - 1,
		"numberOfElements": numberOfElements,
		"empty":            numberOfElements == 0,
		"pageable": map[string]interface{}{
			"offset":     p.Offset(),
			"pageNumber": p.Number - 1,
			"pageSize":   p.Size,
			"paged":      true,
			"unpaged":    false,
		},
	}
}

package services

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML оставляет только текст: теги убираются, переносы по <br> и блокам сохраняются
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6").AppendHtml("\n")
	return strings.TrimSpace(doc.Text())
}

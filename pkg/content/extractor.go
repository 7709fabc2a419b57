package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ExtractTitle extracts the talk title from HTML content with fallback mechanisms
func ExtractTitle(htmlContent string) (string, error) {
	// Try readability first
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		title := strings.TrimSpace(article.Title)
		if title != "" {
			return title, nil
		}
	}

	// Fallback: Try parsing HTML directly with goquery
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}

	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	if title, exists := doc.Find("meta[name='title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	return "", fmt.Errorf("title not found in HTML")
}

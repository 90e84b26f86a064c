package normalizer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"top10/pkg/utils"
)

// StripHTML returns the visible text of s with whitespace collapsed.
// Plain text passes through with entities decoded.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	text := s

	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	}

	return utils.NewStringHelper().NormalizeWhitespace(text)
}

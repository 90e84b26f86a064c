package formatter

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"top10/internal/fetcher"
	"top10/internal/models"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html.tmpl").
		Funcs(template.FuncMap{"imageOrDefault": imageOrDefault}).
		ParseFS(templateFS, "templates/page.html.tmpl"),
)

// RenderHTML writes the standalone "Top 10" page for doc to w.
func RenderHTML(w io.Writer, doc *models.Document) error {
	if err := pageTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}

func imageOrDefault(src string) string {
	if src == "" {
		return fetcher.PlaceholderImage
	}

	return src
}

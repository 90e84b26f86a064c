// Package formatter renders a generated document as a markdown preview or a
// standalone HTML page.
package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"top10/internal/models"
	"top10/pkg/metadata"
	"top10/pkg/utils"
)

// TitleWidth is the display width titles are cut to in the preview table.
const TitleWidth = 60

var tableHeader = []string{"#", "Title", "Price", "Rating", "Reviews"}

// MarkdownTable renders the products as an aligned markdown table.
func MarkdownTable(doc *models.Document) string {
	helper := utils.NewStringHelper()

	rows := make([][]string, 0, len(doc.Products))
	for _, p := range doc.Products {
		rows = append(rows, []string{
			strconv.Itoa(p.Rank),
			escapeCell(helper.TruncateWidth(p.Title, TitleWidth)),
			escapeCell(p.Price),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			strconv.Itoa(p.ReviewCount),
		})
	}

	return strings.Join(alignTable(tableHeader, rows), "\n")
}

// Preview renders a signed markdown page for doc.
func Preview(doc *models.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "Niche: %s · Source: %s · Generated: %s\n\n", doc.Niche, doc.Source, doc.GeneratedAt)
	b.WriteString(MarkdownTable(doc))

	lastModify, err := time.Parse(time.RFC3339Nano, doc.GeneratedAt)
	if err != nil {
		lastModify = time.Time{}
	}

	return metadata.Sign(b.String(), metadata.Metadata{
		RunID:      doc.RunID,
		Source:     doc.Source,
		LastModify: lastModify,
	})
}

// FormatMarkdown re-aligns every table in content and re-signs it, keeping the
// run id and source of an existing metadata block.
func FormatMarkdown(content string) string {
	meta, clean := metadata.Extract(content)

	var (
		out   []string
		table []string
	)

	flush := func() {
		if len(table) > 0 {
			out = append(out, reformatTable(table)...)
			table = nil
		}
	}

	for _, line := range strings.Split(clean, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") {
			table = append(table, line)
			continue
		}

		flush()

		out = append(out, line)
	}

	flush()

	keep := metadata.Metadata{}
	if meta != nil {
		keep = metadata.Metadata{RunID: meta.RunID, Source: meta.Source}
	}

	return metadata.Sign(strings.Join(out, "\n"), keep)
}

// reformatTable re-pads a header + separator + body block. Anything that is
// not a well-formed table is returned unchanged.
func reformatTable(lines []string) []string {
	if len(lines) < 2 {
		return lines
	}

	cells := make([][]string, len(lines))
	for i, line := range lines {
		cells[i] = splitRow(line)
	}

	if !isSeparator(cells[1]) {
		return lines
	}

	return alignTable(cells[0], cells[2:])
}

// alignTable pads every cell to its column's display width so wide runes
// (CJK, emoji) line up in a monospace view.
func alignTable(header []string, rows [][]string) []string {
	cols := len(header)
	for _, row := range rows {
		cols = max(cols, len(row))
	}

	widths := make([]int, cols)
	for i := range widths {
		widths[i] = 3
	}

	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	render := func(row []string) string {
		var sb strings.Builder

		sb.WriteString("|")

		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			sb.WriteString(" " + runewidth.FillRight(cell, w) + " |")
		}

		return sb.String()
	}

	sep := make([]string, cols)
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}

	out := []string{render(header), render(sep)}
	for _, row := range rows {
		out = append(out, render(row))
	}

	return out
}

// splitRow splits a table line on unescaped pipes.
func splitRow(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")

	var (
		cells   []string
		cur     strings.Builder
		escaped bool
	)

	for _, r := range s {
		if r == '|' && !escaped {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()

			continue
		}

		escaped = r == '\\' && !escaped

		cur.WriteRune(r)
	}

	return append(cells, strings.TrimSpace(cur.String()))
}

func isSeparator(row []string) bool {
	for _, cell := range row {
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}

	return len(row) > 0
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

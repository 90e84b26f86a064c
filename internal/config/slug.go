package config

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify folds accents, lowercases and joins alphanumeric runs with hyphens:
// "Top 10 Cafés & Más" -> "top-10-cafes-mas".
func Slugify(s string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}

	folded = strings.ToLower(folded)

	var b strings.Builder

	pendingDash := false

	for _, r := range folded {
		if r > unicode.MaxASCII || (!unicode.IsLetter(r) && !unicode.IsDigit(r)) {
			pendingDash = b.Len() > 0
			continue
		}

		if pendingDash {
			b.WriteByte('-')

			pendingDash = false
		}

		b.WriteRune(r)
	}

	return b.String()
}

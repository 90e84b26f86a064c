// Package normalizer maps heterogeneous upstream product records onto the
// canonical models.Product shape.
package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"top10/internal/models"
)

// Fallback values for fields no path resolved.
const (
	UntitledProduct = "Untitled product"
	PriceUnknown    = "N/A"
	DefaultCurrency = "USD"
)

// Lookup paths, tried in order. The first non-empty value wins.
var (
	titlePaths       = []string{"product_title", "title", "name", "deal_title"}
	asinPaths        = []string{"asin", "product_asin", "product_id"}
	priceTextPaths   = []string{"product_price", "price"}
	priceNumberPaths = []string{"price.current_price", "price.value", "deal_price.amount"}
	currencyPaths    = []string{"currency", "price.currency", "deal_price.currency"}
	ratingPaths      = []string{"product_star_rating", "rating", "stars"}
	reviewPaths      = []string{"product_num_ratings", "reviews_count", "reviews", "ratings_total"}
	imagePaths       = []string{"product_photo", "image", "image_url", "images.0", "deal_photo"}
	urlPaths         = []string{"product_url", "url", "link", "deal_url"}
	featurePaths     = []string{"features", "about_product", "product_features"}
	descriptionPaths = []string{"product_description", "description", "deal_title"}
)

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"MXN": "MX$",
	"BRL": "R$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
}

// Transformer converts one raw record into a Product.
type Transformer struct {
	numberPattern *regexp.Regexp
	printer       *message.Printer
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		numberPattern: regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`),
		printer:       message.NewPrinter(language.English),
	}
}

// Transform maps raw onto a Product with the given rank and affiliate tag.
// It never fails: missing fields take their documented fallback.
func (t *Transformer) Transform(raw models.RawProduct, rank int, affiliateID string) models.Product {
	rec := gjson.ParseBytes(raw)

	title := firstString(rec, titlePaths...)
	if title == "" {
		title = UntitledProduct
	}

	base := firstString(rec, urlPaths...)

	asin := firstString(rec, asinPaths...)
	if asin == "" {
		asin = ASINFromURL(base)
	}

	if base == "" && asin != "" {
		base = "https://www.amazon.com/dp/" + asin
	}

	currency := strings.ToUpper(firstString(rec, currencyPaths...))
	if currency == "" {
		currency = DefaultCurrency
	}

	return models.Product{
		Rank:        rank,
		Title:       title,
		ASIN:        asin,
		Price:       t.price(rec, currency),
		Currency:    currency,
		Rating:      t.rating(rec),
		ReviewCount: t.reviewCount(rec),
		Image:       firstString(rec, imagePaths...),
		URL:         AffiliateURL(base, affiliateID),
		Features:    features(rec),
		Description: StripHTML(firstString(rec, descriptionPaths...)),
	}
}

func (t *Transformer) price(rec gjson.Result, currency string) string {
	for _, path := range priceTextPaths {
		v := rec.Get(path)
		if v.Type != gjson.String {
			continue
		}

		if s := strings.TrimSpace(v.Str); s != "" {
			return s
		}
	}

	for _, path := range priceNumberPaths {
		v := rec.Get(path)
		if v.Type != gjson.Number {
			continue
		}

		return t.FormatPrice(v.Float(), currency)
	}

	return PriceUnknown
}

// FormatPrice renders amount with two decimals and thousands separators,
// prefixed by the currency symbol when known: "$1,299.00", "12.50 CHF".
func (t *Transformer) FormatPrice(amount float64, currency string) string {
	value := t.printer.Sprintf("%.2f", amount)

	if symbol, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		return symbol + value
	}

	return fmt.Sprintf("%s %s", value, strings.ToUpper(currency))
}

// MaxRating is the top of the star scale; ratings are clamped to [0, MaxRating].
const MaxRating = 5.0

func (t *Transformer) rating(rec gjson.Result) float64 {
	for _, path := range ratingPaths {
		v := rec.Get(path)

		switch v.Type {
		case gjson.Number:
			return clampRating(v.Float())
		case gjson.String:
			if f, ok := t.parseStatFloat(v.Str); ok {
				return clampRating(f)
			}
		}
	}

	return 0
}

func clampRating(r float64) float64 {
	return min(max(r, 0), MaxRating)
}

func (t *Transformer) reviewCount(rec gjson.Result) int {
	for _, path := range reviewPaths {
		v := rec.Get(path)

		switch v.Type {
		case gjson.Number:
			return int(v.Int())
		case gjson.String:
			if f, ok := t.parseStatFloat(v.Str); ok {
				return int(f)
			}
		}
	}

	return 0
}

// parseStatFloat extracts the first number in s, ignoring thousands commas:
// "4.5 out of 5 stars" -> 4.5, "34,521 ratings" -> 34521.
func (t *Transformer) parseStatFloat(s string) (float64, bool) {
	match := t.numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}

	val, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}

	return val, true
}

func firstString(rec gjson.Result, paths ...string) string {
	for _, path := range paths {
		v := rec.Get(path)
		if v.Type != gjson.String && v.Type != gjson.Number {
			continue
		}

		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}

	return ""
}

func features(rec gjson.Result) []string {
	for _, path := range featurePaths {
		v := rec.Get(path)

		var out []string

		switch {
		case v.IsArray():
			out = lo.FilterMap(v.Array(), func(item gjson.Result, _ int) (string, bool) {
				s := strings.TrimSpace(item.Str)
				return s, item.Type == gjson.String && s != ""
			})
		case v.Type == gjson.String:
			if s := strings.TrimSpace(v.Str); s != "" {
				out = append(out, s)
			}
		}

		if len(out) > 0 {
			return out
		}
	}

	return []string{}
}

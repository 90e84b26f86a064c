package fetcher

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"top10/internal/models"
)

// PlaceholderImage is the image used for every synthetic record.
const PlaceholderImage = "https://via.placeholder.com/300x250?text=Top+10"

// PlaceholderID returns the n-th (1-based) synthetic product code.
// Codes are 10 characters like real ASINs: B0PLACE001..B0PLACE999.
func PlaceholderID(n int) string {
	return fmt.Sprintf("B0PLACE%03d", n)
}

// Placeholders builds n synthetic records in the upstream "new" field format.
// Price, rating and review count come from rng; everything else is
// deterministic. A nil rng uses a randomly seeded source.
func Placeholders(niche string, n int, rng *rand.Rand) []models.RawProduct {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	label := cases.Title(language.English).String(strings.TrimSpace(niche))
	if label == "" {
		label = "Product"
	}

	records := make([]models.RawProduct, 0, n)

	for i := 1; i <= n; i++ {
		id := PlaceholderID(i)
		price := 9.99 + float64(rng.IntN(19000))/100
		rating := 3.5 + float64(rng.IntN(16))/10
		reviews := 50 + rng.IntN(24951)

		record := map[string]any{
			"asin":                id,
			"product_title":       fmt.Sprintf("%s Pick #%d", label, i),
			"product_price":       fmt.Sprintf("$%.2f", price),
			"currency":            "USD",
			"product_star_rating": fmt.Sprintf("%.1f", rating),
			"product_num_ratings": reviews,
			"product_url":         "https://www.amazon.com/dp/" + id,
			"product_photo":       PlaceholderImage,
			"features": []string{
				fmt.Sprintf("Popular choice in %s", label),
				"Sample data shown while live deals are unavailable",
			},
			"product_description": fmt.Sprintf("Placeholder listing #%d for %s.", i, label),
		}

		raw, err := json.Marshal(record)
		if err != nil {
			// map[string]any of strings and numbers always marshals
			panic(fmt.Sprintf("marshal placeholder: %v", err))
		}

		records = append(records, models.RawProduct(raw))
	}

	return records
}

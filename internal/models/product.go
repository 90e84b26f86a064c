// Package models defines the records that flow through the top10 pipeline.
package models

import "encoding/json"

// MaxProducts is the maximum number of products kept per run.
const MaxProducts = 10

// Data sources recorded on the output document.
const (
	SourceAPI         = "api"
	SourcePlaceholder = "placeholder"
)

// RawProduct is one upstream record, kept as undecoded JSON because its shape
// varies across API versions.
type RawProduct json.RawMessage

// MarshalJSON returns the raw bytes unchanged.
func (r RawProduct) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}

	return r, nil
}

// Product is the canonical record written for the site generator.
// Every field is always present in the JSON output.
type Product struct {
	Rank        int      `json:"rank"         jsonschema:"minimum=1,maximum=10"`
	Title       string   `json:"title"`
	ASIN        string   `json:"asin"         jsonschema:"description=Amazon product code; empty when unknown"`
	Price       string   `json:"price"        jsonschema:"description=Display price or N/A"`
	Currency    string   `json:"currency"`
	Rating      float64  `json:"rating"       jsonschema:"minimum=0,maximum=5"`
	ReviewCount int      `json:"review_count" jsonschema:"minimum=0"`
	Image       string   `json:"image"`
	URL         string   `json:"url"          jsonschema:"description=Affiliate-tagged product URL"`
	Features    []string `json:"features"`
	Description string   `json:"description"`
}

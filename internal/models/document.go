package models

// Document is the envelope written to the output file.
type Document struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Niche       string    `json:"niche"`
	GeneratedAt string    `json:"generated_at" jsonschema:"format=date-time"`
	AffiliateID string    `json:"affiliate_id"`
	RunID       string    `json:"run_id"       jsonschema:"format=uuid"`
	Source      string    `json:"source"       jsonschema:"enum=api,enum=placeholder"`
	Products    []Product `json:"products"     jsonschema:"maxItems=10"`
}

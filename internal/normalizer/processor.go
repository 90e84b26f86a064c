package normalizer

import (
	"errors"
	"fmt"

	"top10/internal/models"
)

// Processor normalizes a batch of raw records.
type Processor struct {
	validator *Validator
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator: NewValidator(),
	}
}

// Process keeps the first models.MaxProducts records and ranks them 1..n.
// The product slice is always complete; the error, when non-nil, joins the
// per-product validation warnings and is meant for logging only.
func (p *Processor) Process(raws []models.RawProduct, affiliateID string) ([]models.Product, error) {
	if len(raws) > models.MaxProducts {
		raws = raws[:models.MaxProducts]
	}

	products := make([]models.Product, 0, len(raws))

	var warnings []error

	for i, raw := range raws {
		product := Normalize(raw, i+1, affiliateID)

		if err := p.validator.Validate(product); err != nil {
			warnings = append(warnings, fmt.Errorf("product %d: %w", product.Rank, err))
		}

		products = append(products, product)
	}

	return products, errors.Join(warnings...)
}

var defaultTransformer = NewTransformer()

// Normalize maps a single raw record. See Transformer.Transform.
func Normalize(raw models.RawProduct, rank int, affiliateID string) models.Product {
	return defaultTransformer.Transform(raw, rank, affiliateID)
}

// NormalizeAll runs the default Processor over raws.
func NormalizeAll(raws []models.RawProduct, affiliateID string) ([]models.Product, error) {
	return NewProcessor().Process(raws, affiliateID)
}

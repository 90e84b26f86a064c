package normalizer

import (
	"errors"

	"top10/internal/models"
)

// Validation warnings. Products carrying them are still written.
var (
	ErrMissingTitle = errors.New("missing title")
	ErrMissingURL   = errors.New("missing product url")
	ErrMissingPrice = errors.New("missing price")
)

// Validator reports products that fell back to placeholder values.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns every problem found on p joined into one error, or nil.
func (v *Validator) Validate(p models.Product) error {
	var errs []error

	if p.Title == UntitledProduct {
		errs = append(errs, ErrMissingTitle)
	}

	if p.URL == "" {
		errs = append(errs, ErrMissingURL)
	}

	if p.Price == PriceUnknown {
		errs = append(errs, ErrMissingPrice)
	}

	return errors.Join(errs...)
}

package fetcher

import (
	"errors"
	"fmt"
)

// Fetch errors. FetchOrPlaceholder turns each of them into placeholder data.
var (
	ErrInvalidJSON       = errors.New("response is not valid JSON")
	ErrUnrecognizedShape = errors.New("response has no recognized product array")
	ErrEmptyResult       = errors.New("response contains no products")
)

// StatusError captures non-2xx responses from the product API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Body == "" {
		return fmt.Sprintf("product request failed: status %d", e.StatusCode)
	}

	return fmt.Sprintf("product request failed: status %d: %s", e.StatusCode, e.Body)
}

package fetcher

import (
	"fmt"

	"github.com/tidwall/gjson"

	"top10/internal/models"
)

// envelopePaths are tried in order before falling back to a bare array.
var envelopePaths = []string{
	"data.deals",
	"data.products",
	"deals",
}

// ExtractRecords pulls the product array out of a response body. Recognized
// shapes: {"data":{"deals":[...]}}, {"data":{"products":[...]}},
// {"deals":[...]} and a bare [...]; the first non-empty one wins. The result
// is truncated to limit.
func ExtractRecords(body []byte, limit int) ([]models.RawProduct, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(body)

	var (
		list  gjson.Result
		found bool
	)

	// An empty array under one key does not stop the search; the next
	// shape may still carry products.
	for _, path := range envelopePaths {
		candidate := root.Get(path)
		if !candidate.IsArray() {
			continue
		}

		found = true

		if len(candidate.Array()) > 0 {
			list = candidate
			break
		}
	}

	if !list.Exists() && root.IsArray() {
		found = true
		list = root
	}

	if !found {
		return nil, fmt.Errorf("%w: looked for %v or a bare array", ErrUnrecognizedShape, envelopePaths)
	}

	var records []models.RawProduct

	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}

		records = append(records, models.RawProduct(item.Raw))

		return limit <= 0 || len(records) < limit
	})

	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	return records, nil
}

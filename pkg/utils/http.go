// Package utils provides common utility functions.
package utils

import "net/http"

// UserAgent identifies the generator to upstream APIs.
const UserAgent = "top10/1.0"

// HTTPHelper provides HTTP utility functions.
type HTTPHelper struct{}

// NewHTTPHelper creates a new HTTP helper.
func NewHTTPHelper() *HTTPHelper {
	return &HTTPHelper{}
}

// BuildHeaders creates HTTP headers with defaults. Custom headers with an
// empty value are skipped.
func (h *HTTPHelper) BuildHeaders(customHeaders map[string]string) http.Header {
	headers := http.Header{}

	headers.Set("User-Agent", UserAgent)
	headers.Set("Accept", "application/json")

	for key, value := range customHeaders {
		if value == "" {
			continue
		}

		headers.Set(key, value)
	}

	return headers
}

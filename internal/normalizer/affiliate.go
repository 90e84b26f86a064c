package normalizer

import (
	"net/url"
	"regexp"
	"strings"
)

var asinPattern = regexp.MustCompile(`/(?:dp|gp/product)/([A-Z0-9]{10})(?:[/?#]|$)`)

// ASINFromURL extracts the product code from /dp/<ASIN> or
// /gp/product/<ASIN> links. It returns "" when none is present.
func ASINFromURL(link string) string {
	m := asinPattern.FindStringSubmatch(link)
	if m == nil {
		return ""
	}

	return m[1]
}

// AffiliateURL appends tag=<tag> to base, replacing any tag parameter already
// there so the result carries it exactly once. An empty base yields "" and an
// empty tag returns base unchanged.
func AffiliateURL(base, tag string) string {
	base = strings.TrimSpace(base)
	tag = strings.TrimSpace(tag)

	if base == "" {
		return ""
	}

	if tag == "" {
		return base
	}

	fragment := ""
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base, fragment = base[:i], base[i:]
	}

	path, query, hasQuery := strings.Cut(base, "?")

	var kept []string

	if hasQuery {
		for _, pair := range strings.Split(query, "&") {
			if pair == "" {
				continue
			}

			key, _, _ := strings.Cut(pair, "=")
			if key == "tag" {
				continue
			}

			kept = append(kept, pair)
		}
	}

	kept = append(kept, "tag="+url.QueryEscape(tag))

	return path + "?" + strings.Join(kept, "&") + fragment
}

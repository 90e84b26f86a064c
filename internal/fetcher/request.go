package fetcher

import (
	"net/url"
	"strings"

	"top10/internal/config"
)

// Query holds everything needed to build the upstream query string.
type Query struct {
	Style  string
	Locale string
	NodeID string
	Search string
}

// NewQuery builds a query from configuration and a resolved node id.
func NewQuery(cfg *config.Config, nodeID string) Query {
	return Query{
		Style:  cfg.API.ParamStyle,
		Locale: cfg.API.Domain,
		NodeID: nodeID,
		Search: cfg.SearchTerm(),
	}
}

// Values encodes the query. The deals style sends domain + node_id; the search
// style sends country + query and keeps the node id as category_id.
func (q Query) Values() url.Values {
	params := url.Values{}
	locale := strings.ToUpper(strings.TrimSpace(q.Locale))

	switch q.Style {
	case config.ParamStyleSearch:
		params.Set("country", locale)
		params.Set("query", strings.TrimSpace(q.Search))

		if q.NodeID != "" {
			params.Set("category_id", q.NodeID)
		}
	default:
		params.Set("domain", locale)
		params.Set("node_id", q.NodeID)
	}

	return params
}

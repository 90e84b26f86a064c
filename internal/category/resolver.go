// Package category maps a niche label and free-text context to the node id the
// product API uses to filter results.
package category

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultNodeID is used when no rule matches (Electronics).
const DefaultNodeID = "172282"

// Rule maps a set of keywords to a node id. A rule matches when any keyword
// occurs as a substring of the lowercased input.
type Rule struct {
	Name     string
	Keywords []string
	NodeID   string
}

// DefaultRules is the ordered rule table. Order matters: the first match wins.
var DefaultRules = []Rule{
	{Name: "electronics", Keywords: []string{"electronics", "tech", "gadget"}, NodeID: "172282"},
	{Name: "kitchen", Keywords: []string{"kitchen", "cook", "home"}, NodeID: "1055398"},
	{Name: "beauty", Keywords: []string{"beauty", "skin", "makeup"}, NodeID: "3760911"},
	{Name: "sports", Keywords: []string{"fitness", "sport", "gym", "outdoor"}, NodeID: "3375251"},
	{Name: "toys", Keywords: []string{"toy", "kids", "baby", "game"}, NodeID: "165793011"},
	{Name: "books", Keywords: []string{"book", "read", "kindle"}, NodeID: "283155"},
	{Name: "pets", Keywords: []string{"pet", "dog", "cat"}, NodeID: "2619533011"},
	{Name: "office", Keywords: []string{"office", "desk", "work"}, NodeID: "1064954"},
	{Name: "garden", Keywords: []string{"garden", "patio", "lawn"}, NodeID: "2972638011"},
	{Name: "automotive", Keywords: []string{"auto", "car", "vehicle"}, NodeID: "15684181"},
}

// Resolver picks a node id for a niche.
type Resolver struct {
	rules    []Rule
	fallback string
}

// NewResolver creates a resolver with the default rule table.
func NewResolver() *Resolver {
	return NewResolverWithRules(DefaultRules, DefaultNodeID)
}

// NewResolverWithRules creates a resolver with a custom rule table.
func NewResolverWithRules(rules []Rule, fallback string) *Resolver {
	return &Resolver{
		rules:    rules,
		fallback: fallback,
	}
}

// Resolve returns override when set, else the node id of the first rule
// matching niche + context, else the fallback.
func (r *Resolver) Resolve(niche, context, override string) string {
	if id := strings.TrimSpace(override); id != "" {
		return id
	}

	if rule, ok := r.Match(niche, context); ok {
		return rule.NodeID
	}

	return r.fallback
}

// Match returns the first rule whose keywords occur in niche or context.
func (r *Resolver) Match(niche, context string) (Rule, bool) {
	haystack := strings.ToLower(niche + " " + context)

	return lo.Find(r.rules, func(rule Rule) bool {
		return lo.ContainsBy(rule.Keywords, func(keyword string) bool {
			return strings.Contains(haystack, keyword)
		})
	})
}

// Resolve uses the default rule table.
func Resolve(niche, context, override string) string {
	return NewResolver().Resolve(niche, context, override)
}

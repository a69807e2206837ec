package catalog

import (
	"regexp"
	"strings"
)

var slugSpaces = regexp.MustCompile(`\s+`)

// Slug converts a category name to the identifier the catalog UI has
// always used for filter buttons: lowercased, whitespace runs as "_".
func Slug(category string) string {
	return slugSpaces.ReplaceAllString(strings.ToLower(category), "_")
}

// AllCategories is the slug that disables category filtering.
const AllCategories = "todos"

// Filter is a stateless predicate over the product list. Category is
// matched by slug; Query is a case-insensitive substring match against
// name, code and description.
type Filter struct {
	Category string
	Query    string
}

func (f Filter) Match(p Product) bool {
	if f.Category != "" && f.Category != AllCategories && Slug(p.Category) != f.Category {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Code), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

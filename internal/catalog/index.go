// Package catalog is the in-memory view over the fetched menu: category
// extraction, search filtering and sorting for the menu screen.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// CategoryAll is the sentinel chip that disables category filtering.
const CategoryAll = "All"

// SortKey selects the menu ordering.
type SortKey int

const (
	SortNameAsc SortKey = iota
	SortPriceAsc
	SortPriceDesc
)

// Query is the menu screen's filter state. An empty search matches
// everything; CategoryAll (or empty) disables the category filter.
type Query struct {
	Search   string
	Category string
}

// Filter applies the search and category filters, ANDed. The search is
// a case-insensitive substring match against name and description; the
// category match is exact.
func Filter(items []domain.MenuItem, q Query) []domain.MenuItem {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	byCategory := q.Category != "" && q.Category != CategoryAll

	out := make([]domain.MenuItem, 0, len(items))
	for _, it := range items {
		if byCategory && it.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Sort returns the items ordered by key. Name ordering is locale-aware;
// ties keep the input order.
func Sort(items []domain.MenuItem, key SortKey) []domain.MenuItem {
	out := make([]domain.MenuItem, len(items))
	copy(out, items)
	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.Cents < out[j].Price.Cents
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.Cents > out[j].Price.Cents
		})
	default:
		coll := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return coll.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}

// Categories lists the distinct category labels in first-seen order,
// prefixed with the "All" sentinel for the chip row.
func Categories(items []domain.MenuItem) []string {
	out := []string{CategoryAll}
	seen := make(map[string]bool)
	for _, it := range items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	return out
}

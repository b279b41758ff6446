// Package view derives the lists and figures the dashboards display from
// decoded records. Every function is pure.
package view

import (
	"sort"
	"strings"

	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

// AllCategories disables the category filter.
const AllCategories = "all"

type CatalogFilter struct {
	Search   string
	Category string
}

func (f CatalogFilter) matches(p record.Product) bool {
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// BuyerCatalog lists the active products not owned by viewer that pass the
// search and category filters, in source order.
func BuyerCatalog(products []record.Product, f CatalogFilter, viewer string, owns identity.Matcher) []record.Product {
	out := make([]record.Product, 0, len(products))
	for _, p := range products {
		if !p.Active() || owns(p.Owner, viewer) {
			continue
		}
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Owned lists the products whose owner refers to viewer, in source order.
func Owned(products []record.Product, viewer string, owns identity.Matcher) []record.Product {
	out := make([]record.Product, 0)
	for _, p := range products {
		if owns(p.Owner, viewer) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories present, sorted.
func Categories(products []record.Product) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

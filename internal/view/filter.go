// Package view derives the runway and admin presentation models from catalog
// snapshots. Everything here is a pure function of its inputs.
package view

import (
	"github.com/starford/pasarela/internal/models"
	"github.com/starford/pasarela/internal/normalize"
)

// All selects every category or status.
const All = "all"

// Filter is the runway filter state. Category is All or a models.Category;
// Status is All, available or made_to_order.
type Filter struct {
	Category string `json:"category"`
	Status   string `json:"status"`
}

// DefaultFilter shows every public product.
var DefaultFilter = Filter{Category: All, Status: All}

// ParseFilter builds a filter from raw query values. Unknown values select
// all; archived is never a public filter.
func ParseFilter(category, status string) Filter {
	f := DefaultFilter
	if c, ok := normalize.LookupCategory(category); ok {
		f.Category = string(c)
	}
	if s, ok := normalize.LookupStatus(status); ok && s != models.StatusArchived {
		f.Status = string(s)
	}
	return f
}

// Visible returns the products shown on the runway for f, in catalog order.
// Archived products are always excluded.
func Visible(products []models.Product, f Filter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Status == models.StatusArchived {
			continue
		}
		if f.Category != All && f.Category != "" && string(p.Category) != f.Category {
			continue
		}
		if f.Status != All && f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Runway is the public list state after a filter change.
type Runway struct {
	Filter Filter `json:"filter"`
	Cards  []Card `json:"cards"`
}

// OnFilterChange applies a new filter to a catalog snapshot.
func OnFilterChange(products []models.Product, labels Labels, f Filter) Runway {
	visible := Visible(products, f)
	cards := make([]Card, len(visible))
	for i, p := range visible {
		cards[i] = NewCard(p, labels)
	}
	return Runway{Filter: f, Cards: cards}
}

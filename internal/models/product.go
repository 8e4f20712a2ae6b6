// Package models defines the domain types for Pasarela.
package models

// Record is an untyped catalog record as decoded from JSON. It may carry any
// historical shape of a product.
type Record = map[string]any

// Category is the closed set of catalog categories.
type Category string

const (
	CategoryWomen     Category = "women"
	CategoryMen       Category = "men"
	CategoryAccessory Category = "accessory"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWomen, CategoryMen, CategoryAccessory}

// Status is the lifecycle tier of a product.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusMadeToOrder Status = "made_to_order"
	StatusArchived    Status = "archived"
)

// PriceMode controls whether a price is shown on the runway.
type PriceMode string

const (
	PriceVisible PriceMode = "visible"
	PriceHidden  PriceMode = "hidden"
)

// DefaultCurrency is used when a price carries no currency.
const DefaultCurrency = "USD"

// Price is the pricing record of a product. Value is kept while hidden so an
// operator can set it before publishing.
type Price struct {
	Mode     PriceMode `json:"mode"`
	Value    *float64  `json:"value"`
	Currency string    `json:"currency"`
}

// Product is the canonical catalog entry. Field order matches the exported
// products.json layout.
type Product struct {
	ID          string   `json:"id"`
	Collection  string   `json:"collection"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Subtitle    string   `json:"subtitle"`
	Materials   string   `json:"materials"`
	Sizes       string   `json:"sizes"`
	Technique   string   `json:"technique"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Hours       *float64 `json:"hours"`
	Price       Price    `json:"price"`
	Images      []string `json:"images"`
}

// PrimaryImage returns the first image or an empty string.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// DisplayName returns the name, falling back to the id.
func (p Product) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Clone returns a deep copy that shares no memory with p.
func (p Product) Clone() Product {
	out := p
	out.Hours = cloneFloat(p.Hours)
	out.Price.Value = cloneFloat(p.Price.Value)
	out.Images = append(make([]string, 0, len(p.Images)), p.Images...)
	return out
}

// Record converts the product back into a raw record using canonical keys.
func (p Product) Record() Record {
	price := Record{
		"mode":     string(p.Price.Mode),
		"value":    nil,
		"currency": p.Price.Currency,
	}
	if p.Price.Value != nil {
		price["value"] = *p.Price.Value
	}
	var hours any
	if p.Hours != nil {
		hours = *p.Hours
	}
	return Record{
		"id":          p.ID,
		"collection":  p.Collection,
		"category":    string(p.Category),
		"name":        p.Name,
		"subtitle":    p.Subtitle,
		"materials":   p.Materials,
		"sizes":       p.Sizes,
		"technique":   p.Technique,
		"description": p.Description,
		"status":      string(p.Status),
		"hours":       hours,
		"price":       price,
		"images":      append([]string(nil), p.Images...),
	}
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

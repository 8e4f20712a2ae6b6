package view

import (
	"github.com/starford/pasarela/internal/contact"
	"github.com/starford/pasarela/internal/models"
)

// Card is a runway list entry.
type Card struct {
	ID            string          `json:"id"`
	Image         string          `json:"image"`
	Name          string          `json:"name"`
	Subtitle      string          `json:"subtitle"`
	Category      models.Category `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Status        models.Status   `json:"status"`
	StatusLabel   string          `json:"status_label"`
	Sizes         string          `json:"sizes"`
}

// Detail is the runway detail view of a single product.
type Detail struct {
	Card
	Description string   `json:"description"`
	Pills       []string `json:"pills"`
	PriceLine   string   `json:"price_line"`
	ContactURL  string   `json:"contact_url"`
}

// Row is an entry of the admin product table.
type Row struct {
	ID          string        `json:"id"`
	Image       string        `json:"image"`
	Name        string        `json:"name"`
	Subtitle    string        `json:"subtitle"`
	Status      models.Status `json:"status"`
	StatusLabel string        `json:"status_label"`
}

const untitled = "(untitled)"

// NewCard renders p for the runway list.
func NewCard(p models.Product, labels Labels) Card {
	return Card{
		ID:            p.ID,
		Image:         p.PrimaryImage(),
		Name:          p.Name,
		Subtitle:      firstNonEmpty(p.Subtitle, p.Collection, p.Materials),
		Category:      p.Category,
		CategoryLabel: labels.Category(p.Category),
		Status:        p.Status,
		StatusLabel:   labels.Status(p.Status),
		Sizes:         p.Sizes,
	}
}

// NewDetail renders p for the runway detail view. resolver may be nil, in
// which case the contact link is left empty.
func NewDetail(p models.Product, labels Labels, resolver contact.Resolver) Detail {
	pills := make([]string, 0, 6)
	for _, v := range []string{p.Collection, p.Technique, p.Materials, p.Sizes} {
		if v != "" {
			pills = append(pills, v)
		}
	}
	if p.Hours != nil && *p.Hours > 0 {
		pills = append(pills, labels.Hours(*p.Hours))
	}

	d := Detail{
		Card:        NewCard(p, labels),
		Description: p.Description,
		Pills:       pills,
		PriceLine:   labels.PriceLine(p.Price),
	}
	if resolver != nil {
		d.ContactURL = resolver.Resolve(p)
	}
	return d
}

// NewRow renders p for the admin table.
func NewRow(p models.Product, labels Labels) Row {
	name := p.Name
	if name == "" {
		name = untitled
	}
	return Row{
		ID:          p.ID,
		Image:       p.PrimaryImage(),
		Name:        name,
		Subtitle:    firstNonEmpty(p.Subtitle, p.Materials),
		Status:      p.Status,
		StatusLabel: labels.Status(p.Status),
	}
}

// Rows renders the admin table in catalog order.
func Rows(products []models.Product, labels Labels) []Row {
	out := make([]Row, len(products))
	for i, p := range products {
		out[i] = NewRow(p, labels)
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

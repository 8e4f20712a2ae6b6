package editor

import (
	"strconv"
	"strings"

	"github.com/starford/pasarela/internal/models"
)

// Form is the editable, string-typed view of a product. Images holds one
// path per line.
type Form struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Subtitle      string `json:"subtitle"`
	Collection    string `json:"collection"`
	Category      string `json:"category"`
	Materials     string `json:"materials"`
	Sizes         string `json:"sizes"`
	Technique     string `json:"technique"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	Hours         string `json:"hours"`
	PriceMode     string `json:"price_mode"`
	PriceValue    string `json:"price_value"`
	PriceCurrency string `json:"price_currency"`
	Images        string `json:"images"`
}

// emptyForm is the form shown for a new product.
func emptyForm() Form {
	return Form{
		Category:      string(models.CategoryWomen),
		Status:        string(models.StatusAvailable),
		PriceMode:     string(models.PriceHidden),
		PriceCurrency: models.DefaultCurrency,
	}
}

// FormFrom populates a form from p.
func FormFrom(p models.Product) Form {
	return Form{
		ID:            p.ID,
		Name:          p.Name,
		Subtitle:      p.Subtitle,
		Collection:    p.Collection,
		Category:      string(p.Category),
		Materials:     p.Materials,
		Sizes:         p.Sizes,
		Technique:     p.Technique,
		Description:   p.Description,
		Status:        string(p.Status),
		Hours:         formatOptional(p.Hours),
		PriceMode:     string(p.Price.Mode),
		PriceValue:    formatOptional(p.Price.Value),
		PriceCurrency: p.Price.Currency,
		Images:        strings.Join(p.Images, "\n"),
	}
}

// ImageList splits the images field into trimmed, non-empty lines.
func (f Form) ImageList() []string {
	out := []string{}
	for _, line := range strings.Split(f.Images, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Record converts the form into a raw record with trimmed values.
func (f Form) Record() models.Record {
	return models.Record{
		"id":          strings.TrimSpace(f.ID),
		"name":        strings.TrimSpace(f.Name),
		"subtitle":    strings.TrimSpace(f.Subtitle),
		"collection":  strings.TrimSpace(f.Collection),
		"category":    f.Category,
		"materials":   strings.TrimSpace(f.Materials),
		"sizes":       strings.TrimSpace(f.Sizes),
		"technique":   strings.TrimSpace(f.Technique),
		"description": strings.TrimSpace(f.Description),
		"status":      f.Status,
		"hours":       f.Hours,
		"price": models.Record{
			"mode":     f.PriceMode,
			"value":    f.PriceValue,
			"currency": strings.TrimSpace(f.PriceCurrency),
		},
		"images": f.ImageList(),
	}
}

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

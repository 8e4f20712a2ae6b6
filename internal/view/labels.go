package view

import (
	"strconv"

	"github.com/starford/pasarela/internal/models"
)

// Label keys read from the site configuration.
const (
	LabelPriceOnRequest = "price_on_request"
	LabelHours          = "hours"
	legacyMadeToOrder   = "loom"
)

var defaultLabels = map[string]string{
	string(models.StatusAvailable):   "Disponible",
	string(models.StatusMadeToOrder): "Hecho a pedido",
	string(models.StatusArchived):    "Archivo",
	string(models.CategoryWomen):     "Women",
	string(models.CategoryMen):       "Men",
	string(models.CategoryAccessory): "Accessories",
	LabelPriceOnRequest:              "price on request",
	LabelHours:                       "hours",
}

// Labels resolves display strings, preferring configured values.
type Labels struct {
	m map[string]string
}

// NewLabels wraps the configured label map, which may be nil.
func NewLabels(m map[string]string) Labels {
	return Labels{m: m}
}

func (l Labels) get(key string) string {
	if v := l.m[key]; v != "" {
		return v
	}
	if key == string(models.StatusMadeToOrder) {
		if v := l.m[legacyMadeToOrder]; v != "" {
			return v
		}
	}
	return defaultLabels[key]
}

// Status returns the display label of s.
func (l Labels) Status(s models.Status) string {
	if v := l.get(string(s)); v != "" {
		return v
	}
	return string(s)
}

// Category returns the display label of c.
func (l Labels) Category(c models.Category) string {
	if v := l.get(string(c)); v != "" {
		return v
	}
	return string(c)
}

// PriceLine renders the price pill: "{currency} {value}" for a visible
// numeric price, the price-on-request label otherwise.
func (l Labels) PriceLine(p models.Price) string {
	if p.Mode == models.PriceVisible && p.Value != nil {
		currency := p.Currency
		if currency == "" {
			currency = models.DefaultCurrency
		}
		return currency + " " + formatNumber(*p.Value)
	}
	return l.get(LabelPriceOnRequest)
}

// Hours renders a working-hours pill.
func (l Labels) Hours(h float64) string {
	return formatNumber(h) + " " + l.get(LabelHours)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

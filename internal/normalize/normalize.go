// Package normalize coerces raw catalog records of any historical shape into
// canonical products. Normalize is total and idempotent: every input yields a
// fully populated product and normalizing a canonical product is a no-op.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/starford/pasarela/internal/models"
)

// IDLength is the length of generated product ids.
const IDLength = 24

// NewID returns a fresh opaque product id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:IDLength]
}

// Normalize converts a raw record into a canonical product. It never fails;
// missing or malformed fields take their defaults.
func Normalize(raw models.Record) models.Product {
	p := models.Product{
		ID:       normalizeID(lookup(raw, idKeys)),
		Category: Category(lookup(raw, categoryKeys)),
		Status:   Status(lookup(raw, statusKeys)),
		Hours:    nonNegative(Number(lookup(raw, hoursKeys))),
		Price:    normalizePrice(raw),
		Images:   normalizeImages(lookup(raw, imageKeys)),
	}
	for _, f := range textFields {
		f.set(&p, String(lookup(raw, f.keys)))
	}
	return p
}

// NormalizeAll normalizes every record, preserving order.
func NormalizeAll(raws []models.Record) []models.Product {
	out := make([]models.Product, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

// String converts any scalar to its string form. Nil and values with no
// sensible string form become "".
func String(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// Number parses v as a finite number. Blank, non-numeric and non-finite
// input yields nil.
func Number(v any) *float64 {
	s := strings.TrimSpace(String(v))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Category maps a raw category value onto the closed category set.
// Unrecognized and missing values resolve to women.
func Category(v any) models.Category {
	if c, ok := LookupCategory(v); ok {
		return c
	}
	return models.CategoryWomen
}

// Status maps a raw status value onto the closed status set. The legacy
// "loom" spelling is made_to_order; anything unrecognized is available.
func Status(v any) models.Status {
	if s, ok := LookupStatus(v); ok {
		return s
	}
	return models.StatusAvailable
}

// PriceMode maps a raw price mode; only "visible" publishes the price.
func PriceMode(v any) models.PriceMode {
	if foldKey(String(v)) == string(models.PriceVisible) {
		return models.PriceVisible
	}
	return models.PriceHidden
}

func normalizeID(v any) string {
	if id := strings.TrimSpace(String(v)); id != "" {
		return id
	}
	return NewID()
}

func normalizePrice(raw models.Record) models.Price {
	out := models.Price{Mode: models.PriceHidden}
	switch pv := lookup(raw, priceKeys).(type) {
	case nil:
	case map[string]any:
		out.Mode = PriceMode(pv["mode"])
		out.Value = Number(pv["value"])
		out.Currency = strings.TrimSpace(String(pv["currency"]))
	default:
		// Older catalogs stored a bare amount.
		out.Value = Number(pv)
	}
	if out.Currency == "" {
		out.Currency = strings.TrimSpace(String(lookup(raw, currencyKeys)))
	}
	if out.Currency == "" {
		out.Currency = models.DefaultCurrency
	}
	return out
}

func normalizeImages(v any) []string {
	out := []string{}
	add := func(e any) {
		if s := strings.TrimSpace(String(e)); s != "" {
			out = append(out, s)
		}
	}
	switch iv := v.(type) {
	case nil:
	case []any:
		for _, e := range iv {
			add(e)
		}
	case []string:
		for _, e := range iv {
			add(e)
		}
	default:
		add(iv)
	}
	return out
}

func nonNegative(f *float64) *float64 {
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

// lookup returns the first non-nil value among keys.
func lookup(raw models.Record, keys []string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// LookupCategory reports the category a raw value names, without defaulting.
func LookupCategory(v any) (models.Category, bool) {
	c, ok := categoryAliases[foldKey(String(v))]
	return c, ok
}

// LookupStatus reports the status a raw value names, without defaulting.
func LookupStatus(v any) (models.Status, bool) {
	s, ok := statusAliases[foldKey(String(v))]
	return s, ok
}

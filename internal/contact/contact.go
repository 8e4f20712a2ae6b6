// Package contact builds outbound messaging links for a product.
package contact

import (
	"net/url"
	"strings"

	"github.com/starford/pasarela/internal/models"
)

// DefaultPrefill is the WhatsApp message template used when none is configured.
const DefaultPrefill = "Hola, me interesa: {name}"

// ctaName stands in for a product name on the generic call-to-action link.
const ctaName = "una pieza"

// Resolver returns the contact link for a product.
type Resolver interface {
	Resolve(p models.Product) string
}

// LinkResolver resolves links from the site contact configuration.
type LinkResolver struct {
	cfg models.ContactConfig
}

// NewResolver creates a resolver for cfg.
func NewResolver(cfg models.ContactConfig) *LinkResolver {
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	return &LinkResolver{cfg: cfg}
}

// Resolve returns an Instagram profile link in instagram mode and a wa.me
// deep link with the product name substituted into the prefill otherwise.
func (r *LinkResolver) Resolve(p models.Product) string {
	if r.cfg.Mode == models.ContactInstagram {
		handle := strings.TrimPrefix(strings.TrimSpace(r.cfg.Instagram.Handle), "@")
		return "https://instagram.com/" + url.PathEscape(handle)
	}

	tpl := r.cfg.WhatsApp.Prefill
	if tpl == "" {
		tpl = DefaultPrefill
	}
	msg := strings.Replace(tpl, "{name}", p.Name, 1)
	return "https://wa.me/" + digits(r.cfg.WhatsApp.PhoneE164) + "?text=" + encodeComponent(msg)
}

// CallToAction returns the generic contact link used outside a product.
func (r *LinkResolver) CallToAction() string {
	return r.Resolve(models.Product{Name: ctaName})
}

func digits(phone string) string {
	var b strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// encodeComponent percent-encodes s for a query value, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

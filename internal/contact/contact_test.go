package contact

import (
	"testing"

	"github.com/starford/pasarela/internal/models"
)

func TestResolve_WhatsApp(t *testing.T) {
	r := NewResolver(models.ContactConfig{
		Mode: models.ContactWhatsApp,
		WhatsApp: models.WhatsAppConfig{
			PhoneE164: "+54 9 11 5555-0000",
			Prefill:   "Hi, I like {name}!",
		},
	})
	got := r.Resolve(models.Product{Name: "Wool Coat"})
	want := "https://wa.me/5491155550000?text=Hi%2C%20I%20like%20Wool%20Coat%21"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_DefaultModeAndTemplate(t *testing.T) {
	r := NewResolver(models.ContactConfig{WhatsApp: models.WhatsAppConfig{PhoneE164: "+100"}})
	got := r.Resolve(models.Product{Name: "Ruana"})
	want := "https://wa.me/100?text=Hola%2C%20me%20interesa%3A%20Ruana"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_OnlyFirstPlaceholderReplaced(t *testing.T) {
	r := NewResolver(models.ContactConfig{WhatsApp: models.WhatsAppConfig{Prefill: "{name} {name}"}})
	got := r.Resolve(models.Product{Name: "A"})
	want := "https://wa.me/?text=A%20%7Bname%7D"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_Instagram(t *testing.T) {
	r := NewResolver(models.ContactConfig{
		Mode:      models.ContactInstagram,
		Instagram: models.InstagramConfig{Handle: "@pasarela.studio"},
	})
	if got := r.Resolve(models.Product{Name: "x"}); got != "https://instagram.com/pasarela.studio" {
		t.Errorf("Resolve = %q", got)
	}
}

func TestCallToAction(t *testing.T) {
	r := NewResolver(models.ContactConfig{WhatsApp: models.WhatsAppConfig{PhoneE164: "1", Prefill: "{name}"}})
	if got := r.CallToAction(); got != "https://wa.me/1?text=una%20pieza" {
		t.Errorf("CallToAction = %q", got)
	}
}

func TestResolve_ModeIsCaseInsensitive(t *testing.T) {
	site := models.SiteConfig{Contact: models.ContactConfig{
		Mode:      " Instagram ",
		Instagram: models.InstagramConfig{Handle: "@casatelar"},
	}}.WithDefaults()
	if site.Contact.Mode != models.ContactInstagram {
		t.Errorf("folded mode = %q", site.Contact.Mode)
	}
	for _, cfg := range []models.ContactConfig{site.Contact, {Mode: "INSTAGRAM", Instagram: models.InstagramConfig{Handle: "casatelar"}}} {
		if got := NewResolver(cfg).Resolve(models.Product{Name: "Ruana"}); got != "https://instagram.com/casatelar" {
			t.Errorf("Resolve(%q) = %q", cfg.Mode, got)
		}
	}
}

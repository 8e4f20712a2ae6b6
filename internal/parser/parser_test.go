package parser

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/starford/pasarela/internal/apperr"
	"github.com/starford/pasarela/internal/models"
)

func TestParseCatalog_Array(t *testing.T) {
	recs, err := ParseCatalog([]byte(`[{"id":"a","name":"Coat"},null,{"status":"loom"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	if recs[0]["name"] != "Coat" {
		t.Errorf("recs[0] = %v", recs[0])
	}
	if recs[1] == nil || len(recs[1]) != 0 {
		t.Errorf("null element should decode to empty record, got %v", recs[1])
	}
}

func TestParseCatalog_KeepsLargeNumbers(t *testing.T) {
	recs, err := ParseCatalog([]byte(`[{"id":9007199254740993},{"id":9007199254740992,"hours":12.5}]`))
	if err != nil {
		t.Fatal(err)
	}
	if got := recs[0]["id"]; got != json.Number("9007199254740993") {
		t.Errorf("id = %#v", got)
	}
	if recs[0]["id"] == recs[1]["id"] {
		t.Error("distinct numeric ids decoded equal")
	}
	if got := recs[1]["hours"]; got != json.Number("12.5") {
		t.Errorf("hours = %#v", got)
	}
}

func TestParseCatalog_NullAndEmpty(t *testing.T) {
	for _, in := range []string{"", "  ", "null", "[]"} {
		recs, err := ParseCatalog([]byte(in))
		if err != nil {
			t.Errorf("%q: unexpected error: %v", in, err)
		}
		if len(recs) != 0 {
			t.Errorf("%q: len = %d", in, len(recs))
		}
	}
}

func TestParseCatalog_Malformed(t *testing.T) {
	cases := []string{
		`{"id":"a"}`,
		`[{"id":"a"},`,
		`[1, 2]`,
		`"products"`,
	}
	for _, in := range cases {
		_, err := ParseCatalog([]byte(in))
		if !errors.Is(err, apperr.ErrMalformedCatalog) {
			t.Errorf("%s: err = %v, want ErrMalformedCatalog", in, err)
		}
	}
}

func TestParseCatalog_MessageCarried(t *testing.T) {
	_, err := ParseCatalog([]byte(`[{"id": }]`))
	if err == nil || !strings.Contains(err.Error(), "invalid character") {
		t.Errorf("err = %v, want decoder message", err)
	}
}

func TestParseSiteConfig(t *testing.T) {
	cfg, err := ParseSiteConfig([]byte(`{
		"brandName": "Pasarela",
		"labels": {"loom": "En Telar"},
		"contact": {"mode": "instagram", "instagram": {"handle": "@pasarela"}}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BrandName != "Pasarela" || cfg.RunwayTitle != "Digital Showroom" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Contact.Mode != models.ContactInstagram || cfg.Contact.Instagram.Handle != "@pasarela" {
		t.Errorf("contact = %+v", cfg.Contact)
	}
	if cfg.Labels["loom"] != "En Telar" {
		t.Errorf("labels = %v", cfg.Labels)
	}
}

func TestParseSiteConfig_Defaults(t *testing.T) {
	cfg, err := ParseSiteConfig([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BrandName != "Showroom" || cfg.Contact.Mode != models.ContactWhatsApp {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseSiteConfig_Invalid(t *testing.T) {
	if _, err := ParseSiteConfig([]byte(`{"brandName": 5}`)); err == nil {
		t.Error("expected error for wrong-typed brandName")
	}
}

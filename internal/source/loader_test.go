package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starford/pasarela/internal/apperr"
	"github.com/starford/pasarela/internal/testutil"
)

func TestLoad_Local(t *testing.T) {
	_, files := testutil.Catalog(t)
	res, err := NewLoader(files, nil).Load(context.Background(), "config.json", "products.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Site.BrandName != "Casa Telar" {
		t.Errorf("brand = %q", res.Site.BrandName)
	}
	if len(res.Records) != 3 || res.Records[0]["id"] != "coat-1" {
		t.Errorf("records = %v", res.Records)
	}
}

func TestLoad_HTTP(t *testing.T) {
	var cacheControl string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cacheControl = r.Header.Get("Cache-Control")
		switch r.URL.Path {
		case "/config.json":
			w.Write([]byte(testutil.SiteJSON))
		case "/products.json":
			w.Write([]byte(testutil.CatalogJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	res, err := NewLoader(nil, srv.Client()).Load(context.Background(), srv.URL+"/config.json", srv.URL+"/products.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Records) != 3 {
		t.Errorf("records = %d", len(res.Records))
	}
	if cacheControl != "no-store" {
		t.Errorf("Cache-Control = %q", cacheControl)
	}
}

func TestLoad_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/products.json" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ref := srv.URL + "/products.json"
	_, err := NewLoader(nil, srv.Client()).Load(context.Background(), srv.URL+"/config.json", ref)
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("err = %v, want HTTP 404", err)
	}
	if want := "load " + ref + ": HTTP 404"; err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestLoad_MissingLocalFile(t *testing.T) {
	_, files := testutil.TestData(t, map[string]string{"config.json": `{}`})
	if _, err := NewLoader(files, nil).Load(context.Background(), "config.json", "products.json"); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestLoad_MalformedCatalog(t *testing.T) {
	_, files := testutil.TestData(t, map[string]string{
		"config.json":   `{}`,
		"products.json": `{"id":"not-a-list"}`,
	})
	_, err := NewLoader(files, nil).Load(context.Background(), "config.json", "products.json")
	if !errors.Is(err, apperr.ErrMalformedCatalog) {
		t.Fatalf("err = %v", err)
	}
}

func TestFetch_NoDataDir(t *testing.T) {
	if _, err := NewLoader(nil, nil).Fetch(context.Background(), "products.json"); err == nil {
		t.Fatal("expected error without a data directory")
	}
}

func TestIsURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/p.json": true,
		"HTTP://example.com/p.json":  true,
		"products.json":              false,
		"data/http.json":             false,
	}
	for in, want := range cases {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

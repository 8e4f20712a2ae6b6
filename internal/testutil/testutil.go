// Package testutil provides shared test helpers for data directories and
// catalog fixtures.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/pasarela/internal/storage"
)

// SiteJSON is a minimal site configuration resource.
const SiteJSON = `{
  "brandName": "Casa Telar",
  "runwayTitle": "Pasarela",
  "heroImage": "assets/images/hero.jpg",
  "contact": {"mode": "whatsapp", "whatsapp": {"phoneE164": "+54 9 11 5555-0000"}}
}`

// CatalogJSON is a small catalog mixing canonical and legacy records.
const CatalogJSON = `[
  {"id": "coat-1", "name": "Coat", "category": "women", "status": "loom",
   "price": {"mode": "visible", "value": 120}, "images": ["assets/images/coat.jpg"]},
  {"id": "poncho-2", "title": "Poncho", "category": "men", "status": "available"},
  {"id": "bag-3", "name": "Bag", "category": "accessories", "status": "archived"}
]`

// TestData creates a temporary data directory holding files and returns it
// with a storage.Provider rooted there.
func TestData(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// Catalog returns a data directory seeded with SiteJSON and CatalogJSON as
// config.json and products.json.
func Catalog(t *testing.T) (string, *storage.FS) {
	t.Helper()
	return TestData(t, map[string]string{
		"config.json":   SiteJSON,
		"products.json": CatalogJSON,
	})
}

// WriteFile writes content to name under dir, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Eventually polls fn every tick until it returns true or timeout elapses.
func Eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

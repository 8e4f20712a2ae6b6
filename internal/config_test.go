package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pkgconfig "github.com/starford/pasarela/pkg/config"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestSourceConfig_RequiresRefs(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Source.Catalog = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "source") {
		t.Fatalf("err = %v, want source error", err)
	}
}

func TestSourceConfig_DataDirOnlyForLocal(t *testing.T) {
	cfg := SourceConfig{
		Config:  "https://cdn.example.com/config.json",
		Catalog: "https://cdn.example.com/products.json",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("remote refs without data dir should pass: %v", err)
	}
	if cfg.Local() {
		t.Error("remote refs reported local")
	}

	cfg.Catalog = "products.json"
	if err := cfg.Validate(); err == nil {
		t.Fatal("local catalog without data dir should fail")
	}
}

func TestEventsConfig_NegativeThrottle(t *testing.T) {
	cfg := EventsConfig{Throttle: -time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative throttle should fail")
	}
}

func TestHTTPConfig_Port(t *testing.T) {
	cfg := HTTPConfig{Port: 70000}
	if err := cfg.Validate(); err == nil {
		t.Fatal("out of range port should fail")
	}
	if got := (&HTTPConfig{Port: 9090}).Address(); got != ":9090" {
		t.Errorf("Address = %q", got)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("PASARELA_CATALOG", "https://cdn.example.com/products.json")
	yaml := `app:
  log_level: debug
  http:
    port: 9000
source:
  data_dir: ./data
  config: config.json
  catalog: ${PASARELA_CATALOG}
  watch: false
  timeout: 3s
assets:
  dir: img
  brand: Casa Telar
events:
  throttle: 500ms
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTP.Port != 9000 || cfg.App.LogLevel.String() != "DEBUG" {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Source.Catalog != "https://cdn.example.com/products.json" || cfg.Source.Watch || cfg.Source.Timeout != 3*time.Second {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Assets.Dir != "img" || cfg.Events.Throttle != 500*time.Millisecond {
		t.Errorf("assets = %+v, events = %+v", cfg.Assets, cfg.Events)
	}
}

func TestLoadYAML_ValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("assets:\n  dir: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := pkgconfig.Load(path, NewDefaultConfig())
	if err == nil || !strings.Contains(err.Error(), "config validation failed") {
		t.Fatalf("err = %v", err)
	}
}

package internal

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/pasarela/internal/testutil"
)

func testConfig(dataDir string) *Config {
	cfg := NewDefaultConfig()
	cfg.Source.DataDir = dataDir
	cfg.Source.Watch = false
	return cfg
}

func TestExport(t *testing.T) {
	dir, _ := testutil.Catalog(t)
	var out bytes.Buffer
	err := Export(context.Background(),
		WithConfig(testConfig(dir)),
		WithLogOutput(io.Discard),
		WithOutput(&out),
	)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "[\n  {\n    \"id\": \"coat-1\",") {
		t.Errorf("export = %s", s)
	}
	if !strings.Contains(s, `"status": "made_to_order"`) || !strings.Contains(s, `"name": "Poncho"`) {
		t.Errorf("export not normalized: %s", s)
	}
}

func TestExport_LoadFailure(t *testing.T) {
	dir, _ := testutil.TestData(t, map[string]string{"config.json": `{}`})
	err := Export(context.Background(),
		WithConfig(testConfig(dir)),
		WithLogOutput(io.Discard),
		WithOutput(io.Discard),
	)
	if err == nil {
		t.Fatal("expected error when the catalog is missing")
	}
}

func TestRequiresConfig(t *testing.T) {
	if err := Export(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestBundle(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "Vestido Rojo.JPG", "red")
	testutil.WriteFile(t, dir, "back.png", "back")

	var out bytes.Buffer
	paths, err := Bundle(context.Background(),
		[]string{filepath.Join(dir, "Vestido Rojo.JPG"), filepath.Join(dir, "back.png"), filepath.Join(dir, "vestido rojo.jpg")},
		WithConfig(testConfig(dir)),
		WithOutput(&out),
	)
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	want := []string{"assets/images/vestido-rojo.jpg", "assets/images/back.png"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	zr, err := zip.NewReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != "vestido-rojo.jpg" || zr.File[1].Name != "back.png" {
		t.Errorf("entries = %v", zr.File)
	}
}

func TestBundle_MissingFile(t *testing.T) {
	_, err := Bundle(context.Background(),
		[]string{filepath.Join(t.TempDir(), "nope.jpg")},
		WithConfig(NewDefaultConfig()),
		WithOutput(io.Discard),
	)
	if err == nil {
		t.Fatal("expected error for missing image")
	}
}

func TestBundle_OutputFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "front.jpg", "front")
	target := filepath.Join(dir, "out.zip")

	_, err := Bundle(context.Background(),
		[]string{filepath.Join(dir, "front.jpg")},
		WithConfig(testConfig(dir)),
		WithOutput(io.Discard),
		WithOutputFile(target),
	)
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	zr, err := zip.OpenReader(target)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	if len(zr.File) != 1 || zr.File[0].Name != "front.jpg" {
		t.Errorf("entries = %v", zr.File)
	}
}

func TestBundle_MissingFileLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "front.jpg", "front")
	target := filepath.Join(dir, "out.zip")
	var out bytes.Buffer

	_, err := Bundle(context.Background(),
		[]string{filepath.Join(dir, "front.jpg"), filepath.Join(dir, "missing.jpg")},
		WithConfig(testConfig(dir)),
		WithOutput(&out),
		WithOutputFile(target),
	)
	if err == nil {
		t.Fatal("expected error for missing image")
	}
	if _, statErr := os.Stat(target); !os.IsNotExist(statErr) {
		t.Errorf("archive created on failure: %v", statErr)
	}
	if out.Len() != 0 {
		t.Errorf("output written on failure: %d bytes", out.Len())
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Port  int    `yaml:"port"`
	valid bool
}

func (s *sample) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	s.valid = true
	return nil
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "pasarela")
	p := writeYAML(t, "name: ${SAMPLE_NAME}\nport: 80\n")
	var s sample
	if err := Load(p, &s); err != nil {
		t.Fatal(err)
	}
	if s.Name != "pasarela" || s.Port != 80 || !s.valid {
		t.Errorf("loaded = %+v", s)
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	p := writeYAML(t, "name: x\n")
	s := sample{Port: 8080}
	if err := Load(p, &s); err != nil {
		t.Fatal(err)
	}
	if s.Port != 8080 {
		t.Errorf("port = %d, want default", s.Port)
	}
}

func TestLoad_Errors(t *testing.T) {
	var s sample
	if err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &s); err == nil {
		t.Error("expected error for missing file")
	}
	if err := Load(writeYAML(t, "port: [1\n"), &s); err == nil {
		t.Error("expected parse error")
	}
	if err := Load(writeYAML(t, "port: 0\n"), &s); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadOptional(t *testing.T) {
	s := sample{Port: 1}
	read, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), &s)
	if err != nil || read {
		t.Fatalf("missing file: read=%v err=%v", read, err)
	}
	if !s.valid {
		t.Error("defaults were not validated")
	}

	read, err = LoadOptional(writeYAML(t, "port: 5\n"), &s)
	if err != nil || !read || s.Port != 5 {
		t.Errorf("existing file: read=%v err=%v port=%d", read, err, s.Port)
	}
}

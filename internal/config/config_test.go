package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `default_corpus = "api"

[corpora]
api = "/srv/docs/api"
legacy = "/srv/docs/legacy"

[ui]
accent = "#A78BFA"
code_theme = "dracula"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.DefaultCorpus != "api" {
		t.Errorf("DefaultCorpus = %q, want %q", cfg.DefaultCorpus, "api")
	}
	if cfg.UI.Accent != "#A78BFA" {
		t.Errorf("UI.Accent = %q", cfg.UI.Accent)
	}

	path2, err := cfg.GetCorpusPath("legacy")
	if err != nil {
		t.Fatalf("GetCorpusPath: %v", err)
	}
	if path2 != "/srv/docs/legacy" {
		t.Errorf("GetCorpusPath(legacy) = %q", path2)
	}

	def, err := cfg.GetDefaultCorpusPath()
	if err != nil {
		t.Fatalf("GetDefaultCorpusPath: %v", err)
	}
	if def != "/srv/docs/api" {
		t.Errorf("GetDefaultCorpusPath = %q", def)
	}
}

func TestGetCorpusPathMissing(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.GetCorpusPath("nope"); err == nil {
		t.Error("expected error for unknown corpus")
	}
	if _, err := cfg.GetDefaultCorpusPath(); err == nil {
		t.Error("expected error when no default corpus is configured")
	}
}

func TestLoadFromInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("default_corpus = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

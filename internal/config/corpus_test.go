package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCorpusConfigDefaults(t *testing.T) {
	cc := &CorpusConfig{}

	if got := cc.GetExtension(); got != ".md" {
		t.Errorf("GetExtension = %q, want .md", got)
	}
	if got := cc.CommandsDir(); got != "commands" {
		t.Errorf("CommandsDir = %q", got)
	}
	if got := cc.CvarsDir(); got != "cvars" {
		t.Errorf("CvarsDir = %q", got)
	}
	if got := cc.GetIndexFile(); got != "commands_index.md" {
		t.Errorf("GetIndexFile = %q", got)
	}
	if got := cc.GetMapFile(); got != "map.json" {
		t.Errorf("GetMapFile = %q", got)
	}
	if cc.SchemaViolationsAreWarnings() {
		t.Error("schema violations should default to errors")
	}
}

func TestLoadCorpusConfig(t *testing.T) {
	dir := t.TempDir()
	content := `extension: .mdc
directories:
  commands: cmd-pages/
  cvars: cvar-pages
index_file: index.md
map_file: lookup/map.json
schema_severity: warning
exclude:
  - sp_internal_scratch
`
	if err := os.WriteFile(filepath.Join(dir, "quill.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cc, err := LoadCorpusConfig(dir)
	if err != nil {
		t.Fatalf("LoadCorpusConfig: %v", err)
	}

	if got := cc.GetExtension(); got != ".mdc" {
		t.Errorf("GetExtension = %q", got)
	}
	if got := cc.CommandsDir(); got != "cmd-pages" {
		t.Errorf("CommandsDir = %q (trailing slash should be trimmed)", got)
	}
	if got := cc.CvarsDir(); got != "cvar-pages" {
		t.Errorf("CvarsDir = %q", got)
	}
	if !cc.SchemaViolationsAreWarnings() {
		t.Error("schema_severity: warning not honored")
	}
	if _, ok := cc.ExcludeSet()["sp_internal_scratch"]; !ok {
		t.Error("exclude list not parsed")
	}
}

func TestLoadCorpusConfigMissing(t *testing.T) {
	cc, err := LoadCorpusConfig(t.TempDir())
	if err != nil {
		t.Fatalf("missing quill.yaml should not error: %v", err)
	}
	if cc.GetExtension() != ".md" {
		t.Error("expected defaults for missing config")
	}
}

func TestCorpusConfigValidate(t *testing.T) {
	bad := &CorpusConfig{Extension: ".txt"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unsupported extension")
	}

	badSev := &CorpusConfig{SchemaSeverity: "fatal"}
	if err := badSev.Validate(); err == nil {
		t.Error("expected error for invalid schema_severity")
	}
}

package cli

import (
	"strings"
	"testing"
)

func TestSetFrontmatterDescriptionReplaces(t *testing.T) {
	content := "---\ndescription: stale text\nglobs: commands/*\n---\n### jail\n\nLocks a player up.\n"

	updated, ok := setFrontmatterDescription(content, "Locks a player up.")
	if !ok {
		t.Fatal("expected frontmatter to be rewritten")
	}
	if !strings.Contains(updated, `description: "Locks a player up."`) {
		t.Errorf("description not replaced:\n%s", updated)
	}
	if strings.Contains(updated, "stale text") {
		t.Errorf("old description survived:\n%s", updated)
	}
	if !strings.Contains(updated, "globs: commands/*") {
		t.Errorf("unrelated field lost:\n%s", updated)
	}
	if !strings.Contains(updated, "### jail") {
		t.Errorf("body lost:\n%s", updated)
	}
}

func TestSetFrontmatterDescriptionInserts(t *testing.T) {
	content := "---\nglobs: commands/*\n---\n### jail\n"

	updated, ok := setFrontmatterDescription(content, "Locks a player up.")
	if !ok {
		t.Fatal("expected frontmatter to be rewritten")
	}
	if !strings.Contains(updated, `description: "Locks a player up."`) {
		t.Errorf("description not inserted:\n%s", updated)
	}
}

func TestSetFrontmatterDescriptionNoFrontmatter(t *testing.T) {
	if _, ok := setFrontmatterDescription("### jail\n", "x"); ok {
		t.Error("content without frontmatter must be left alone")
	}
}

func TestQuoteYAMLScalar(t *testing.T) {
	got := quoteYAMLScalar(`say "hi": a\b`)
	want := `"say \"hi\": a\\b"`
	if got != want {
		t.Errorf("quoteYAMLScalar() = %s, want %s", got, want)
	}
}

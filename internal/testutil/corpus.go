// Package testutil provides reusable test utilities for quill integration tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// TestCorpus represents a temporary documentation corpus for testing.
type TestCorpus struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestCorpus creates a new test corpus builder.
// Call Build() to create the actual corpus directory.
func NewTestCorpus(t *testing.T) *TestCorpus {
	t.Helper()
	return &TestCorpus{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the corpus.
// The path is relative to the corpus root.
func (c *TestCorpus) WithFile(path, content string) *TestCorpus {
	c.files[path] = content
	return c
}

// WithPage adds a page file under the given category directory
// ("commands" or "cvars"). The stem is the filename without extension.
func (c *TestCorpus) WithPage(category, stem, content string) *TestCorpus {
	c.files[filepath.Join(category, stem+".md")] = content
	return c
}

// WithIndex sets the commands_index.md content for the corpus.
func (c *TestCorpus) WithIndex(content string) *TestCorpus {
	c.files["commands_index.md"] = content
	return c
}

// WithQuillYAML sets the quill.yaml content for the corpus.
func (c *TestCorpus) WithQuillYAML(yaml string) *TestCorpus {
	c.files["quill.yaml"] = yaml
	return c
}

// Build creates the corpus directory and all configured files.
// Returns the TestCorpus for method chaining.
func (c *TestCorpus) Build() *TestCorpus {
	c.t.Helper()

	c.Path = c.t.TempDir()

	// Category directories exist even when empty.
	for _, dir := range []string{"commands", "cvars"} {
		if err := os.MkdirAll(filepath.Join(c.Path, dir), 0755); err != nil {
			c.t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	for path, content := range c.files {
		c.writeFile(path, content)
	}

	return c
}

// writeFile writes a file to the corpus, creating directories as needed.
func (c *TestCorpus) writeFile(relPath, content string) {
	c.t.Helper()
	fullPath := filepath.Join(c.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		c.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the corpus.
// Returns the content as a string.
func (c *TestCorpus) ReadFile(relPath string) string {
	c.t.Helper()
	fullPath := filepath.Join(c.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		c.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the corpus.
func (c *TestCorpus) FileExists(relPath string) bool {
	c.t.Helper()
	fullPath := filepath.Join(c.Path, relPath)
	_, err := os.Stat(fullPath)
	return err == nil
}

// CommandPage returns a minimal valid command page with the given heading
// and summary.
func CommandPage(name, summary string) string {
	return fmt.Sprintf("### %s\n\n%s\n\nSynopsis:\n\n```\n%s\n```\n", name, summary, name)
}

// CvarPage returns a minimal valid cvar page with the given heading,
// summary, and a Values section.
func CvarPage(name, summary string) string {
	return fmt.Sprintf("### %s\n\n%s\n\nSynopsis:\n\n```\n%s <value>\n```\n\nValues:\n\n- `0` — off\n- `1` — on\n", name, summary, name)
}

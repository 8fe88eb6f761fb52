package corpus

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/quilldocs/quill/internal/config"
)

// Scan enumerates the entity pages of a corpus. The scan is stateless: each
// call re-reads the filesystem. Pages come back sorted by relative path, so
// repeated scans over an unchanged corpus are byte-identical inputs for the
// merger.
//
// only limits the scan to one category; pass "" for both. A missing category
// directory is an empty category, not an error. An unreadable directory or
// file is an I/O failure and aborts the scan.
func Scan(corpusPath string, cfg *config.CorpusConfig, only Category) ([]*Page, error) {
	if _, err := os.Stat(corpusPath); err != nil {
		return nil, fmt.Errorf("corpus root %s: %w", corpusPath, err)
	}

	var pages []*Page
	for _, cat := range []Category{CategoryCommand, CategoryCvar} {
		if only != "" && only != cat {
			continue
		}
		dir := categoryDir(cfg, cat)
		catPages, err := scanDir(corpusPath, dir, cfg.GetExtension(), cat)
		if err != nil {
			return nil, err
		}
		pages = append(pages, catPages...)
	}
	return pages, nil
}

func scanDir(corpusPath, dir, ext string, cat Category) ([]*Page, error) {
	fullDir := filepath.Join(corpusPath, filepath.FromSlash(dir))

	entries, err := os.ReadDir(fullDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fullDir, err)
	}

	var pages []*Page
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		relPath := path.Join(dir, entry.Name())

		content, err := os.ReadFile(filepath.Join(fullDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", relPath, err)
		}

		pages = append(pages, ParsePage(content, relPath, cat))
	}
	return pages, nil
}

// ParseCategory parses a user-supplied category filter. Accepts the singular
// and plural spellings used by the CLI's --only flag.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "command", "commands":
		return CategoryCommand, nil
	case "cvar", "cvars":
		return CategoryCvar, nil
	default:
		return "", fmt.Errorf("unknown category %q (want commands or cvars)", s)
	}
}

func categoryDir(cfg *config.CorpusConfig, cat Category) string {
	if cat == CategoryCvar {
		return cfg.CvarsDir()
	}
	return cfg.CommandsDir()
}

// PageExists reports whether a corpus-relative page path exists, tolerating
// a .md/.mdc extension mismatch left over from a layout migration.
func PageExists(corpusPath, relPath string) bool {
	candidates := []string{relPath}
	if alt, ok := SwapExtension(relPath); ok {
		candidates = append(candidates, alt)
	}
	for _, rel := range candidates {
		if _, err := os.Stat(filepath.Join(corpusPath, filepath.FromSlash(rel))); err == nil {
			return true
		}
	}
	return false
}

// SwapExtension returns the same path spelled with the other page extension
// (.md <-> .mdc). References may predate a layout migration, so callers that
// match paths by name try both spellings.
func SwapExtension(relPath string) (string, bool) {
	switch {
	case strings.HasSuffix(relPath, ".mdc"):
		return strings.TrimSuffix(relPath, ".mdc") + ".md", true
	case strings.HasSuffix(relPath, ".md"):
		return strings.TrimSuffix(relPath, ".md") + ".mdc", true
	}
	return "", false
}

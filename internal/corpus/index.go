package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/quilldocs/quill/internal/config"
)

// IndexEntry is one manually curated record from the index file, asserting
// that a name maps to a corpus-relative page path.
type IndexEntry struct {
	Name    string
	RelPath string
	Line    int // 1-indexed line in the index file
}

// Index lines look like:
//
//	- `sp_sc_alias` — command — sp_sc_alias — `commands/sp_sc_alias.md`
var indexLineRe = regexp.MustCompile("^-\\s+`([^`]+)`\\s+—\\s+(?:command|cvar)\\s+—\\s+[^`]+\\s+—\\s+`([^`]+)`")

// ParseIndex parses the manual index content into entries.
// Lines that don't match the entry shape are ignored (prose, headings).
func ParseIndex(content string) []IndexEntry {
	var entries []IndexEntry
	for i, line := range strings.Split(content, "\n") {
		m := indexLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		entries = append(entries, IndexEntry{
			Name:    m[1],
			RelPath: m[2],
			Line:    i + 1,
		})
	}
	return entries
}

// LoadIndex reads and parses the corpus's manual index file.
// A missing index file is an empty index.
func LoadIndex(corpusPath string, cfg *config.CorpusConfig) ([]IndexEntry, error) {
	indexPath := filepath.Join(corpusPath, filepath.FromSlash(cfg.GetIndexFile()))

	content, err := os.ReadFile(indexPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", indexPath, err)
	}

	// .mdc index files carry frontmatter too; entries live in the body.
	_, body, _ := SplitFrontmatter(string(content))
	return ParseIndex(body), nil
}

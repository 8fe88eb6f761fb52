// Package check handles corpus-wide integrity validation.
package check

import (
	"fmt"

	"github.com/quilldocs/quill/internal/corpus"
	"github.com/quilldocs/quill/internal/merge"
	"github.com/quilldocs/quill/internal/naming"
)

// CheckID identifies one of the independent validation checks.
type CheckID string

const (
	// CheckIndexRef verifies every manual-index entry's path exists on disk.
	CheckIndexRef CheckID = "index-ref"

	// CheckMapRef verifies every persisted-map entry's path exists on disk.
	CheckMapRef CheckID = "map-ref"

	// CheckOrphanPage verifies every discovered page is reachable from the
	// manual index or the persisted map.
	CheckOrphanPage CheckID = "orphan-page"

	// CheckPageSchema verifies the minimal page schema: a title heading and
	// a fenced Synopsis block.
	CheckPageSchema CheckID = "page-schema"
)

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// Issue represents a single validation finding.
type Issue struct {
	Check   CheckID    `json:"check"`
	Level   IssueLevel `json:"-"`
	Name    string     `json:"name,omitempty"`
	Path    string     `json:"path,omitempty"`
	Message string     `json:"message"`
}

// Report collects the findings of one validation pass.
type Report struct {
	Issues []Issue
}

// Errors returns the number of error-severity issues.
func (r *Report) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Level == LevelError {
			n++
		}
	}
	return n
}

// Warnings returns the number of warning-severity issues.
func (r *Report) Warnings() int {
	return len(r.Issues) - r.Errors()
}

// HasErrors reports whether any error-severity issue exists.
func (r *Report) HasErrors() bool {
	return r.Errors() > 0
}

// Options configures a validation pass.
type Options struct {
	// SchemaAsWarnings downgrades page schema violations to warnings.
	// Referential integrity failures are always errors.
	SchemaAsWarnings bool

	// Exclude lists canonical names exempt from the orphan-page check.
	Exclude map[string]struct{}
}

// Validate cross-checks the filesystem, the manual index, and the persisted
// map. All checks run; no failure short-circuits the rest. persisted may be
// nil when no map artifact exists yet.
func Validate(corpusPath string, pages []*corpus.Page, index []corpus.IndexEntry, persisted *merge.CanonicalMap, opts Options) *Report {
	report := &Report{}

	// 1) Manual-index references must exist on disk.
	for _, entry := range index {
		if !corpus.PageExists(corpusPath, entry.RelPath) {
			report.Issues = append(report.Issues, Issue{
				Check:   CheckIndexRef,
				Level:   LevelError,
				Name:    entry.Name,
				Path:    entry.RelPath,
				Message: fmt.Sprintf("index points to missing file: %s -> %s", entry.Name, entry.RelPath),
			})
		}
	}

	// 2) Persisted-map references must exist on disk.
	if persisted != nil {
		for _, entry := range persisted.Entries() {
			if entry.Path == "" || corpus.PageExists(corpusPath, entry.Path) {
				continue
			}
			report.Issues = append(report.Issues, Issue{
				Check:   CheckMapRef,
				Level:   LevelError,
				Name:    entry.Name,
				Path:    entry.Path,
				Message: fmt.Sprintf("map points to missing file: %s -> %s", entry.Name, entry.Path),
			})
		}
	}

	// 3) Every discovered page must be reachable from the index or the map.
	known := make(map[string]struct{})
	for _, entry := range index {
		known[entry.RelPath] = struct{}{}
	}
	if persisted != nil {
		for _, entry := range persisted.Entries() {
			known[entry.Path] = struct{}{}
		}
	}
	for _, page := range pages {
		if pathKnown(known, page.RelPath) {
			continue
		}
		if _, excluded := opts.Exclude[canonicalKey(page.Stem)]; excluded {
			continue
		}
		report.Issues = append(report.Issues, Issue{
			Check:   CheckOrphanPage,
			Level:   LevelError,
			Name:    page.Stem,
			Path:    page.RelPath,
			Message: fmt.Sprintf("unreferenced page (not in index or map): %s", page.RelPath),
		})
	}

	// 4) Minimal schema: title heading, fenced Synopsis, title/stem alignment.
	schemaLevel := LevelError
	if opts.SchemaAsWarnings {
		schemaLevel = LevelWarning
	}
	for _, page := range pages {
		for _, msg := range schemaProblems(page) {
			report.Issues = append(report.Issues, Issue{
				Check:   CheckPageSchema,
				Level:   schemaLevel,
				Name:    page.Stem,
				Path:    page.RelPath,
				Message: fmt.Sprintf("schema issue in %s: %s", page.RelPath, msg),
			})
		}
	}

	return report
}

func schemaProblems(page *corpus.Page) []string {
	var problems []string
	if !page.HasTitle() {
		problems = append(problems, "missing title (### <name>)")
	}
	if !page.HasSynopsis {
		problems = append(problems, "missing Synopsis: block")
	}
	if page.HasTitle() && !titleMatchesStem(page.Title, page.Stem) {
		problems = append(problems, fmt.Sprintf("title/name mismatch: title=%q file=%q", page.Title, page.Stem))
	}
	return problems
}

// titleMatchesStem accepts the raw stem or any canonical name the stem
// encodes: family pages are titled with their pattern, alias pages with
// either the stored name or the dot-prefixed alias.
func titleMatchesStem(title, stem string) bool {
	if title == stem {
		return true
	}
	res, err := naming.Resolve(stem)
	if err != nil {
		return false
	}
	switch res.Kind {
	case naming.KindWildcardFamily:
		return title == res.Pattern
	case naming.KindAlias:
		return title == res.Alias
	default:
		return false
	}
}

// pathKnown checks reference reachability, tolerating a .md/.mdc extension
// mismatch between the page file and how the index or map refers to it.
func pathKnown(known map[string]struct{}, relPath string) bool {
	if _, ok := known[relPath]; ok {
		return true
	}
	if alt, ok := corpus.SwapExtension(relPath); ok {
		_, found := known[alt]
		return found
	}
	return false
}

// canonicalKey maps a filename stem to the canonical name the exclusion list
// uses. Unresolvable stems are excluded-by-name as-is.
func canonicalKey(stem string) string {
	res, err := naming.Resolve(stem)
	if err != nil {
		return stem
	}
	if res.Kind == naming.KindWildcardFamily {
		return res.Pattern
	}
	return res.Name
}

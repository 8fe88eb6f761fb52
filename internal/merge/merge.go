// Package merge combines name→location facts from the manual index, literal
// filesystem pages, alias resolutions, and wildcard family patterns into one
// de-duplicated canonical mapping.
package merge

import (
	"sort"

	"github.com/quilldocs/quill/internal/corpus"
	"github.com/quilldocs/quill/internal/naming"
)

// Source identifies which input asserted a name→path fact. The numeric order
// is the merge precedence: earlier sources win on conflict.
type Source int

const (
	// SourceIndex is the manually curated index (explicit curation wins).
	SourceIndex Source = iota

	// SourcePage is a literal filesystem page.
	SourcePage

	// SourceAlias is a dot-command alias resolution.
	SourceAlias

	// SourceFamily is a wildcard family pattern.
	SourceFamily
)

func (s Source) String() string {
	switch s {
	case SourceIndex:
		return "index"
	case SourcePage:
		return "page"
	case SourceAlias:
		return "alias"
	case SourceFamily:
		return "family"
	default:
		return "unknown"
	}
}

// Entry is one name→location fact.
type Entry struct {
	Name    string
	Path    string // corpus-relative page path
	Summary string
	Source  Source
}

// Conflict records two sources asserting different locations for one name.
// The kept entry remains authoritative in the map; the run is non-clean.
type Conflict struct {
	Name     string
	Kept     Entry
	Rejected Entry
}

// ResolutionIssue reports a page whose filename encoding could not be
// resolved. The page is skipped; the run continues.
type ResolutionIssue struct {
	RelPath string
	Err     error
}

// Inputs are the four merge sources, in precedence order.
type Inputs struct {
	Index    []Entry
	Literals []Entry
	Aliases  []Entry
	Families []Entry
}

// CollectInputs classifies scanned pages through the naming resolver and
// pairs manual index entries with page summaries where the referenced page
// was scanned.
func CollectInputs(pages []*corpus.Page, index []corpus.IndexEntry) (Inputs, []ResolutionIssue) {
	var in Inputs
	var issues []ResolutionIssue

	summaries := make(map[string]string, len(pages))
	for _, page := range pages {
		summaries[page.RelPath] = page.Summary
	}

	for _, page := range pages {
		res, err := naming.Resolve(page.Stem)
		if err != nil {
			issues = append(issues, ResolutionIssue{RelPath: page.RelPath, Err: err})
			continue
		}

		switch res.Kind {
		case naming.KindWildcardFamily:
			// The pattern itself is the single searchable key; the family
			// page is the location for every name it covers.
			in.Families = append(in.Families, Entry{
				Name:    res.Pattern,
				Path:    page.RelPath,
				Summary: page.Summary,
				Source:  SourceFamily,
			})
		case naming.KindAlias:
			// The stored name is a literal page; the dot-prefixed alias is
			// a second, lower-precedence key for the same location.
			in.Literals = append(in.Literals, Entry{
				Name:    res.Name,
				Path:    page.RelPath,
				Summary: page.Summary,
				Source:  SourcePage,
			})
			in.Aliases = append(in.Aliases, Entry{
				Name:    res.Alias,
				Path:    page.RelPath,
				Summary: page.Summary,
				Source:  SourceAlias,
			})
		default:
			in.Literals = append(in.Literals, Entry{
				Name:    res.Name,
				Path:    page.RelPath,
				Summary: page.Summary,
				Source:  SourcePage,
			})
		}
	}

	for _, ie := range index {
		// Index references tolerate a .md/.mdc spelling mismatch, the same
		// way the reference checks do.
		summary, ok := summaries[ie.RelPath]
		if !ok {
			if alt, swapped := corpus.SwapExtension(ie.RelPath); swapped {
				summary = summaries[alt]
			}
		}
		in.Index = append(in.Index, Entry{
			Name:    ie.Name,
			Path:    ie.RelPath,
			Summary: summary,
			Source:  SourceIndex,
		})
	}

	return in, issues
}

// Merge folds the four sources into a canonical map, index entries first,
// then literal pages, then aliases, then wildcard patterns. A name asserted
// twice with the same path is deduplicated silently; with a different path
// the earlier-precedence entry stays and a Conflict is recorded.
//
// Identical inputs produce byte-identical output: each source is processed
// in lexicographic name order and the conflict list is sorted.
func Merge(in Inputs) (*CanonicalMap, []Conflict) {
	m := NewCanonicalMap()
	var conflicts []Conflict

	for _, group := range [][]Entry{in.Index, in.Literals, in.Aliases, in.Families} {
		sorted := make([]Entry, len(group))
		copy(sorted, group)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Name != sorted[j].Name {
				return sorted[i].Name < sorted[j].Name
			}
			return sorted[i].Path < sorted[j].Path
		})

		for _, e := range sorted {
			existing, ok := m.Get(e.Name)
			if !ok {
				m.set(e)
				continue
			}
			if existing.Path == e.Path {
				continue
			}
			conflicts = append(conflicts, Conflict{Name: e.Name, Kept: existing, Rejected: e})
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Name != conflicts[j].Name {
			return conflicts[i].Name < conflicts[j].Name
		}
		return conflicts[i].Rejected.Source < conflicts[j].Rejected.Source
	})

	return m, conflicts
}

// CanonicalMap is the derived Name→location mapping. Every key appears
// exactly once; iteration order is lexicographic.
type CanonicalMap struct {
	entries map[string]Entry
}

// NewCanonicalMap returns an empty canonical map.
func NewCanonicalMap() *CanonicalMap {
	return &CanonicalMap{entries: make(map[string]Entry)}
}

// Get returns the entry for a name.
func (m *CanonicalMap) Get(name string) (Entry, bool) {
	e, ok := m.entries[name]
	return e, ok
}

// Len returns the number of entries.
func (m *CanonicalMap) Len() int {
	return len(m.entries)
}

// Names returns all keys in lexicographic order.
func (m *CanonicalMap) Names() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns all entries in lexicographic name order.
func (m *CanonicalMap) Entries() []Entry {
	entries := make([]Entry, 0, len(m.entries))
	for _, name := range m.Names() {
		entries = append(entries, m.entries[name])
	}
	return entries
}

func (m *CanonicalMap) set(e Entry) {
	m.entries[e.Name] = e
}

// FromEntries builds a canonical map from already-merged entries, e.g. a
// persisted artifact being re-read. Duplicate names keep the first entry.
func FromEntries(entries []Entry) *CanonicalMap {
	m := NewCanonicalMap()
	for _, e := range entries {
		if _, ok := m.Get(e.Name); !ok {
			m.set(e)
		}
	}
	return m
}

// Package mapfile serializes the canonical map to its persisted artifact.
//
// The artifact is a key-sorted JSON object mapping canonical names to
// {path, summary}, written atomically and rebuilt wholesale on every build.
// It is a derived cache: hand edits are indistinguishable from drift and are
// overwritten or flagged.
package mapfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quilldocs/quill/internal/atomicfile"
	"github.com/quilldocs/quill/internal/merge"
)

// entryJSON is the persisted form of one map entry.
type entryJSON struct {
	Path    string `json:"path"`
	Summary string `json:"summary"`
}

// Encode serializes the canonical map deterministically: keys sorted,
// two-space indent, trailing newline. Identical maps encode to identical
// bytes, keeping artifact diffs stable.
func Encode(m *merge.CanonicalMap) ([]byte, error) {
	out := make(map[string]entryJSON, m.Len())
	for _, e := range m.Entries() {
		out[e.Name] = entryJSON{Path: e.Path, Summary: e.Summary}
	}

	// encoding/json sorts object keys for map values.
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode map: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses artifact bytes back into a canonical map. Values may be
// either the current {path, summary} object or the legacy bare path string.
func Decode(data []byte) (*merge.CanonicalMap, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}

	entries := make([]merge.Entry, 0, len(raw))
	for name, val := range raw {
		var legacy string
		if err := json.Unmarshal(val, &legacy); err == nil {
			entries = append(entries, merge.Entry{Name: name, Path: legacy})
			continue
		}
		var obj entryJSON
		if err := json.Unmarshal(val, &obj); err != nil {
			return nil, fmt.Errorf("decode map entry %q: %w", name, err)
		}
		entries = append(entries, merge.Entry{Name: name, Path: obj.Path, Summary: obj.Summary})
	}

	return merge.FromEntries(entries), nil
}

// Load reads and decodes the persisted artifact.
// A missing file returns os.ErrNotExist via the underlying read error.
func Load(path string) (*merge.CanonicalMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Write persists the canonical map atomically (temp file + rename); a failed
// write never leaves a partial artifact.
func Write(path string, m *merge.CanonicalMap) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := atomicfile.WriteFile(path, data, 0); err != nil {
		return fmt.Errorf("write map %s: %w", path, err)
	}
	return nil
}

// Diff compares two canonical maps and returns one human-readable line per
// difference, sorted by name. An empty result means no drift. A nil map
// compares as empty, so the first build diffs as all additions.
func Diff(prev, next *merge.CanonicalMap) []string {
	if prev == nil {
		prev = merge.NewCanonicalMap()
	}
	if next == nil {
		next = merge.NewCanonicalMap()
	}

	var lines []string

	for _, name := range prev.Names() {
		prevEntry, _ := prev.Get(name)
		nextEntry, ok := next.Get(name)
		switch {
		case !ok:
			lines = append(lines, fmt.Sprintf("- %s -> %s", name, prevEntry.Path))
		case prevEntry.Path != nextEntry.Path:
			lines = append(lines, fmt.Sprintf("~ %s: %s -> %s", name, prevEntry.Path, nextEntry.Path))
		case prevEntry.Summary != nextEntry.Summary:
			lines = append(lines, fmt.Sprintf("~ %s: summary changed", name))
		}
	}

	for _, name := range next.Names() {
		if _, ok := prev.Get(name); !ok {
			nextEntry, _ := next.Get(name)
			lines = append(lines, fmt.Sprintf("+ %s -> %s", name, nextEntry.Path))
		}
	}

	return lines
}

package mapfile

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/quilldocs/quill/internal/merge"
)

func sampleMap() *merge.CanonicalMap {
	return merge.FromEntries([]merge.Entry{
		{Name: "jail", Path: "commands/jail.md", Summary: "Locks a player up."},
		{Name: "_sp_sv_sound_*", Path: "cvars/_sp_sv_sound_asterisk.md", Summary: "Sound family."},
		{Name: ".yes", Path: "commands/dot_yes.md"},
	})
}

func TestEncodeDeterministic(t *testing.T) {
	m := sampleMap()

	first, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(sampleMap())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("encoding the same map twice must be byte-identical")
	}
	if !bytes.HasSuffix(first, []byte("\n")) {
		t.Error("artifact must end with a newline")
	}
}

func TestRoundTrip(t *testing.T) {
	m := sampleMap()

	data, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if !reflect.DeepEqual(namePathPairs(m), namePathPairs(back)) {
		t.Errorf("round-trip mismatch:\n%v\n%v", namePathPairs(m), namePathPairs(back))
	}
}

func namePathPairs(m *merge.CanonicalMap) map[string]string {
	out := make(map[string]string, m.Len())
	for _, e := range m.Entries() {
		out[e.Name] = e.Path
	}
	return out
}

func TestDecodeLegacyStringValues(t *testing.T) {
	data := []byte(`{
  "jail": "commands/jail.md",
  "speed": { "path": "cvars/speed.md", "summary": "Speed." }
}`)

	m, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	jail, ok := m.Get("jail")
	if !ok || jail.Path != "commands/jail.md" {
		t.Errorf("jail = %+v", jail)
	}
	speed, _ := m.Get("speed")
	if speed.Summary != "Speed." {
		t.Errorf("speed = %+v", speed)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("expected decode error")
	}
	if _, err := Decode([]byte(`{"x": 42}`)); err == nil {
		t.Error("expected decode error for numeric entry")
	}
}

func TestWriteLoadIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.json")
	m := sampleMap()

	if err := Write(path, m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Rebuild from the persisted artifact and write again: no corpus change,
	// byte-identical artifact.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := Write(path, loaded); err != nil {
		t.Fatalf("Write: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("unchanged map must produce a byte-identical artifact")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "map.json"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDiff(t *testing.T) {
	prev := merge.FromEntries([]merge.Entry{
		{Name: "a", Path: "commands/a.md"},
		{Name: "b", Path: "commands/b.md"},
		{Name: "c", Path: "commands/c.md", Summary: "old"},
	})
	next := merge.FromEntries([]merge.Entry{
		{Name: "a", Path: "commands/a.md"},
		{Name: "b", Path: "other/b.md"},
		{Name: "c", Path: "commands/c.md", Summary: "new"},
		{Name: "d", Path: "commands/d.md"},
	})

	lines := Diff(prev, next)
	want := []string{
		"~ b: commands/b.md -> other/b.md",
		"~ c: summary changed",
		"+ d -> commands/d.md",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Diff = %v, want %v", lines, want)
	}

	if got := Diff(prev, prev); len(got) != 0 {
		t.Errorf("identical maps must diff empty, got %v", got)
	}
}

func TestDiffNilPrevIsAllAdditions(t *testing.T) {
	next := merge.FromEntries([]merge.Entry{
		{Name: "a", Path: "commands/a.md"},
	})

	lines := Diff(nil, next)
	want := []string{"+ a -> commands/a.md"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Diff(nil, next) = %v, want %v", lines, want)
	}
}

package corpus

import (
	"testing"

	"github.com/quilldocs/quill/internal/config"
)

func TestParseIndex(t *testing.T) {
	content := "# Command index\n" +
		"\n" +
		"- `sp_sc_alias` — command — sp_sc_alias — `commands/sp_sc_alias.md`\n" +
		"- `_sp_sv_info_client_ip` — cvar — info client ip — `cvars/_sp_sv_info_client_ip.md`\n" +
		"- malformed line without backticks\n" +
		"some prose\n"

	entries := ParseIndex(content)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Name != "sp_sc_alias" || entries[0].RelPath != "commands/sp_sc_alias.md" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[0].Line != 3 {
		t.Errorf("entry 0 line = %d, want 3", entries[0].Line)
	}
	if entries[1].Name != "_sp_sv_info_client_ip" || entries[1].RelPath != "cvars/_sp_sv_info_client_ip.md" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestLoadIndexMissing(t *testing.T) {
	entries, err := LoadIndex(t.TempDir(), &config.CorpusConfig{})
	if err != nil {
		t.Fatalf("missing index should not error: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %+v", entries)
	}
}

func TestLoadIndex(t *testing.T) {
	root := t.TempDir()
	writeCorpusFile(t, root, "commands_index.md",
		"- `jail` — command — jail — `commands/jail.md`\n")

	entries, err := LoadIndex(root, &config.CorpusConfig{})
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "jail" {
		t.Fatalf("entries = %+v", entries)
	}
}

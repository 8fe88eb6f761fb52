package naming

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		stem    string
		kind    Kind
		name    string
		alias   string
		pattern string
	}{
		{stem: "jail", kind: KindLiteral, name: "jail"},
		{stem: "sp_sc_alias", kind: KindLiteral, name: "sp_sc_alias"},
		{stem: "_sp_sv_info_client_ip", kind: KindLiteral, name: "_sp_sv_info_client_ip"},
		{stem: "dot_yes", kind: KindAlias, name: "dot_yes", alias: ".yes"},
		{stem: "dot_players", kind: KindAlias, name: "dot_players", alias: ".players"},
		{stem: "_sp_sv_sound_asterisk", kind: KindWildcardFamily, name: "_sp_sv_sound_asterisk", pattern: "_sp_sv_sound_*"},
		{stem: "sp_sc_func_asterisk", kind: KindWildcardFamily, name: "sp_sc_func_asterisk", pattern: "sp_sc_func_*"},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			res, err := Resolve(tt.stem)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.stem, err)
			}
			if res.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", res.Kind, tt.kind)
			}
			if res.Name != tt.name {
				t.Errorf("Name = %q, want %q", res.Name, tt.name)
			}
			if res.Alias != tt.alias {
				t.Errorf("Alias = %q, want %q", res.Alias, tt.alias)
			}
			if res.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", res.Pattern, tt.pattern)
			}
		})
	}
}

func TestResolveMalformed(t *testing.T) {
	stems := []string{
		"",
		"dot_",
		"_asterisk",
		"dot_yes_asterisk",          // alias and wildcard mixed
		"sp_sv_asterisk_asterisk",   // repeated wildcard token
		"sp_sv_asterisk_something",  // wildcard token mid-stem
	}

	for _, stem := range stems {
		if _, err := Resolve(stem); !errors.Is(err, ErrMalformedName) {
			t.Errorf("Resolve(%q) = %v, want ErrMalformedName", stem, err)
		}
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	stems := []string{"jail", "dot_yes", "_sp_sv_sound_asterisk", "sp_sc_alias"}

	for _, stem := range stems {
		res, err := Resolve(stem)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", stem, err)
		}

		canonical := res.Name
		switch res.Kind {
		case KindAlias:
			canonical = res.Alias
		case KindWildcardFamily:
			canonical = res.Pattern
		}

		back, err := Filename(canonical)
		if err != nil {
			t.Fatalf("Filename(%q): %v", canonical, err)
		}
		if back != stem {
			t.Errorf("Filename(%q) = %q, want %q", canonical, back, stem)
		}
	}
}

func TestFilenameRejects(t *testing.T) {
	for _, name := range []string{"", ".", "sp_*_sound", "*_tail", ".with*star"} {
		if _, err := Filename(name); err == nil {
			t.Errorf("Filename(%q): expected error", name)
		}
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"_sp_sv_sound_*", "_sp_sv_sound_feet", true},
		{"_sp_sv_sound_*", "_sp_sv_sound_", true},
		{"_sp_sv_sound_*", "_sp_sv_soun", false},
		{"_sp_sv_sound_*", "sp_sv_sound_feet", false},
		{"exact", "exact", true},
		{"exact", "exactly", false},
	}

	for _, tt := range tests {
		if got := MatchPattern(tt.pattern, tt.name); got != tt.want {
			t.Errorf("MatchPattern(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestIsPattern(t *testing.T) {
	if !IsPattern("_sp_sv_sound_*") {
		t.Error("expected pattern")
	}
	if IsPattern("jail") {
		t.Error("jail is not a pattern")
	}
}

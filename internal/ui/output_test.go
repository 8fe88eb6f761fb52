package ui

import "testing"

func TestErrorWarningCounts(t *testing.T) {
	tests := []struct {
		errors   int
		warnings int
		want     string
	}{
		{3, 2, "(3 errors, 2 warnings)"},
		{1, 0, "(1 error)"},
		{0, 1, "(1 warning)"},
		{0, 5, "(5 warnings)"},
		{2, 1, "(2 errors, 1 warning)"},
	}
	for _, tt := range tests {
		if got := ErrorWarningCounts(tt.errors, tt.warnings); got != tt.want {
			t.Errorf("ErrorWarningCounts(%d, %d) = %q, want %q", tt.errors, tt.warnings, got, tt.want)
		}
	}
}

func TestStatusSymbols(t *testing.T) {
	if got := Success("done"); got != SymbolSuccess+" done" {
		t.Errorf("Success = %q", got)
	}
	if got := Warning("careful"); got != SymbolWarning+" careful" {
		t.Errorf("Warning = %q", got)
	}
	if got := Error("broken"); got != SymbolError+" broken" {
		t.Errorf("Error = %q", got)
	}
}

package corpus

import "strings"

// FenceState tracks whether a line scan is inside a fenced code block.
type FenceState struct {
	InFence  bool
	fenceCh  byte
	fenceLen int
}

// NormalizeFenceLine prepares a line for fence marker detection by stripping
// leading whitespace and blockquote prefixes.
func NormalizeFenceLine(line string) string {
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, ">") {
		s = strings.TrimPrefix(s, ">")
		s = strings.TrimLeft(s, " \t")
	}
	return s
}

// ParseFenceMarker checks if a normalized line starts a code fence.
// Returns the fence character, fence length, and whether it's a valid fence.
func ParseFenceMarker(line string) (ch byte, n int, ok bool) {
	if len(line) < 3 {
		return 0, 0, false
	}
	ch = line[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	i := 0
	for i < len(line) && line[i] == ch {
		i++
	}
	if i < 3 {
		return 0, 0, false
	}
	return ch, i, true
}

// Update advances the fence state for one line.
// Returns true if the line is a fence marker (opening or closing).
func (fs *FenceState) Update(line string) bool {
	ch, n, ok := ParseFenceMarker(NormalizeFenceLine(line))
	if !ok {
		return false
	}

	if !fs.InFence {
		fs.InFence = true
		fs.fenceCh = ch
		fs.fenceLen = n
		return true
	}

	if fs.fenceCh == ch && n >= fs.fenceLen {
		fs.InFence = false
		fs.fenceCh = 0
		fs.fenceLen = 0
	}
	return true
}

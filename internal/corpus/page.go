// Package corpus provides read-only access to the documentation corpus:
// page enumeration, minimal structural parsing, and the manual index.
package corpus

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Category is the entity category a page documents.
type Category string

const (
	// CategoryCommand is a scripting command page.
	CategoryCommand Category = "command"

	// CategoryCvar is a console-variable page.
	CategoryCvar Category = "cvar"
)

// maxSummaryLen caps the one-line summary extracted from a page,
// measured in runes.
const maxSummaryLen = 200

// titleLineWindow is how many leading lines may hold the title heading.
const titleLineWindow = 3

// Page holds the minimal structural facts extracted from one entity page.
// Every field is a recorded observation; a malformed page is a fact for the
// validator, never a parse error.
type Page struct {
	Category Category

	// RelPath is the corpus-relative path with forward slashes,
	// e.g. "commands/jail.md".
	RelPath string

	// Stem is the filename without extension; the naming resolver turns it
	// into a canonical name, alias, or wildcard pattern.
	Stem string

	// Title is the text of the first level-3 heading, empty when absent.
	Title string

	// Summary is the optional one-line description under the title.
	Summary string

	// Description is the frontmatter description field (.mdc pages only).
	Description string

	HasFrontmatter bool
	HasSynopsis    bool // "Synopsis:" label followed by a fenced block
	HasParameters  bool
	HasValues      bool
	HasExample     bool
}

// HasTitle reports whether the page has a title heading.
func (p *Page) HasTitle() bool {
	return p.Title != ""
}

// ParsePage extracts structural facts from page content.
func ParsePage(content []byte, relPath string, category Category) *Page {
	page := &Page{
		Category: category,
		RelPath:  relPath,
		Stem:     stemOf(relPath),
	}

	body := string(content)
	if fm := parseFrontmatter(body); fm != nil {
		page.HasFrontmatter = true
		page.Description = fm.Description
		body = fm.Body
	}

	lines := strings.Split(body, "\n")

	titleLine := -1
	if title, line, ok := titleHeading(body); ok {
		page.Title = title
		titleLine = line
	}

	if titleLine >= 0 {
		page.Summary = summaryAfter(lines, titleLine)
	}

	scanSections(lines, page)

	return page
}

// titleHeading locates the page title via the goldmark AST: the first
// level-3 heading within the leading title window. A stray heading of
// another level before it is skipped, not disqualifying.
// Returns the title text, its 0-indexed line, and whether one was found.
func titleHeading(content string) (string, int, bool) {
	md := goldmark.New()
	reader := text.NewReader([]byte(content))
	doc := md.Parser().Parse(reader)

	lineStarts := computeLineStarts(content)

	title := ""
	line := -1

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		at := 0
		if heading.Lines().Len() > 0 {
			at = offsetToLine(lineStarts, heading.Lines().At(0).Start)
		}
		if at >= titleLineWindow {
			return ast.WalkStop, nil
		}
		if heading.Level != 3 {
			return ast.WalkContinue, nil
		}

		var textBuilder strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				textBuilder.Write(textNode.Segment.Value([]byte(content)))
			}
		}
		headingText := strings.TrimSpace(textBuilder.String())
		if headingText == "" {
			return ast.WalkContinue, nil
		}

		title = headingText
		line = at
		return ast.WalkStop, nil
	})

	return title, line, line >= 0
}

// summaryAfter returns the first short non-empty line within three lines of
// the title, with backticks stripped.
func summaryAfter(lines []string, titleLine int) string {
	for i := titleLine + 1; i < len(lines) && i <= titleLine+3; i++ {
		s := strings.TrimSpace(lines[i])
		if s == "" {
			continue
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, "`", ""))
		if runes := []rune(s); len(runes) > maxSummaryLen {
			s = string(runes[:maxSummaryLen])
		}
		return s
	}
	return ""
}

// scanSections records which schema sections are present. Labels inside
// fenced code blocks do not count, and the Synopsis label only counts when
// the next non-blank line opens a fence.
func scanSections(lines []string, page *Page) {
	var fence FenceState

	for i, line := range lines {
		if fence.Update(line) {
			continue
		}
		if fence.InFence {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "synopsis:":
			if fencedBlockFollows(lines, i) {
				page.HasSynopsis = true
			}
		case "parameters:":
			page.HasParameters = true
		case "values:":
			page.HasValues = true
		case "example:":
			page.HasExample = true
		}
	}
}

func fencedBlockFollows(lines []string, labelLine int) bool {
	for i := labelLine + 1; i < len(lines); i++ {
		s := strings.TrimSpace(lines[i])
		if s == "" {
			continue
		}
		_, _, ok := ParseFenceMarker(NormalizeFenceLine(lines[i]))
		return ok
	}
	return false
}

func stemOf(relPath string) string {
	base := relPath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// computeLineStarts computes the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}

package corpus

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter is the parsed YAML header of a .mdc page.
type frontmatter struct {
	// Description is the description: field, used by `quill descriptions`
	// and as lookup metadata.
	Description string

	// Raw is the frontmatter text between the delimiters.
	Raw string

	// Body is the page content after the closing delimiter.
	Body string
}

// frontmatterFields is the subset of frontmatter keys quill reads.
type frontmatterFields struct {
	Description string `yaml:"description"`
}

// parseFrontmatter detects and strips a leading YAML frontmatter block.
// Returns nil when the content has no frontmatter. Unparseable YAML is
// treated as no frontmatter: schema validation runs over the raw text and
// flags the damage instead.
func parseFrontmatter(content string) *frontmatter {
	if !strings.HasPrefix(content, "---") {
		return nil
	}

	lines := strings.Split(content, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return nil // unclosed
	}

	raw := strings.Join(lines[1:end], "\n")
	body := strings.TrimPrefix(strings.Join(lines[end+1:], "\n"), "\n")

	fm := &frontmatter{Raw: raw, Body: body}

	var fields frontmatterFields
	if err := yaml.Unmarshal([]byte(raw), &fields); err == nil {
		fm.Description = strings.TrimSpace(fields.Description)
	}

	return fm
}

// SplitFrontmatter splits raw .mdc content into frontmatter and body text.
// ok is false when the content carries no (closed) frontmatter block.
func SplitFrontmatter(content string) (raw, body string, ok bool) {
	fm := parseFrontmatter(content)
	if fm == nil {
		return "", content, false
	}
	return fm.Raw, fm.Body, true
}

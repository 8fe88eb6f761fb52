package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quilldocs/quill/internal/atomicfile"
	"github.com/quilldocs/quill/internal/corpus"
	"github.com/quilldocs/quill/internal/ui"
)

var (
	descriptionsWrite bool
	descriptionsOnly  string
)

type descriptionChange struct {
	Path string `json:"path"`
	Old  string `json:"old,omitempty"`
	New  string `json:"new"`
}

type descriptionsResult struct {
	Changes []descriptionChange `json:"changes"`
	Written bool                `json:"written"`
}

var descriptionsCmd = &cobra.Command{
	Use:   "descriptions",
	Short: "Sync frontmatter descriptions with page summaries",
	Long: `Keeps the frontmatter 'description:' field of each page aligned with the
page's one-line summary. Pages without frontmatter or without a summary are
left alone.

Dry run by default; pass --write to apply the changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpusPath := getCorpusPath()
		corpCfg := getCorpusConfig()

		only, err := corpus.ParseCategory(descriptionsOnly)
		if err != nil {
			return handleError(ErrInvalidInput, err, "use --only commands or --only cvars")
		}

		pages, err := corpus.Scan(corpusPath, corpCfg, only)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		var changes []descriptionChange
		for _, page := range pages {
			if !page.HasFrontmatter || page.Summary == "" || page.Description == page.Summary {
				continue
			}

			fullPath := filepath.Join(corpusPath, filepath.FromSlash(page.RelPath))
			if descriptionsWrite {
				content, err := os.ReadFile(fullPath)
				if err != nil {
					return handleError(ErrFileReadError, err, "")
				}
				updated, ok := setFrontmatterDescription(string(content), page.Summary)
				if !ok {
					continue
				}
				if err := atomicfile.WriteFile(fullPath, []byte(updated), 0644); err != nil {
					return handleError(ErrFileWriteError, err, "")
				}
			}

			changes = append(changes, descriptionChange{
				Path: page.RelPath,
				Old:  page.Description,
				New:  page.Summary,
			})
		}

		if isJSONOutput() {
			result := descriptionsResult{Changes: changes, Written: descriptionsWrite}
			if result.Changes == nil {
				result.Changes = []descriptionChange{}
			}
			outputSuccess(result, &Meta{Count: len(changes)})
			return nil
		}

		if len(changes) == 0 {
			fmt.Println(ui.Success("All frontmatter descriptions are in sync."))
			return nil
		}
		for _, c := range changes {
			if c.Old == "" {
				fmt.Printf("+ %s: %s\n", c.Path, c.New)
			} else {
				fmt.Printf("~ %s: %s -> %s\n", c.Path, c.Old, c.New)
			}
		}
		fmt.Println()
		if descriptionsWrite {
			fmt.Println(ui.Successf("Updated %d page(s).", len(changes)))
		} else {
			fmt.Printf("%d page(s) out of sync.\n", len(changes))
			fmt.Println(ui.Hint("Dry run. Use --write to apply."))
		}
		return nil
	},
}

// setFrontmatterDescription rewrites the description field inside the
// frontmatter block, inserting one if absent. Other fields keep their order
// and formatting.
func setFrontmatterDescription(content, desc string) (string, bool) {
	raw, body, ok := corpus.SplitFrontmatter(content)
	if !ok {
		return "", false
	}

	line := "description: " + quoteYAMLScalar(desc)
	lines := strings.Split(raw, "\n")
	replaced := false
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "description:") {
			lines[i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, line)
	}

	var b strings.Builder
	b.WriteString("---\n")
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("---\n")
	b.WriteString(body)
	return b.String(), true
}

// quoteYAMLScalar double-quotes a one-line value so colons and leading
// punctuation survive YAML parsing.
func quoteYAMLScalar(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func init() {
	descriptionsCmd.Flags().BoolVar(&descriptionsWrite, "write", false, "Apply the changes")
	descriptionsCmd.Flags().StringVar(&descriptionsOnly, "only", "", "Limit to one category (commands or cvars)")
	rootCmd.AddCommand(descriptionsCmd)
}

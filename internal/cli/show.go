package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quilldocs/quill/internal/corpus"
	"github.com/quilldocs/quill/internal/lookup"
	"github.com/quilldocs/quill/internal/ui"
)

var showRaw bool

type showResult struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Display the documentation page for a name",
	Long: `Resolves a name like 'quill lookup' and prints the page itself.

On a terminal the page is rendered; piped output and --raw print the
markdown source. Frontmatter is stripped either way.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		corpusPath := getCorpusPath()

		entry, err := resolveName(corpusPath, name)
		if err != nil {
			if errors.Is(err, lookup.ErrNotFound) {
				return handleError(ErrNameNotFound, err, "run 'quill build --write' to refresh the map and lookup cache")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		content, err := readPage(corpusPath, entry.Path)
		if err != nil {
			return handleError(ErrPageNotFound, err, "run 'quill check' to find dangling map entries")
		}

		// Frontmatter is storage metadata, not page content.
		if _, body, ok := corpus.SplitFrontmatter(content); ok {
			content = body
		}

		if isJSONOutput() {
			outputSuccess(showResult{Name: entry.Name, Path: entry.Path, Content: content}, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		if showRaw || !display.IsTTY {
			fmt.Print(strings.TrimRight(content, "\n") + "\n")
			return nil
		}

		rendered, err := ui.RenderMarkdown(content, display.TermWidth)
		if err != nil {
			// Rendering is cosmetic; fall back to the source.
			fmt.Print(strings.TrimRight(content, "\n") + "\n")
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

// readPage reads a corpus-relative page path, tolerating a .md/.mdc
// extension mismatch left over from a layout migration.
func readPage(corpusPath, relPath string) (string, error) {
	candidates := []string{relPath}
	switch {
	case strings.HasSuffix(relPath, ".md"):
		candidates = append(candidates, strings.TrimSuffix(relPath, ".md")+".mdc")
	case strings.HasSuffix(relPath, ".mdc"):
		candidates = append(candidates, strings.TrimSuffix(relPath, ".mdc")+".md")
	}

	var firstErr error
	for _, rel := range candidates {
		data, err := os.ReadFile(filepath.Join(corpusPath, filepath.FromSlash(rel)))
		if err == nil {
			return string(data), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", fmt.Errorf("page %s: %w", relPath, firstErr)
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the markdown source without rendering")
	rootCmd.AddCommand(showCmd)
}

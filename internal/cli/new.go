package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/quilldocs/quill/internal/atomicfile"
	"github.com/quilldocs/quill/internal/corpus"
	"github.com/quilldocs/quill/internal/naming"
	"github.com/quilldocs/quill/internal/ui"
)

var (
	newTitle   string
	newSummary string
)

type newResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

var newCmd = &cobra.Command{
	Use:   "new <category> [name]",
	Short: "Scaffold a new documentation page",
	Long: `Creates a page skeleton under the category directory.

The name maps to a filename through the usual encodings: '.yes' is stored
as dot_yes, 'sp_sv_sound_*' as sp_sv_sound_asterisk. When the name is
omitted it is derived from --title.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		corpusPath := getCorpusPath()
		corpCfg := getCorpusConfig()

		category, err := corpus.ParseCategory(args[0])
		if err != nil || category == "" {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown category %q", args[0]),
				"use 'commands' or 'cvars'")
		}

		name := ""
		if len(args) == 2 {
			name = args[1]
		} else if newTitle != "" {
			name = nameFromTitle(newTitle)
		}
		if name == "" {
			return handleErrorMsg(ErrMissingArgument,
				"no page name given",
				"pass a name or --title to derive one")
		}

		stem, err := naming.Filename(name)
		if err != nil {
			return handleError(ErrNameInvalid, err, "wildcards must be a trailing _*, aliases a leading dot")
		}

		relPath := path.Join(categoryDirFor(corpCfg, category), stem+corpCfg.GetExtension())
		fullPath := filepath.Join(corpusPath, filepath.FromSlash(relPath))
		if _, err := os.Stat(fullPath); err == nil {
			return handleErrorMsg(ErrPageExists,
				fmt.Sprintf("page already exists: %s", relPath),
				"edit the existing page instead")
		}

		content := scaffoldPage(name, newSummary)
		if err := atomicfile.WriteFile(fullPath, []byte(content), 0644); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(newResult{Name: name, Path: relPath}, nil)
			return nil
		}

		fmt.Println(ui.Success("Created " + ui.FilePath(relPath)))
		fmt.Println(ui.Hint("Run 'quill build --write' to add it to the map."))
		return nil
	},
}

// nameFromTitle derives an entity name from a human title. Entity names use
// underscores where slugs use hyphens.
func nameFromTitle(title string) string {
	return strings.ReplaceAll(slug.Make(title), "-", "_")
}

func scaffoldPage(name, summary string) string {
	if summary == "" {
		summary = "One-line summary."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", name)
	fmt.Fprintf(&b, "%s\n\n", summary)
	b.WriteString("Synopsis:\n\n")
	fmt.Fprintf(&b, "```\n%s\n```\n", name)
	return b.String()
}

func init() {
	newCmd.Flags().StringVar(&newTitle, "title", "", "Human title to derive the name from")
	newCmd.Flags().StringVar(&newSummary, "summary", "", "One-line summary for the new page")
	rootCmd.AddCommand(newCmd)
}

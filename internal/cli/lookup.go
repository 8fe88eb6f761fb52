package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quilldocs/quill/internal/lookup"
	"github.com/quilldocs/quill/internal/mapfile"
	"github.com/quilldocs/quill/internal/merge"
	"github.com/quilldocs/quill/internal/ui"
)

type lookupResult struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Resolve a name to its documentation page",
	Long: `Resolves a command or cvar name to the page documenting it.

Exact names resolve directly; names covered by a wildcard family resolve to
the family page. An empty lookup cache is seeded from map.json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		entry, err := resolveName(getCorpusPath(), name)
		if err != nil {
			if errors.Is(err, lookup.ErrNotFound) {
				return handleError(ErrNameNotFound, err, "run 'quill build --write' to refresh the map and lookup cache")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(lookupResult{Name: entry.Name, Path: entry.Path, Summary: entry.Summary}, nil)
			return nil
		}

		fmt.Printf("%s  %s\n", ui.Header(entry.Name), ui.FilePath(entry.Path))
		if entry.Summary != "" {
			fmt.Println(entry.Summary)
		}
		return nil
	},
}

// resolveName resolves a name through the lookup cache, seeding the cache
// from the persisted map when it is empty.
func resolveName(corpusPath, name string) (merge.Entry, error) {
	db, err := lookup.Open(corpusPath)
	if err != nil {
		return merge.Entry{}, err
	}
	defer db.Close()

	n, err := db.Count()
	if err != nil {
		return merge.Entry{}, err
	}
	if n == 0 {
		corpCfg := getCorpusConfig()
		m, err := mapfile.Load(filepath.Join(corpusPath, corpCfg.GetMapFile()))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return merge.Entry{}, fmt.Errorf("%w: %s (no %s; run 'quill build --write')", lookup.ErrNotFound, name, corpCfg.GetMapFile())
			}
			return merge.Entry{}, err
		}
		if err := db.Rebuild(m); err != nil {
			return merge.Entry{}, err
		}
	}

	return db.Get(name)
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

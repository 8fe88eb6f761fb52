package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quilldocs/quill/internal/config"
	"github.com/quilldocs/quill/internal/corpus"
	"github.com/quilldocs/quill/internal/lookup"
	"github.com/quilldocs/quill/internal/mapfile"
	"github.com/quilldocs/quill/internal/merge"
	"github.com/quilldocs/quill/internal/ui"
)

var (
	buildWrite bool
	buildOnly  string
)

type buildResult struct {
	Entries int      `json:"entries"`
	Changes []string `json:"changes"`
	Written bool     `json:"written"`
	MapFile string   `json:"map_file"`
}

// conflictDetails is the error payload when sources disagree on a name.
type conflictDetails struct {
	Conflicts []conflictResult `json:"conflicts"`
}

type conflictResult struct {
	Name         string `json:"name"`
	KeptPath     string `json:"kept_path"`
	KeptSource   string `json:"kept_source"`
	RejectedPath string `json:"rejected_path"`
	RejectedFrom string `json:"rejected_source"`
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the canonical name-to-page map",
	Long: `Derives the canonical map from the pages on disk and the manual index.

By default this is a dry run: the resulting changes are printed but nothing
is persisted. Pass --write to replace map.json and rebuild the lookup cache.

Sources merge in precedence order: manual index, literal pages, dot-command
aliases, wildcard families. Two sources asserting different locations for
one name is a conflict; the higher-precedence entry stays in the map and
the command exits non-zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpusPath := getCorpusPath()
		corpCfg := getCorpusConfig()

		only, err := corpus.ParseCategory(buildOnly)
		if err != nil {
			return handleError(ErrInvalidInput, err, "use --only commands or --only cvars")
		}

		pages, err := corpus.Scan(corpusPath, corpCfg, only)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		index, err := corpus.LoadIndex(corpusPath, corpCfg)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		if only != "" {
			index = filterIndexByCategory(index, corpCfg, only)
		}

		inputs, skipped := merge.CollectInputs(pages, index)
		built, conflicts := merge.Merge(inputs)

		mapPath := filepath.Join(corpusPath, corpCfg.GetMapFile())
		prev, err := mapfile.Load(mapPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return handleError(ErrFileReadError, err, "delete the map file and rebuild it with 'quill build --write'")
		}
		if only != "" && prev != nil {
			prev = filterMapByCategory(prev, corpCfg, only)
		}

		changes := mapfile.Diff(prev, built)

		if buildWrite {
			if only != "" {
				return handleErrorMsg(ErrInvalidInput,
					"--write cannot be combined with --only: a partial map would drop the other category",
					"run 'quill build --write' without --only")
			}
			if err := mapfile.Write(mapPath, built); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			if err := rebuildLookupCache(corpusPath, built); err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
		}

		if len(conflicts) > 0 {
			if !isJSONOutput() {
				printBuildReport(built.Len(), changes, conflicts, skipped, mapPath)
			}
			return handleErrorWithDetails(ErrMergeConflict,
				fmt.Sprintf("%d name(s) map to more than one page", len(conflicts)),
				"remove or rename the duplicate pages, or point the index entry at one of them",
				conflictDetails{Conflicts: conflictResults(conflicts)})
		}

		if isJSONOutput() {
			result := buildResult{
				Entries: built.Len(),
				Changes: changes,
				Written: buildWrite,
				MapFile: corpCfg.GetMapFile(),
			}
			outputSuccessWithWarnings(result, skippedWarnings(skipped), &Meta{Count: built.Len()})
		} else {
			printBuildReport(built.Len(), changes, conflicts, skipped, mapPath)
		}
		return nil
	},
}

func conflictResults(conflicts []merge.Conflict) []conflictResult {
	out := make([]conflictResult, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, conflictResult{
			Name:         c.Name,
			KeptPath:     c.Kept.Path,
			KeptSource:   c.Kept.Source.String(),
			RejectedPath: c.Rejected.Path,
			RejectedFrom: c.Rejected.Source.String(),
		})
	}
	return out
}

func printBuildReport(entries int, changes []string, conflicts []merge.Conflict, skipped []merge.ResolutionIssue, mapPath string) {
	for _, s := range skipped {
		fmt.Println(ui.Warning(fmt.Sprintf("skipped %s: %v", s.RelPath, s.Err)))
	}
	for _, c := range conflicts {
		fmt.Println(ui.Error(fmt.Sprintf("conflict: %s maps to both %s (%s, kept) and %s (%s)",
			c.Name, c.Kept.Path, c.Kept.Source, c.Rejected.Path, c.Rejected.Source)))
	}

	if len(changes) == 0 {
		fmt.Println(ui.Success(fmt.Sprintf("Map is up to date (%d entries).", entries)))
	} else {
		for _, line := range changes {
			fmt.Println(line)
		}
		fmt.Println()
		fmt.Printf("%d entries, %d change(s).\n", entries, len(changes))
	}

	if buildWrite {
		fmt.Println(ui.Success("Wrote " + ui.FilePath(mapPath)))
	} else if len(changes) > 0 {
		fmt.Println(ui.Hint("Dry run. Use --write to persist."))
	}
}

func skippedWarnings(skipped []merge.ResolutionIssue) []Warning {
	var warnings []Warning
	for _, s := range skipped {
		warnings = append(warnings, Warning{
			Code:    WarnPageSkipped,
			Message: s.Err.Error(),
			Ref:     s.RelPath,
		})
	}
	return warnings
}

// rebuildLookupCache replaces the SQLite cache with the freshly built map.
func rebuildLookupCache(corpusPath string, m *merge.CanonicalMap) error {
	db, err := lookup.Open(corpusPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Rebuild(m)
}

// filterIndexByCategory keeps only index entries whose target path lives
// under the selected category directory.
func filterIndexByCategory(index []corpus.IndexEntry, corpCfg *config.CorpusConfig, only corpus.Category) []corpus.IndexEntry {
	dir := categoryDirFor(corpCfg, only)
	var kept []corpus.IndexEntry
	for _, e := range index {
		if pathInDir(e.RelPath, dir) {
			kept = append(kept, e)
		}
	}
	return kept
}

// filterMapByCategory keeps only map entries whose page path lives under the
// selected category directory, so scoped dry runs diff like-for-like.
func filterMapByCategory(m *merge.CanonicalMap, corpCfg *config.CorpusConfig, only corpus.Category) *merge.CanonicalMap {
	dir := categoryDirFor(corpCfg, only)
	var kept []merge.Entry
	for _, e := range m.Entries() {
		if pathInDir(e.Path, dir) {
			kept = append(kept, e)
		}
	}
	return merge.FromEntries(kept)
}

func categoryDirFor(corpCfg *config.CorpusConfig, cat corpus.Category) string {
	if cat == corpus.CategoryCvar {
		return corpCfg.CvarsDir()
	}
	return corpCfg.CommandsDir()
}

func pathInDir(relPath, dir string) bool {
	return relPath == dir || len(relPath) > len(dir) && relPath[:len(dir)+1] == dir+"/"
}

func init() {
	buildCmd.Flags().BoolVar(&buildWrite, "write", false, "Persist the map and rebuild the lookup cache")
	buildCmd.Flags().StringVar(&buildOnly, "only", "", "Limit to one category (commands or cvars)")
	rootCmd.AddCommand(buildCmd)
}

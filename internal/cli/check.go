package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quilldocs/quill/internal/check"
	"github.com/quilldocs/quill/internal/corpus"
	"github.com/quilldocs/quill/internal/mapfile"
	"github.com/quilldocs/quill/internal/ui"
)

var (
	checkStrict bool
	checkOnly   string
)

type checkIssue struct {
	Check   string `json:"check"`
	Level   string `json:"level"`
	Name    string `json:"name,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

type checkResult struct {
	Issues   []checkIssue `json:"issues"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
	Pages    int          `json:"pages"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the corpus",
	Long: `Cross-checks the pages on disk, the manual index, and the persisted map.

Four checks always run: index references must resolve to pages, map entries
must resolve to pages, every page must be reachable from the map, and every
page must carry a title and a fenced synopsis. Referential failures are
errors; schema violations downgrade to warnings when quill.yaml sets
schema_severity: warning.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpusPath := getCorpusPath()
		corpCfg := getCorpusConfig()

		only, err := corpus.ParseCategory(checkOnly)
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

		persisted, err := mapfile.Load(filepath.Join(corpusPath, corpCfg.GetMapFile()))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return handleError(ErrFileReadError, err, "rebuild the map with 'quill build --write'")
		}

		// A scoped run must not flag the other category's references.
		if only != "" {
			index = filterIndexByCategory(index, corpCfg, only)
			if persisted != nil {
				persisted = filterMapByCategory(persisted, corpCfg, only)
			}
		}

		report := check.Validate(corpusPath, pages, index, persisted, check.Options{
			SchemaAsWarnings: corpCfg.SchemaViolationsAreWarnings(),
			Exclude:          corpCfg.ExcludeSet(),
		})

		if isJSONOutput() {
			result := checkResult{
				Issues:   []checkIssue{},
				Errors:   report.Errors(),
				Warnings: report.Warnings(),
				Pages:    len(pages),
			}
			for _, issue := range report.Issues {
				result.Issues = append(result.Issues, checkIssue{
					Check:   string(issue.Check),
					Level:   issue.Level.String(),
					Name:    issue.Name,
					Path:    issue.Path,
					Message: issue.Message,
				})
			}
			outputSuccess(result, &Meta{Count: len(report.Issues)})
		} else {
			printCheckReport(corpusPath, report, len(pages))
		}

		if report.HasErrors() || (checkStrict && report.Warnings() > 0) {
			os.Exit(1)
		}
		return nil
	},
}

func printCheckReport(corpusPath string, report *check.Report, pageCount int) {
	fmt.Printf("Checking corpus: %s\n", ui.FilePath(corpusPath))

	for _, issue := range report.Issues {
		loc := issue.Path
		if loc == "" {
			loc = issue.Name
		}
		fmt.Printf("%s: [%s] %s - %s\n", issue.Level, issue.Check, loc, issue.Message)
	}

	fmt.Println()
	if len(report.Issues) == 0 {
		fmt.Println(ui.Success(fmt.Sprintf("No issues found in %d pages.", pageCount)))
	} else {
		fmt.Printf("Found issues %s in %d pages.\n",
			ui.ErrorWarningCounts(report.Errors(), report.Warnings()), pageCount)
	}
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")
	checkCmd.Flags().StringVar(&checkOnly, "only", "", "Limit to one category (commands or cvars)")
	rootCmd.AddCommand(checkCmd)
}

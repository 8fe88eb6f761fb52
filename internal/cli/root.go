// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/quilldocs/quill/internal/config"
	"github.com/quilldocs/quill/internal/ui"
)

var (
	// Global flags
	corpusName     string // Named corpus from config
	corpusPathFlag string // Explicit path
	configPath     string

	// Resolved values
	resolvedCorpusPath string
	cfg                *config.Config
	corpusCfg          *config.CorpusConfig
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill - documentation corpus index builder and validator",
	Long: `Quill keeps a corpus of command and cvar documentation pages honest.

It derives a canonical name-to-page map from the pages on disk and the
manual index, persists it as map.json, and cross-checks the three against
each other so broken references and orphaned pages surface early.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip corpus resolution for commands that don't need it
		switch cmd.Name() {
		case "init", "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "completion" || cmd.Parent().Name() == "help") {
			return nil
		}

		// Load config
		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "")
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		// Resolve corpus path: explicit path > named corpus > default > cwd
		if corpusPathFlag != "" {
			resolvedCorpusPath = corpusPathFlag
		} else if corpusName != "" {
			resolvedCorpusPath, err = cfg.GetCorpusPath(corpusName)
			if err != nil {
				return handleErrorMsg(ErrCorpusNotFound,
					fmt.Sprintf("corpus '%s' not found in config", corpusName),
					fmt.Sprintf("add it under [corpora] in %s", config.DefaultPath()))
			}
		} else if path, defErr := cfg.GetDefaultCorpusPath(); defErr == nil {
			resolvedCorpusPath = path
		} else {
			// Fall back to the current directory when it looks like a corpus.
			cwd, cwdErr := os.Getwd()
			if cwdErr != nil {
				return fmt.Errorf("failed to resolve working directory: %w", cwdErr)
			}
			if !looksLikeCorpus(cwd) {
				return handleErrorMsg(ErrCorpusNotSpecified,
					fmt.Sprintf(`no corpus specified

Either:
  1. Use --corpus <name> (from config)
  2. Use --corpus-path /path/to/corpus
  3. Set default_corpus in %s
  4. Run 'quill init /path/to/new/corpus' to create one`, config.DefaultPath()),
					"pass --corpus-path /path/to/corpus")
			}
			resolvedCorpusPath = cwd
		}

		// Verify corpus exists
		if _, err := os.Stat(resolvedCorpusPath); os.IsNotExist(err) {
			return handleErrorMsg(ErrCorpusNotFound,
				fmt.Sprintf("corpus not found: %s", resolvedCorpusPath),
				fmt.Sprintf("run 'quill init %s' to create it", resolvedCorpusPath))
		}

		corpusCfg, err = config.LoadCorpusConfig(resolvedCorpusPath)
		if err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("failed to load quill.yaml: %w", err), "")
		}
		if err := corpusCfg.Validate(); err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("invalid quill.yaml: %w", err), "")
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	// Accept --corpus_path as --corpus-path and friends.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	rootCmd.PersistentFlags().StringVarP(&corpusName, "corpus", "c", "", "Named corpus from config")
	rootCmd.PersistentFlags().StringVar(&corpusPathFlag, "corpus-path", "", "Explicit path to corpus directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getCorpusPath returns the resolved corpus path.
func getCorpusPath() string {
	return resolvedCorpusPath
}

// getCorpusConfig returns the loaded per-corpus configuration.
func getCorpusConfig() *config.CorpusConfig {
	return corpusCfg
}

func loadGlobalConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// looksLikeCorpus reports whether a directory plausibly holds a corpus:
// either a quill.yaml or a commands/ directory.
func looksLikeCorpus(dir string) bool {
	for _, marker := range []string{"quill.yaml", "commands"} {
		if _, err := os.Stat(dir + string(os.PathSeparator) + marker); err == nil {
			return true
		}
	}
	return false
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quilldocs/quill/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Initialize a new corpus",
	Long: `Creates a new corpus at the specified path with default layout.

Creates:
  - quill.yaml       (corpus configuration)
  - commands/        (command pages)
  - cvars/           (cvar pages)
  - .quill/          (derived lookup cache)
  - .gitignore       (ignores derived files)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		fmt.Printf("Initializing corpus at: %s\n", path)

		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create corpus directory: %w", err)
		}

		for _, dir := range []string{"commands", "cvars", config.DerivedDir} {
			if err := os.MkdirAll(filepath.Join(path, dir), 0755); err != nil {
				return fmt.Errorf("failed to create %s directory: %w", dir, err)
			}
		}

		gitignoreStatus, err := ensureGitignore(path)
		if err != nil {
			return err
		}

		createdConfig, err := config.CreateDefaultCorpusConfig(path)
		if err != nil {
			return fmt.Errorf("failed to create quill.yaml: %w", err)
		}

		if createdConfig {
			fmt.Println("✓ Created quill.yaml (corpus configuration)")
		} else {
			fmt.Println("• quill.yaml already exists (kept)")
		}

		fmt.Println("✓ Ensured commands/, cvars/, and .quill/ exist")

		switch gitignoreStatus {
		case "created":
			fmt.Println("✓ Created .gitignore")
		case "updated":
			fmt.Println("✓ Updated .gitignore (added quill entries)")
		default:
			fmt.Println("• .gitignore already has quill entries")
		}

		if createdConfig {
			fmt.Println("\nCorpus initialized! Start adding pages with 'quill new'.")
		} else {
			fmt.Println("\nExisting corpus detected. Configuration preserved.")
		}

		return nil
	},
}

// ensureGitignore adds the derived-file entries to .gitignore, creating the
// file if needed. Returns "created", "updated", or "kept".
func ensureGitignore(path string) (string, error) {
	gitignorePath := filepath.Join(path, ".gitignore")
	entries := []string{config.DerivedDir + "/"}

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range entries {
		if !strings.Contains(existing, entry) {
			missing = append(missing, entry)
		}
	}

	if len(missing) == 0 {
		return "kept", nil
	}

	status := "created"
	var content string
	if existing == "" {
		content = `# Quill derived files (rebuilt with 'quill build --write')
` + config.DerivedDir + `/
`
	} else {
		status = "updated"
		content = strings.TrimRight(existing, "\n") + "\n\n# Quill\n" + strings.Join(missing, "\n") + "\n"
	}
	if err := os.WriteFile(gitignorePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return status, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}

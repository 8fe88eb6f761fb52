package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default corpus layout. A corpus without a quill.yaml gets exactly this.
const (
	DefaultExtension = ".md"
	DefaultIndexFile = "commands_index.md"
	DefaultMapFile   = "map.json"

	// DerivedDir holds rebuildable artifacts (lookup cache) inside a corpus.
	DerivedDir = ".quill"
)

// CorpusConfig represents corpus-level configuration from quill.yaml.
type CorpusConfig struct {
	// Extension is the page file extension, ".md" (default) or ".mdc".
	// Pages with the ".mdc" extension carry YAML frontmatter which is
	// stripped before schema parsing.
	Extension string `yaml:"extension,omitempty"`

	// Directories configures where each page category lives.
	Directories *DirectoriesConfig `yaml:"directories,omitempty"`

	// IndexFile is the corpus-relative path of the manually curated index
	// (default: "commands_index.md").
	IndexFile string `yaml:"index_file,omitempty"`

	// MapFile is the corpus-relative path of the derived canonical map
	// (default: "map.json"). The map is rebuilt from scratch on every build;
	// hand edits are overwritten or flagged as drift.
	MapFile string `yaml:"map_file,omitempty"`

	// SchemaSeverity controls how page schema violations are reported by
	// `quill check`: "error" (default) or "warning".
	SchemaSeverity string `yaml:"schema_severity,omitempty"`

	// Exclude lists canonical names exempt from the orphan-page check.
	Exclude []string `yaml:"exclude,omitempty"`
}

// DirectoriesConfig configures the per-category page directories.
type DirectoriesConfig struct {
	// Commands is the directory for command pages (default: "commands").
	Commands string `yaml:"commands,omitempty"`

	// Cvars is the directory for cvar pages (default: "cvars").
	Cvars string `yaml:"cvars,omitempty"`
}

// GetExtension returns the configured page extension with the default applied.
func (cc *CorpusConfig) GetExtension() string {
	ext := strings.TrimSpace(cc.Extension)
	if ext == "" {
		return DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// CommandsDir returns the commands directory name with the default applied.
func (cc *CorpusConfig) CommandsDir() string {
	if cc.Directories != nil && cc.Directories.Commands != "" {
		return cleanDirName(cc.Directories.Commands)
	}
	return "commands"
}

// CvarsDir returns the cvars directory name with the default applied.
func (cc *CorpusConfig) CvarsDir() string {
	if cc.Directories != nil && cc.Directories.Cvars != "" {
		return cleanDirName(cc.Directories.Cvars)
	}
	return "cvars"
}

// GetIndexFile returns the manual index path with the default applied.
func (cc *CorpusConfig) GetIndexFile() string {
	if cc.IndexFile != "" {
		return cc.IndexFile
	}
	return DefaultIndexFile
}

// GetMapFile returns the canonical map path with the default applied.
func (cc *CorpusConfig) GetMapFile() string {
	if cc.MapFile != "" {
		return cc.MapFile
	}
	return DefaultMapFile
}

// SchemaViolationsAreWarnings reports whether page schema violations should
// be downgraded to warnings.
func (cc *CorpusConfig) SchemaViolationsAreWarnings() bool {
	return strings.EqualFold(strings.TrimSpace(cc.SchemaSeverity), "warning")
}

// ExcludeSet returns the orphan-check exclusions as a set.
func (cc *CorpusConfig) ExcludeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(cc.Exclude))
	for _, name := range cc.Exclude {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// Validate checks the config for values we can't act on.
func (cc *CorpusConfig) Validate() error {
	switch ext := cc.GetExtension(); ext {
	case ".md", ".mdc":
	default:
		return fmt.Errorf("unsupported page extension %q (want .md or .mdc)", ext)
	}
	switch sev := strings.ToLower(strings.TrimSpace(cc.SchemaSeverity)); sev {
	case "", "error", "warning":
	default:
		return fmt.Errorf("invalid schema_severity %q (want error or warning)", cc.SchemaSeverity)
	}
	return nil
}

// LoadCorpusConfig loads quill.yaml from the corpus root.
// Returns an empty config if the file doesn't exist.
func LoadCorpusConfig(corpusPath string) (*CorpusConfig, error) {
	configPath := filepath.Join(corpusPath, "quill.yaml")

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return &CorpusConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quill.yaml: %w", err)
	}

	var cc CorpusConfig
	if err := yaml.Unmarshal(data, &cc); err != nil {
		return nil, fmt.Errorf("failed to parse quill.yaml: %w", err)
	}
	if err := cc.Validate(); err != nil {
		return nil, err
	}
	return &cc, nil
}

// CreateDefaultCorpusConfig writes a commented default quill.yaml to the
// corpus root. Returns false if one already exists.
func CreateDefaultCorpusConfig(corpusPath string) (bool, error) {
	configPath := filepath.Join(corpusPath, "quill.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	content := `# Quill corpus configuration.
# All settings are optional; the defaults are shown commented out.

# Page file extension. Use .mdc for pages carrying YAML frontmatter.
# extension: .md

# Where each page category lives, relative to the corpus root.
# directories:
#   commands: commands
#   cvars: cvars

# The manually curated index and the derived canonical map.
# index_file: commands_index.md
# map_file: map.json

# How 'quill check' reports page schema violations: error or warning.
# schema_severity: error

# Names exempt from the orphan-page check.
# exclude:
#   - some_internal_page
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return false, err
	}
	return true, nil
}

func cleanDirName(dir string) string {
	dir = filepath.ToSlash(dir)
	return strings.Trim(dir, "/")
}

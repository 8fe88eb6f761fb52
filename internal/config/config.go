// Package config handles global quill configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global quill configuration.
type Config struct {
	// DefaultCorpus is the name of the default corpus (from Corpora map).
	DefaultCorpus string `toml:"default_corpus"`

	// Corpora is a map of corpus names to root paths.
	Corpora map[string]string `toml:"corpora"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered code blocks.
	// Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// GetCorpusPath returns the root path for a named corpus.
// If name is empty, the default corpus is used.
func (c *Config) GetCorpusPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultCorpus
	}
	if name == "" {
		return "", fmt.Errorf("no default corpus configured")
	}
	if c.Corpora != nil {
		if path, ok := c.Corpora[name]; ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("corpus '%s' not found in config", name)
}

// GetDefaultCorpusPath returns the default corpus root path.
func (c *Config) GetDefaultCorpusPath() (string, error) {
	return c.GetCorpusPath("")
}

// Load loads the configuration from the default location.
// Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/quill/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "quill", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "quill", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// Package config handles configuration loading and validation for marks.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/marks/internal/core/styles"
)

// DefaultSentinel is the key that accepts the offered path in pick mode.
const DefaultSentinel = "`"

// DefaultBookmarksFile is the bookmark file name inside the data directory.
const DefaultBookmarksFile = "bookmarks"

// Config holds the application configuration.
type Config struct {
	// BookmarksFile is the bookmark file location. Relative paths are resolved
	// against the data directory and a leading ~/ against the home directory.
	BookmarksFile string `yaml:"bookmarks_file"`
	// Sentinel is the single character that accepts the offered path in pick
	// mode and cancels add mode.
	Sentinel string `yaml:"sentinel"`
	// Theme selects the palette used for CLI output.
	Theme string `yaml:"theme"`

	DataDir string `yaml:"-"` // set by caller, not from config file
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BookmarksFile: DefaultBookmarksFile,
		Sentinel:      DefaultSentinel,
		Theme:         styles.DefaultTheme,
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.BookmarksFile == "" {
		c.BookmarksFile = defaults.BookmarksFile
	}
	if c.Sentinel == "" {
		c.Sentinel = defaults.Sentinel
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if utf8.RuneCountInString(c.Sentinel) != 1 {
		return fmt.Errorf("sentinel must be a single character, got %q", c.Sentinel)
	}
	if r := c.SentinelKey(); !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return fmt.Errorf("sentinel %q must be a printable, non-space character", c.Sentinel)
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", c.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	return nil
}

// SentinelKey returns the sentinel as a rune.
func (c *Config) SentinelKey() rune {
	r, _ := utf8.DecodeRuneInString(c.Sentinel)
	return r
}

// BookmarkPath returns the absolute location of the bookmark file. It
// satisfies bookmark.PathResolver.
func (c *Config) BookmarkPath() (string, error) {
	path := c.BookmarksFile
	if path == "" {
		path = DefaultBookmarksFile
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if !filepath.IsAbs(path) {
		if c.DataDir == "" {
			return "", fmt.Errorf("relative bookmarks_file %q requires a data directory", path)
		}
		path = filepath.Join(c.DataDir, path)
	}

	return filepath.Clean(path), nil
}

// LogFile returns the default log file location.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "marks.log")
}

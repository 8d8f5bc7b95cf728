package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
)

// ValidateDeep performs Validate and then checks the filesystem locations the
// configuration points at. The configPath argument is the config file to
// check; an empty string skips that check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		c.validateBookmarksFile(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}
	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateBookmarksFile checks the bookmark file is a regular file (or
// missing) and that its directory can be created.
func (c *Config) validateBookmarksFile() error {
	var errs criterio.FieldErrorsBuilder

	path, err := c.BookmarkPath()
	if err != nil {
		return errs.Append("bookmarks_file", err).ToError()
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		errs = errs.Append("bookmarks_file", fmt.Errorf("%s is a directory, not a file", path))
	}

	if err := isDirectoryOrNotExist(filepath.Dir(path)); err != nil {
		errs = errs.Append("bookmarks_file", fmt.Errorf("parent %s: %w", filepath.Dir(path), err))
	}

	return errs.ToError()
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

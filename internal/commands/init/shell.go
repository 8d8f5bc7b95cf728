// Package initcmd renders the shell integration that lets pick change the
// current directory of the calling shell.
package initcmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shell represents a supported shell type.
type Shell string

const (
	ShellZsh  Shell = "zsh"
	ShellBash Shell = "bash"
	ShellFish Shell = "fish"
)

// ShellInfo contains detected shell information.
type ShellInfo struct {
	Name   Shell
	RCFile string
}

// ParseShell validates a shell name.
func ParseShell(name string) (Shell, error) {
	switch s := Shell(strings.ToLower(name)); s {
	case ShellZsh, ShellBash, ShellFish:
		return s, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s", name)
	}
}

// DetectShell returns the user's shell and rc file path.
func DetectShell() (ShellInfo, error) {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return ShellInfo{}, errors.New("SHELL environment variable not set")
	}

	shell, err := ParseShell(filepath.Base(shellPath))
	if err != nil {
		return ShellInfo{Name: Shell(filepath.Base(shellPath))}, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ShellInfo{}, err
	}

	return ShellInfo{Name: shell, RCFile: shell.RCFile(home)}, nil
}

// RCFile returns the startup file the integration belongs in.
func (s Shell) RCFile(home string) string {
	switch s {
	case ShellZsh:
		return filepath.Join(home, ".zshrc")
	case ShellBash:
		rcFile := filepath.Join(home, ".bashrc")
		if _, err := os.Stat(rcFile); os.IsNotExist(err) {
			rcFile = filepath.Join(home, ".bash_profile")
		}
		return rcFile
	case ShellFish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return ""
	}
}

// Function returns a shell function named name that runs pick and changes
// into the chosen directory. The directory is left unchanged on cancel.
func (s Shell) Function(name string) string {
	switch s {
	case ShellFish:
		return fmt.Sprintf(`function %s
    set -l dir (marks pick); or return
    cd $dir
end
`, name)
	default:
		return fmt.Sprintf(`%s() {
    local dir
    dir="$(marks pick)" || return
    cd "$dir"
}
`, name)
	}
}

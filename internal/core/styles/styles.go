// Package styles provides the lipgloss v2 styles used for CLI output.
package styles

import (
	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	HeaderStyle   lipgloss.Style
	KeyStyle      lipgloss.Style
	SentinelStyle lipgloss.Style
	PathStyle     lipgloss.Style
	MutedStyle    lipgloss.Style
	ErrorStyle    lipgloss.Style
)

func init() {
	p, _ := GetPalette(DefaultTheme)
	SetTheme(p)
}

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	KeyStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	SentinelStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	PathStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error)
}

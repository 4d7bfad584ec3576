package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var flavor = catppuccin.Mocha

// Color constants extracted from the Mocha palette for convenience.
var (
	colorBase     = lipgloss.Color(flavor.Base().Hex)
	colorSurface0 = lipgloss.Color(flavor.Surface0().Hex)
	colorSurface1 = lipgloss.Color(flavor.Surface1().Hex)
	colorText     = lipgloss.Color(flavor.Text().Hex)
	colorSubtext0 = lipgloss.Color(flavor.Subtext0().Hex)
	colorBlue     = lipgloss.Color(flavor.Blue().Hex)
	colorYellow   = lipgloss.Color(flavor.Yellow().Hex)
)

var (
	// TitleStyle is the pager's top bar.
	TitleStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Padding(0, 1).
			Bold(true)

	// StatusBarStyle is the base style for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorSurface0).
			Padding(0, 1)

	// StatusBarKeyStyle highlights keyboard shortcuts in the status bar.
	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)

	// DividerStyle separates the title bar from the content.
	DividerStyle = lipgloss.NewStyle().
			Foreground(colorSurface1)

	// ContentStyle wraps the scrolling content area.
	ContentStyle = lipgloss.NewStyle().
			Foreground(colorText).
			PaddingLeft(1)
)

package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Severity and feedback
	Success lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Danger  lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Canvas and cards
	NodeText   lipgloss.Style // Plain node value
	NodeActive lipgloss.Style // Highlighted node value
	Edge       lipgloss.Style // Branch characters
	Card       lipgloss.Style // List, stack and queue items
	CardActive lipgloss.Style // Flashed item
	MutedText  lipgloss.Style
	KeyHint    lipgloss.Style
	ErrorText  lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Success: lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Info:    lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		Warning: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Danger:  lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.NodeText = r.NewStyle().Foreground(t.Info).Bold(true)
	t.NodeActive = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#282A36"}).
		Background(ThemeBg("#F1FA8C")).
		Bold(true)
	t.Edge = r.NewStyle().Foreground(t.Secondary)

	t.Card = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.CardActive = t.Card.
		BorderForeground(t.Warning).
		Foreground(t.Warning).
		Bold(true)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.KeyHint = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.ErrorText = r.NewStyle().Foreground(t.Danger).Bold(true)

	return t
}

// SeverityColor maps a log entry severity to a theme color.
func (t Theme) SeverityColor(s string) lipgloss.AdaptiveColor {
	switch s {
	case "info":
		return t.Info
	case "warning":
		return t.Warning
	case "error":
		return t.Danger
	default:
		return t.Subtext
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}

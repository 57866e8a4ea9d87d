package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer wraps a glamour renderer and rebuilds it when the width
// or theme changes.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	useTheme bool
	theme    *Theme
}

// NewMarkdownRenderer creates a renderer using glamour's stock dark or light
// style, depending on the terminal background.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	mr := &MarkdownRenderer{width: width}
	mr.rebuild()
	return mr
}

// NewMarkdownRendererWithTheme creates a renderer whose colors follow theme.
func NewMarkdownRendererWithTheme(width int, theme Theme) *MarkdownRenderer {
	mr := &MarkdownRenderer{width: width, useTheme: true, theme: &theme}
	mr.rebuild()
	return mr
}

func (mr *MarkdownRenderer) rebuild() {
	dark := mr.IsDarkMode()
	var style ansi.StyleConfig
	switch {
	case mr.useTheme && mr.theme != nil:
		style = buildStyleFromTheme(*mr.theme, dark)
	case dark:
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(mr.width),
	)
	if err != nil {
		mr.renderer = nil
		return
	}
	mr.renderer = r
}

// Render returns md as styled terminal text. Without a renderer the input
// is returned unchanged.
func (mr *MarkdownRenderer) Render(md string) (string, error) {
	if mr.renderer == nil {
		return md, nil
	}
	out, err := mr.renderer.Render(md)
	if err != nil {
		return md, err
	}
	return strings.TrimRight(out, "\n "), nil
}

// SetWidth rebuilds the renderer for a new wrap width.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width <= 0 || width == mr.width {
		return
	}
	mr.width = width
	mr.rebuild()
}

// SetWidthWithTheme switches to theme colors and a new width.
func (mr *MarkdownRenderer) SetWidthWithTheme(width int, theme Theme) {
	if width > 0 {
		mr.width = width
	}
	mr.useTheme = true
	mr.theme = &theme
	mr.rebuild()
}

// IsDarkMode reports whether the terminal has a dark background.
func (mr *MarkdownRenderer) IsDarkMode() bool {
	return lipgloss.HasDarkBackground()
}

func extractHex(ac lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return ac.Dark
	}
	return ac.Light
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func uintPtr(u uint) *uint    { return &u }

// buildStyleFromTheme derives a glamour style from the theme palette,
// starting from the stock style for the same background.
func buildStyleFromTheme(theme Theme, dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	text := "#000000"
	if dark {
		cfg = styles.DarkStyleConfig
		text = "#f8f8f2"
	}

	primary := extractHex(theme.Primary, dark)
	info := extractHex(theme.Info, dark)
	success := extractHex(theme.Success, dark)
	muted := extractHex(theme.Muted, dark)
	warning := extractHex(theme.Warning, dark)

	cfg.Document.Color = strPtr(text)
	cfg.Document.Margin = uintPtr(0)

	cfg.Heading.Color = strPtr(primary)
	cfg.Heading.Bold = boolPtr(true)
	cfg.H1.Color = strPtr(primary)
	cfg.H1.BackgroundColor = nil
	cfg.H1.Prefix = ""
	cfg.H1.Suffix = ""
	cfg.H2.Color = strPtr(primary)
	cfg.H3.Color = strPtr(info)

	cfg.Strong.Color = strPtr(warning)
	cfg.Emph.Color = strPtr(info)
	cfg.Code.Color = strPtr(success)
	cfg.Code.BackgroundColor = nil
	cfg.Link.Color = strPtr(info)
	cfg.LinkText.Color = strPtr(primary)
	cfg.BlockQuote.Color = strPtr(muted)
	cfg.HorizontalRule.Color = strPtr(muted)
	cfg.Item.BlockPrefix = "• "

	return cfg
}

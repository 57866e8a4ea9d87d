package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestMarkdownRenderer_ExplainerPages(t *testing.T) {
	mr := NewMarkdownRendererWithTheme(72, TestTheme())
	for _, page := range defaultExplainerPages() {
		out, err := mr.Render(page.Content)
		if err != nil {
			t.Errorf("page %s: render failed: %v", page.ID, err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("page %s rendered empty", page.ID)
		}
		if strings.HasSuffix(out, "\n") {
			t.Errorf("page %s: trailing newline not trimmed", page.ID)
		}
	}
}

func TestMarkdownRenderer_KeepsWords(t *testing.T) {
	mr := NewMarkdownRenderer(60)
	out, err := mr.Render("# Binary Tree\n\nPreorder visits the **root** first.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"Binary Tree", "Preorder", "root"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownRenderer_NoRendererPassesThrough(t *testing.T) {
	mr := &MarkdownRenderer{width: 80}
	out, err := mr.Render("# Queue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "# Queue" {
		t.Errorf("got %q, want raw markdown", out)
	}
}

func TestMarkdownRenderer_Width(t *testing.T) {
	tests := []struct {
		name  string
		set   int
		want  int
		fresh bool
	}{
		{"same width keeps renderer", 80, 80, false},
		{"zero ignored", 0, 80, false},
		{"negative ignored", -5, 80, false},
		{"new width rebuilds", 50, 50, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := NewMarkdownRenderer(80)
			before := mr.renderer
			mr.SetWidth(tt.set)
			if mr.width != tt.want {
				t.Errorf("width = %d, want %d", mr.width, tt.want)
			}
			if rebuilt := mr.renderer != before; rebuilt != tt.fresh {
				t.Errorf("rebuilt = %v, want %v", rebuilt, tt.fresh)
			}
		})
	}
}

func TestMarkdownRenderer_ThemeSticksAcrossResize(t *testing.T) {
	mr := NewMarkdownRenderer(80)
	if mr.useTheme || mr.theme != nil {
		t.Fatal("plain renderer should not carry a theme")
	}
	mr.SetWidthWithTheme(0, TestTheme())
	if mr.width != 80 {
		t.Errorf("zero width should keep 80, got %d", mr.width)
	}
	mr.SetWidth(64)
	if !mr.useTheme || mr.theme == nil {
		t.Error("resize dropped the theme")
	}
}

func TestBuildStyleFromTheme(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	for _, dark := range []bool{true, false} {
		cfg := buildStyleFromTheme(theme, dark)
		wantText := "#000000"
		if dark {
			wantText = "#f8f8f2"
		}
		if cfg.Document.Color == nil || *cfg.Document.Color != wantText {
			t.Errorf("dark=%v: document color = %v, want %s", dark, cfg.Document.Color, wantText)
		}
		if got := *cfg.H1.Color; got != extractHex(theme.Primary, dark) {
			t.Errorf("dark=%v: h1 color = %s", dark, got)
		}
		if cfg.Code.BackgroundColor != nil {
			t.Errorf("dark=%v: code background should be cleared", dark)
		}
		if cfg.Item.BlockPrefix != "• " {
			t.Errorf("dark=%v: item prefix = %q", dark, cfg.Item.BlockPrefix)
		}
	}
}

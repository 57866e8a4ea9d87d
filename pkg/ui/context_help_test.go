package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetContextHelp(t *testing.T) {
	for _, ctx := range []Context{ContextList, ContextStack, ContextQueue, ContextTree, ContextOrderPicker, ContextExplainer, ContextHelp} {
		if GetContextHelp(ctx) == contextHelpGeneric {
			t.Errorf("context %s has no specific help", ctx)
		}
	}
	if GetContextHelp(Context("nowhere")) != contextHelpGeneric {
		t.Error("Unknown context should fall back to generic help")
	}
}

func TestContextHelpMentionsTreeKeys(t *testing.T) {
	help := strings.ToLower(GetContextHelp(ContextTree))
	for _, b := range treeKeys.ShortHelp() {
		if !strings.Contains(help, b.Help().Key) {
			t.Errorf("tree help does not mention key %q", b.Help().Key)
		}
	}
}

func TestRenderContextHelp(t *testing.T) {
	theme := TestTheme()

	modal := RenderContextHelp(ContextStack, theme, 0, 0)
	if !strings.Contains(modal, "Quick Reference") {
		t.Error("Modal should have a title")
	}
	if !strings.Contains(modal, "Esc to close") {
		t.Error("Modal should have a footer")
	}
	if w := lipgloss.Width(modal); w > 62 {
		t.Errorf("Modal too wide: %d", w)
	}

	placed := RenderContextHelp(ContextStack, theme, 100, 40)
	if lipgloss.Width(placed) != 100 || lipgloss.Height(placed) != 40 {
		t.Errorf("Placed modal is %dx%d, want 100x40", lipgloss.Width(placed), lipgloss.Height(placed))
	}

	narrow := RenderContextHelp(ContextQueue, theme, 10, 0)
	if lipgloss.Width(narrow) < 20 {
		t.Error("Modal width should not drop below 20")
	}
}

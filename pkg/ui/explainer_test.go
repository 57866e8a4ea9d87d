package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func newTestExplainerModel() ExplainerModel {
	theme := Theme{Renderer: lipgloss.DefaultRenderer()}
	return NewExplainerModel(theme)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewExplainerModel(t *testing.T) {
	m := newTestExplainerModel()

	if m.currentPage != 0 {
		t.Errorf("Expected initial page 0, got %d", m.currentPage)
	}
	if m.tocVisible {
		t.Error("Expected TOC to be hidden initially")
	}
	if len(m.pages) == 0 {
		t.Error("Expected default pages to be loaded")
	}
	if m.progress == nil {
		t.Error("Expected progress map to be initialized")
	}
	if m.markdownRenderer == nil {
		t.Error("Expected markdown renderer to be initialized")
	}
}

func TestExplainerNavigation(t *testing.T) {
	m := newTestExplainerModel()
	totalPages := len(m.pages)

	m, _ = m.Update(runes("n"))
	if m.currentPage != 1 {
		t.Errorf("Expected page 1 after 'n', got %d", m.currentPage)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.currentPage != 2 {
		t.Errorf("Expected page 2 after right arrow, got %d", m.currentPage)
	}

	m, _ = m.Update(runes("p"))
	if m.currentPage != 1 {
		t.Errorf("Expected page 1 after 'p', got %d", m.currentPage)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.currentPage != 0 {
		t.Errorf("Expected page to stay at 0, got %d", m.currentPage)
	}

	for i := 0; i < totalPages+2; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	}
	if m.currentPage != totalPages-1 {
		t.Errorf("Expected to stay at last page %d, got %d", totalPages-1, m.currentPage)
	}
}

func TestExplainerNumberKeysJump(t *testing.T) {
	m := newTestExplainerModel()

	m, _ = m.Update(runes("3"))
	if m.currentPage != 2 {
		t.Errorf("Expected page 2 after '3', got %d", m.currentPage)
	}

	// Out of range is ignored
	m, _ = m.Update(runes("9"))
	if m.currentPage != 2 {
		t.Errorf("Expected page to stay at 2, got %d", m.currentPage)
	}
}

func TestExplainerTOCToggle(t *testing.T) {
	m := newTestExplainerModel()

	m, _ = m.Update(runes("t"))
	if !m.tocVisible {
		t.Fatal("Expected TOC to be visible after 't'")
	}
	if m.focus != focusExplainerTOC {
		t.Error("Expected focus on TOC when it opens")
	}

	m, _ = m.Update(runes("t"))
	if m.tocVisible {
		t.Error("Expected TOC to be hidden after second 't'")
	}
	if m.focus != focusExplainerContent {
		t.Error("Expected focus back on content")
	}
}

func TestExplainerTOCNavigation(t *testing.T) {
	m := newTestExplainerModel()
	m, _ = m.Update(runes("t"))

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(runes("j"))
	if m.tocCursor != 2 {
		t.Errorf("Expected cursor 2, got %d", m.tocCursor)
	}
	if m.currentPage != 0 {
		t.Error("Moving the cursor must not change the page")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentPage != 2 {
		t.Errorf("Expected page 2 after enter, got %d", m.currentPage)
	}
	if m.focus != focusExplainerContent {
		t.Error("Expected focus to return to content after enter")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusExplainerTOC {
		t.Error("Tab should move focus to the TOC when it is visible")
	}
	m, _ = m.Update(runes("G"))
	if m.tocCursor != len(m.pages)-1 {
		t.Errorf("Expected cursor at last entry, got %d", m.tocCursor)
	}
	m, _ = m.Update(runes("g"))
	if m.tocCursor != 0 {
		t.Errorf("Expected cursor at first entry, got %d", m.tocCursor)
	}
}

func TestExplainerTabAdvancesWithoutTOC(t *testing.T) {
	m := newTestExplainerModel()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.currentPage != 1 {
		t.Errorf("Expected tab to advance to page 1, got %d", m.currentPage)
	}
}

func TestExplainerJumpToContext(t *testing.T) {
	tests := []struct {
		ctx  Context
		want string
	}{
		{ContextList, "linked-list"},
		{ContextStack, "stack"},
		{ContextQueue, "queue"},
		{ContextTree, "tree-insert"},
		{ContextOrderPicker, "tree-traversal"},
	}
	for _, tt := range tests {
		m := newTestExplainerModel()
		m.JumpToContext(tt.ctx)
		if got := m.CurrentPageID(); got != tt.want {
			t.Errorf("JumpToContext(%s) = %q, want %q", tt.ctx, got, tt.want)
		}
	}

	m := newTestExplainerModel()
	m.JumpToPage(2)
	m.JumpToContext(Context("unknown"))
	if m.currentPage != 2 {
		t.Errorf("Unknown context should keep the page, got %d", m.currentPage)
	}
}

func TestExplainerProgress(t *testing.T) {
	m := newTestExplainerModel()
	m.SetSize(100, 40)

	if m.IsComplete() {
		t.Error("Should not be complete initially")
	}
	for i := range m.pages {
		m.JumpToPage(i)
		_ = m.View()
	}
	if !m.IsComplete() {
		t.Error("Expected complete after viewing every page")
	}
}

func TestExplainerExitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), runes("?"), {Type: tea.KeyEsc}} {
		m := newTestExplainerModel()
		m, _ = m.Update(k)
		if !m.ShouldClose() {
			t.Errorf("Expected %q to request close", k.String())
		}
		if !m.progress[m.CurrentPageID()] {
			t.Errorf("Closing with %q should mark the page viewed", k.String())
		}
		m.ResetClose()
		if m.ShouldClose() {
			t.Error("ResetClose should clear the request")
		}
	}
}

func TestExplainerIgnoresNonKeyMessages(t *testing.T) {
	m := newTestExplainerModel()
	m2, cmd := m.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	if cmd != nil {
		t.Error("Expected nil command")
	}
	if m2.currentPage != m.currentPage || m2.width != m.width {
		t.Error("Non-key messages should not change state")
	}
}

func TestExplainerView(t *testing.T) {
	m := newTestExplainerModel()
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "How it works") {
		t.Error("View should contain the header")
	}
	if !strings.Contains(view, "[1/7]") {
		t.Errorf("View should contain the page counter")
	}
	if !strings.Contains(view, "Overview") {
		t.Error("View should contain the page title")
	}
	if !strings.Contains(view, "pages") {
		t.Error("Content footer should list the paging keys")
	}

	m, _ = m.Update(runes("t"))
	view = m.View()
	if !strings.Contains(view, "Contents") {
		t.Error("TOC should be rendered when visible")
	}
	if !strings.Contains(view, "go to page") {
		t.Error("Footer should switch to TOC hints when the TOC has focus")
	}
}

func TestExplainerSetSizeRewraps(t *testing.T) {
	m := newTestExplainerModel()
	m.SetSize(120, 50)
	if m.markdownRenderer.width != m.contentWidth() {
		t.Errorf("Renderer width %d, want %d", m.markdownRenderer.width, m.contentWidth())
	}

	m.SetSize(10, 10)
	if m.contentWidth() != 30 {
		t.Errorf("Content width should be clamped to 30, got %d", m.contentWidth())
	}
}

func TestExplainerEmptyState(t *testing.T) {
	m := newTestExplainerModel()
	m.pages = nil
	if !strings.Contains(m.View(), "Nothing to explain") {
		t.Error("Expected empty state message")
	}
	if m.CurrentPageID() != "" {
		t.Error("Expected empty page ID")
	}
}

func TestDefaultExplainerPages(t *testing.T) {
	pages := defaultExplainerPages()
	seen := make(map[string]bool)
	for _, p := range pages {
		if p.ID == "" || p.Title == "" || strings.TrimSpace(p.Content) == "" {
			t.Errorf("Page %+v is missing ID, title or content", p.ID)
		}
		if seen[p.ID] {
			t.Errorf("Duplicate page ID %q", p.ID)
		}
		seen[p.ID] = true
	}
	// Every tab needs a page to jump to
	for _, ctx := range []Context{ContextList, ContextStack, ContextQueue, ContextTree} {
		found := false
		for _, p := range pages {
			for _, c := range p.Contexts {
				if c == ctx {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("No explainer page for context %s", ctx)
		}
	}
}

func TestCenterExplainer(t *testing.T) {
	m := newTestExplainerModel()
	m.SetSize(60, 20)
	out := m.CenterExplainer(120, 40)
	if lipgloss.Width(out) != 120 {
		t.Errorf("Expected centered output 120 wide, got %d", lipgloss.Width(out))
	}
}

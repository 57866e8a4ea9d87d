package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ExplainerPage is one page of the "How it works" overlay.
type ExplainerPage struct {
	ID       string    // Unique identifier (e.g., "tree-insert")
	Title    string    // Page title displayed in header
	Content  string    // Markdown content
	Section  string    // Parent section for TOC grouping
	Contexts []Context // Tabs this page is about (empty = all)
}

type explainerFocus int

const (
	focusExplainerContent explainerFocus = iota
	focusExplainerTOC
)

const explainerTOCWidth = 24

// ExplainerModel manages the explainer overlay state.
type ExplainerModel struct {
	pages       []ExplainerPage
	currentPage int
	tocVisible  bool
	progress    map[string]bool // Pages that have been shown
	width       int
	height      int
	theme       Theme

	viewport         viewport.Model
	markdownRenderer *MarkdownRenderer

	focus       explainerFocus
	shouldClose bool
	tocCursor   int
}

// NewExplainerModel creates the overlay with the built-in pages.
func NewExplainerModel(theme Theme) ExplainerModel {
	m := ExplainerModel{
		pages:            defaultExplainerPages(),
		progress:         make(map[string]bool),
		width:            80,
		height:           24,
		theme:            theme,
		viewport:         viewport.New(74, 14),
		markdownRenderer: NewMarkdownRendererWithTheme(74, theme),
	}
	m.refresh()
	return m
}

// Init initializes the explainer model.
func (m ExplainerModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input.
func (m ExplainerModel) Update(msg tea.Msg) (ExplainerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "esc", "q", "?":
		m.progress[m.CurrentPageID()] = true
		m.shouldClose = true
		return m, nil

	case "t":
		m.tocVisible = !m.tocVisible
		if m.tocVisible {
			m.focus = focusExplainerTOC
			m.tocCursor = m.currentPage
		} else {
			m.focus = focusExplainerContent
		}
		m.resize()
		return m, nil

	case "tab":
		if m.tocVisible {
			if m.focus == focusExplainerContent {
				m.focus = focusExplainerTOC
				m.tocCursor = m.currentPage
			} else {
				m.focus = focusExplainerContent
			}
		} else {
			m.NextPage()
		}
		return m, nil
	}

	if m.focus == focusExplainerTOC && m.tocVisible {
		return m.handleTOCKeys(keyMsg), nil
	}
	return m.handleContentKeys(keyMsg)
}

func (m ExplainerModel) handleContentKeys(msg tea.KeyMsg) (ExplainerModel, tea.Cmd) {
	switch s := msg.String(); s {
	case "right", "l", "n", " ":
		m.NextPage()
	case "left", "h", "p", "shift+tab":
		m.PrevPage()
	case "g", "home":
		m.viewport.GotoTop()
	case "G", "end":
		m.viewport.GotoBottom()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.JumpToPage(int(s[0] - '1'))
	default:
		// j/k, arrows, ctrl+d/u and pgup/pgdown scroll
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ExplainerModel) handleTOCKeys(msg tea.KeyMsg) ExplainerModel {
	switch msg.String() {
	case "j", "down":
		if m.tocCursor < len(m.pages)-1 {
			m.tocCursor++
		}
	case "k", "up":
		if m.tocCursor > 0 {
			m.tocCursor--
		}
	case "g", "home":
		m.tocCursor = 0
	case "G", "end":
		m.tocCursor = len(m.pages) - 1
	case "enter", " ":
		m.JumpToPage(m.tocCursor)
		m.focus = focusExplainerContent
	case "h", "left":
		m.focus = focusExplainerContent
	}
	return m
}

// View renders the overlay.
func (m ExplainerModel) View() string {
	if len(m.pages) == 0 {
		return m.renderEmptyState()
	}
	page := m.pages[m.currentPage]
	m.progress[page.ID] = true

	r := m.theme.Renderer
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(m.theme.Border).Render(strings.Repeat("─", m.contentWidth()+4)))
	b.WriteString("\n")

	pageTitle := r.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(page.Title)
	if page.Section != "" {
		pageTitle += r.NewStyle().Foreground(m.theme.Subtext).Italic(true).Render(" · " + page.Section)
	}
	b.WriteString(pageTitle)
	b.WriteString("\n\n")

	content := m.renderContent()
	if m.tocVisible {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderTOC(), "  ", content))
	} else {
		b.WriteString(content)
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(1, 2).
		Width(m.width).
		MaxHeight(m.height).
		Render(b.String())
}

// renderHeader renders the title and a page progress bar: [2/7] ███░░░
func (m ExplainerModel) renderHeader() string {
	r := m.theme.Renderer
	total := len(m.pages)
	pageNum := m.currentPage + 1

	progressText := r.NewStyle().
		Foreground(m.theme.Subtext).
		Render(fmt.Sprintf("[%d/%d]", pageNum, total))

	barWidth := 10
	filled := 0
	if total > 0 {
		filled = max(1, pageNum*barWidth/total)
	}
	filled = min(filled, barWidth)
	bar := r.NewStyle().Foreground(m.theme.Success).Render(strings.Repeat("█", filled)) +
		r.NewStyle().Foreground(m.theme.Muted).Render(strings.Repeat("░", barWidth-filled))

	title := r.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("How it works")
	return title + "  " + progressText + " " + bar
}

func (m ExplainerModel) renderContent() string {
	r := m.theme.Renderer
	content := m.viewport.View()
	if !m.viewport.AtTop() {
		content = r.NewStyle().Foreground(m.theme.Muted).Render("↑ more above") + "\n" + content
	}
	if !m.viewport.AtBottom() {
		content += "\n" + r.NewStyle().Foreground(m.theme.Muted).Render("↓ more below")
	}
	return content
}

func (m ExplainerModel) renderTOC() string {
	r := m.theme.Renderer

	borderColor := m.theme.Border
	if m.focus == focusExplainerTOC {
		borderColor = m.theme.Primary
	}
	tocStyle := r.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(explainerTOCWidth - 2)

	headerStyle := r.NewStyle().Bold(true).Foreground(m.theme.Primary)
	sectionStyle := r.NewStyle().Foreground(m.theme.Secondary).Bold(true)
	itemStyle := r.NewStyle().Foreground(m.theme.Subtext)
	selectedStyle := r.NewStyle().Bold(true).Foreground(m.theme.Primary)
	cursorStyle := r.NewStyle().Bold(true).Foreground(m.theme.Info).Background(m.theme.Highlight)
	viewedStyle := r.NewStyle().Foreground(m.theme.Success)

	var b strings.Builder
	b.WriteString(headerStyle.Render("Contents"))
	if m.focus == focusExplainerTOC {
		b.WriteString(r.NewStyle().Foreground(m.theme.Primary).Render(" ●"))
	}
	b.WriteString("\n")

	section := ""
	for i, page := range m.pages {
		if page.Section != section && page.Section != "" {
			section = page.Section
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("▸ " + section))
			b.WriteString("\n")
		}

		prefix := "   "
		style := itemStyle
		if m.focus == focusExplainerTOC && i == m.tocCursor {
			prefix = " → "
			style = cursorStyle
		} else if i == m.currentPage {
			prefix = " ▶ "
			style = selectedStyle
		}

		title := page.Title
		if rs := []rune(title); len(rs) > 14 {
			title = string(rs[:12]) + "…"
		}

		viewed := ""
		if m.progress[page.ID] {
			viewed = viewedStyle.Render(" ✓")
		}
		b.WriteString(style.Render(prefix+title) + viewed)
		b.WriteString("\n")
	}
	return tocStyle.Render(b.String())
}

func (m ExplainerModel) renderFooter() string {
	r := m.theme.Renderer
	keyStyle := r.NewStyle().Bold(true).Foreground(m.theme.Primary)
	descStyle := r.NewStyle().Foreground(m.theme.Subtext)

	var hints []string
	if m.focus == focusExplainerTOC && m.tocVisible {
		hints = []string{
			keyStyle.Render("j/k") + descStyle.Render(" select"),
			keyStyle.Render("Enter") + descStyle.Render(" go to page"),
			keyStyle.Render("Tab") + descStyle.Render(" back to content"),
			keyStyle.Render("t") + descStyle.Render(" hide TOC"),
			keyStyle.Render("q") + descStyle.Render(" close"),
		}
	} else {
		hints = []string{
			keyStyle.Render("←/→/Space") + descStyle.Render(" pages"),
			keyStyle.Render("j/k") + descStyle.Render(" scroll"),
			keyStyle.Render("t") + descStyle.Render(" TOC"),
			keyStyle.Render("q") + descStyle.Render(" close"),
		}
	}
	return strings.Join(hints, r.NewStyle().Foreground(m.theme.Muted).Render(" │ "))
}

func (m ExplainerModel) renderEmptyState() string {
	return m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Primary).
		Padding(2, 4).
		Width(m.width).
		Render("Nothing to explain here.")
}

// NextPage advances to the next page.
func (m *ExplainerModel) NextPage() {
	if m.currentPage < len(m.pages)-1 {
		m.currentPage++
		m.refresh()
	}
}

// PrevPage goes to the previous page.
func (m *ExplainerModel) PrevPage() {
	if m.currentPage > 0 {
		m.currentPage--
		m.refresh()
	}
}

// JumpToPage jumps to a page index. Out of range is ignored.
func (m *ExplainerModel) JumpToPage(index int) {
	if index >= 0 && index < len(m.pages) {
		m.currentPage = index
		m.refresh()
	}
}

// JumpToContext opens the first page about ctx, keeping the current page
// when none matches.
func (m *ExplainerModel) JumpToContext(ctx Context) {
	for i, page := range m.pages {
		for _, c := range page.Contexts {
			if c == ctx {
				m.JumpToPage(i)
				return
			}
		}
	}
}

// SetSize sets the overlay dimensions and rewraps the markdown.
func (m *ExplainerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.resize()
}

func (m ExplainerModel) contentWidth() int {
	w := m.width - 6
	if m.tocVisible {
		w -= explainerTOCWidth
	}
	return max(w, 30)
}

func (m *ExplainerModel) resize() {
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = max(m.height-12, 5)
	if m.markdownRenderer != nil {
		m.markdownRenderer.SetWidthWithTheme(m.contentWidth(), m.theme)
	}
	m.refresh()
}

// refresh renders the current page into the viewport and scrolls to top.
func (m *ExplainerModel) refresh() {
	if len(m.pages) == 0 {
		m.viewport.SetContent("")
		return
	}
	content := m.pages[m.currentPage].Content
	if m.markdownRenderer != nil {
		if rendered, err := m.markdownRenderer.Render(content); err == nil {
			content = strings.TrimSpace(rendered)
		}
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// MarkViewed marks a page as viewed.
func (m *ExplainerModel) MarkViewed(pageID string) {
	m.progress[pageID] = true
}

// CurrentPageID returns the ID of the current page.
func (m ExplainerModel) CurrentPageID() string {
	if m.currentPage >= 0 && m.currentPage < len(m.pages) {
		return m.pages[m.currentPage].ID
	}
	return ""
}

// IsComplete returns true if every page has been viewed.
func (m ExplainerModel) IsComplete() bool {
	for _, p := range m.pages {
		if !m.progress[p.ID] {
			return false
		}
	}
	return true
}

// ShouldClose reports whether the user asked to close the overlay.
func (m ExplainerModel) ShouldClose() bool {
	return m.shouldClose
}

// ResetClose clears the close request.
func (m *ExplainerModel) ResetClose() {
	m.shouldClose = false
}

// CenterExplainer places the overlay in the middle of the terminal.
func (m ExplainerModel) CenterExplainer(termWidth, termHeight int) string {
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, m.View())
}

func defaultExplainerPages() []ExplainerPage {
	return []ExplainerPage{
		{
			ID:      "overview",
			Title:   "Overview",
			Section: "Getting Started",
			Content: `# Understanding Data Structures

Each tab shows one data structure. The keys in the footer run its
operations and the drawing updates as they happen.

- **Tab** / **Shift+Tab** switch between structures
- **?** opens this page, **` + "`" + `** shows the keys for the current tab
- **q** quits`,
		},
		{
			ID:       "linked-list",
			Title:    "Linked List",
			Section:  "Linear",
			Contexts: []Context{ContextList},
			Content: `# Linked List

- Nodes are connected sequentially
- Each node points to the next node
- Efficient for insertions and deletions at the head

Here every node is a log entry. **a** inserts a fresh entry at the head,
**d** deletes the head, **v** reverses the pointers and **s** sorts the
entries by timestamp, oldest first.`,
		},
		{
			ID:       "stack",
			Title:    "Stack",
			Section:  "Linear",
			Contexts: []Context{ContextStack},
			Content: `# Stack

- Last-In-First-Out (LIFO) structure
- Push adds to the top, Pop removes from the top
- Used for function calls and undo operations

**a** pushes ` + "`Data N`" + ` and **d** pops. Popping an empty stack does
nothing.`,
		},
		{
			ID:       "queue",
			Title:    "Queue",
			Section:  "Linear",
			Contexts: []Context{ContextQueue},
			Content: `# Queue

- First-In-First-Out (FIFO) structure
- Enqueue adds at the back, Dequeue removes from the front
- Used for scheduling and buffering

**a** enqueues ` + "`Item N`" + ` and **d** dequeues. Dequeuing an empty queue
does nothing.`,
		},
		{
			ID:       "tree-insert",
			Title:    "Tree: Insert",
			Section:  "Binary Tree",
			Contexts: []Context{ContextTree},
			Content: `# Filling a complete binary tree

Insert walks the tree level by level from the root and puts the new value
in the **first free child slot** it finds. The values are not compared, so
this is not a search tree: every level fills left to right before the next
one starts.

| Slot | Parent | Side |
|------|--------|------|
| 0    | none   | root |
| 1    | 0      | left |
| 2    | 0      | right|
| 2i+1 | i      | left |
| 2i+2 | i      | right|

**x** removes the most recently filled slot, which undoes the last insert.
The root stays; **c** clears the whole tree.`,
		},
		{
			ID:       "tree-traversal",
			Title:    "Tree: Traversals",
			Section:  "Binary Tree",
			Contexts: []Context{ContextTree, ContextOrderPicker},
			Content: `# Depth-first traversals

The three orders differ only in when a node is visited relative to its
subtrees:

- **Preorder** (p): node, left, right
- **Inorder** (i): left, node, right
- **Postorder** (o): left, right, node

For the tree built from 1, 2, 3:

` + "```text" + `
  1
 / \
2   3
` + "```" + `

preorder is 1 → 2 → 3, inorder is 2 → 1 → 3 and postorder is 2 → 3 → 1.
Each visited node lights up in turn.`,
		},
		{
			ID:       "tree-layout",
			Title:    "Tree: Layout",
			Section:  "Binary Tree",
			Contexts: []Context{ContextTree},
			Content: `# Where nodes are drawn

A node's column is its inorder position times a fixed step, so each node
sits one step right of the node visited before it and every left subtree
stays left of its parent. Rows follow depth. The whole drawing is then
shifted so it is centered in the panel, and it recenters when the terminal
is resized.

**r** clears the tree and grows a random one, one node at a time. Starting
any other operation stops a running animation.`,
		},
	}
}

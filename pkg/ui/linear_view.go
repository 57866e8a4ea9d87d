package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/dsv/pkg/anim"
	"github.com/vanderheijden86/dsv/pkg/lists"
	"github.com/vanderheijden86/dsv/pkg/model"
)

// LinearKind selects which structure a LinearModel shows.
type LinearKind int

const (
	KindLinkedList LinearKind = iota
	KindStack
	KindQueue
)

func (k LinearKind) sequencerID() string {
	switch k {
	case KindStack:
		return "stack"
	case KindQueue:
		return "queue"
	}
	return "list"
}

// LinearModel is the linked list, stack or queue tab. Items are drawn as
// bordered cards and the last operation flashes for the configured period.
type LinearModel struct {
	kind   LinearKind
	theme  Theme
	timing anim.Timing
	help   help.Model

	list  lists.LinkedList
	stack lists.Stack
	queue lists.Queue

	seq    anim.Sequencer
	status string
	// Head deletion waiting for the highlight lead-in to finish.
	pendingDelete bool

	width  int
	height int
	now    func() time.Time
}

// NewLinearModel creates a tab of the given kind with its seed items.
func NewLinearModel(kind LinearKind, timing anim.Timing, theme Theme) LinearModel {
	m := LinearModel{
		kind:   kind,
		theme:  theme,
		timing: timing,
		help:   help.New(),
		seq:    anim.Sequencer{ID: kind.sequencerID()},
		now:    time.Now,
	}
	switch kind {
	case KindLinkedList:
		m.list = lists.NewLinkedList(lists.SeedEntries()...)
	case KindStack:
		m.stack = lists.SeedStack()
	case KindQueue:
		m.queue = lists.SeedQueue()
	}
	return m
}

// SetSize updates the panel dimensions.
func (m *LinearModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// SetTiming applies a reloaded flash period.
func (m *LinearModel) SetTiming(t anim.Timing) { m.timing = t }

// Len returns the number of items shown.
func (m LinearModel) Len() int {
	switch m.kind {
	case KindStack:
		return m.stack.Len()
	case KindQueue:
		return m.queue.Len()
	}
	return m.list.Len()
}

// Labels returns the items in display order: head first, top first or
// front first.
func (m LinearModel) Labels() []string {
	switch m.kind {
	case KindStack:
		return m.stack.Items()
	case KindQueue:
		return m.queue.Items()
	}
	entries := m.list.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}

// Flashed returns the flashed item index or anim.NoHighlight.
func (m LinearModel) Flashed() int { return m.seq.Highlight() }

// Operation returns the operation being flashed.
func (m LinearModel) Operation() model.Operation { return m.seq.Operation() }

// Update handles keys and flash ticks.
func (m LinearModel) Update(msg tea.Msg) (LinearModel, tea.Cmd) {
	switch msg := msg.(type) {
	case anim.StepMsg:
		step, ok, cmd := m.seq.Handle(msg)
		if ok && step.Commit {
			m.commitDelete()
		}
		return m, cmd
	case tea.KeyMsg:
		m.commitDelete()
		switch {
		case key.Matches(msg, linearKeys.Add):
			return m.add()
		case key.Matches(msg, linearKeys.Remove):
			return m.remove()
		case m.kind == KindLinkedList && key.Matches(msg, linearKeys.Reverse):
			m.list = m.list.Reverse()
			return m.flash(model.OpReverse, anim.NoHighlight, "Reversed")
		case m.kind == KindLinkedList && key.Matches(msg, linearKeys.Sort):
			m.list = m.list.SortByTimestamp()
			return m.flash(model.OpSort, anim.NoHighlight, "Sorted by timestamp")
		}
	}
	return m, nil
}

func (m LinearModel) add() (LinearModel, tea.Cmd) {
	switch m.kind {
	case KindStack:
		m.stack = m.stack.Push()
		top, _ := m.stack.Peek()
		return m.flash(model.OpInsert, 0, "Pushed "+top)
	case KindQueue:
		m.queue = m.queue.Enqueue()
		items := m.queue.Items()
		return m.flash(model.OpInsert, len(items)-1, "Enqueued "+items[len(items)-1])
	}
	m.list = m.list.InsertAtBeginning(m.now())
	head, _ := m.list.Head()
	return m.flash(model.OpInsert, 0, fmt.Sprintf("Inserted #%d at the head", head.ID))
}

func (m LinearModel) remove() (LinearModel, tea.Cmd) {
	switch m.kind {
	case KindStack:
		top, ok := m.stack.Peek()
		if !ok {
			m.status = "Stack is empty"
			return m, nil
		}
		m.stack = m.stack.Pop()
		return m.flash(model.OpRemove, anim.NoHighlight, "Popped "+top)
	case KindQueue:
		front, ok := m.queue.Front()
		if !ok {
			m.status = "Queue is empty"
			return m, nil
		}
		m.queue = m.queue.Dequeue()
		return m.flash(model.OpRemove, anim.NoHighlight, "Dequeued "+front)
	}
	head, ok := m.list.Head()
	if !ok {
		m.status = "List is empty"
		return m, nil
	}
	m.status = fmt.Sprintf("Deleting #%d", head.ID)
	m.pendingDelete = true
	_, cmd := m.seq.Start(model.OpRemove, m.timing.DeleteFirstSteps())
	return m, cmd
}

// commitDelete removes the head once its highlight has shown. Any key
// commits a pending delete before it is handled.
func (m *LinearModel) commitDelete() {
	if !m.pendingDelete {
		return
	}
	m.pendingDelete = false
	if head, ok := m.list.Head(); ok {
		m.list = m.list.DeleteFirst()
		m.status = fmt.Sprintf("Deleted #%d", head.ID)
	}
}

func (m LinearModel) flash(op model.Operation, index int, status string) (LinearModel, tea.Cmd) {
	m.status = status
	_, cmd := m.seq.Start(op, m.timing.FlashSteps(index))
	return m, cmd
}

func (m LinearModel) title() (string, string) {
	switch m.kind {
	case KindStack:
		return "Stack", "Last in, first out. The top is drawn first."
	case KindQueue:
		return "Queue", "First in, first out. Items leave from the front."
	}
	return "Linked List", "A chain of log entries, each pointing to the next."
}

func (m LinearModel) bindings() []key.Binding {
	add, remove := linearKeys.Add, linearKeys.Remove
	switch m.kind {
	case KindStack:
		add.SetHelp("a", "push")
		remove.SetHelp("d", "pop")
		return []key.Binding{add, remove}
	case KindQueue:
		add.SetHelp("a", "enqueue")
		remove.SetHelp("d", "dequeue")
		return []key.Binding{add, remove}
	}
	add.SetHelp("a", "insert head")
	remove.SetHelp("d", "delete head")
	return []key.Binding{add, remove, linearKeys.Reverse, linearKeys.Sort}
}

// View renders the tab body.
func (m LinearModel) View() string {
	t := m.theme
	title, desc := m.title()

	var sb strings.Builder
	sb.WriteString(t.Header.Render(title))
	sb.WriteString("  ")
	sb.WriteString(t.MutedText.Render(desc))
	sb.WriteString("\n\n")

	if op := m.seq.Operation(); op.Busy() {
		sb.WriteString(t.KeyHint.Render(strings.ToUpper(string(op))))
		sb.WriteString("  ")
	}
	sb.WriteString(t.MutedText.Render(fmt.Sprintf("%d items", m.Len())))
	sb.WriteString("\n\n")

	switch m.kind {
	case KindLinkedList:
		sb.WriteString(m.renderLinkedList())
	case KindStack:
		sb.WriteString(m.renderStack())
	case KindQueue:
		sb.WriteString(m.renderQueue())
	}
	sb.WriteString("\n\n")

	if m.status != "" {
		sb.WriteString(t.MutedText.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.ShortHelpView(m.bindings()))
	return sb.String()
}

func (m LinearModel) card(i int, content string) string {
	if i == m.seq.Highlight() {
		return m.theme.CardActive.Render(content)
	}
	return m.theme.Card.Render(content)
}

func (m LinearModel) renderLinkedList() string {
	entries := m.list.Entries()
	if len(entries) == 0 {
		return m.theme.MutedText.Render("head → ∅")
	}
	t := m.theme
	rows := make([]string, 0, 2*len(entries)+1)
	for i, e := range entries {
		sev := t.Renderer.NewStyle().Foreground(t.SeverityColor(string(e.Severity))).Bold(true)
		content := fmt.Sprintf("#%d %s %s\n%s",
			e.ID,
			sev.Render(strings.ToUpper(string(e.Severity))),
			e.Message,
			t.MutedText.Render(e.Timestamp.Format("2006-01-02 15:04:05")),
		)
		prefix := "      "
		if i == 0 {
			prefix = "head →"
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, t.MutedText.Render(prefix)+" ", m.card(i, content)))
		rows = append(rows, t.Edge.Render("         ↓"))
	}
	rows = append(rows, t.MutedText.Render("         ∅"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m LinearModel) renderStack() string {
	items := m.stack.Items()
	if len(items) == 0 {
		return m.theme.MutedText.Render("(empty stack)")
	}
	rows := make([]string, len(items))
	for i, label := range items {
		marker := ""
		if i == 0 {
			marker = m.theme.MutedText.Render(" ← top")
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Center, m.card(i, fmt.Sprintf("%-9s", label)), marker)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m LinearModel) renderQueue() string {
	items := m.queue.Items()
	if len(items) == 0 {
		return m.theme.MutedText.Render("(empty queue)")
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	front := m.theme.MutedText.Render("front → ")
	back := m.theme.MutedText.Render(" ← back")

	// Wrap cards onto several rows when they do not fit the panel.
	var rows []string
	var row []string
	rowWidth := lipgloss.Width(front)
	for i, label := range items {
		c := m.card(i, label)
		if len(row) > 0 && rowWidth+lipgloss.Width(c) > width-lipgloss.Width(back) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, row...))
			row = nil
			rowWidth = 0
		}
		if len(rows) == 0 && len(row) == 0 {
			row = append(row, front)
		}
		row = append(row, c)
		rowWidth += lipgloss.Width(c)
	}
	row = append(row, back)
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, row...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

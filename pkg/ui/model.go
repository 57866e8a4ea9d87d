package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/dsv/pkg/anim"
	"github.com/vanderheijden86/dsv/pkg/config"
	"github.com/vanderheijden86/dsv/pkg/tree"
)

// Tab identifies one of the four structure panels.
type Tab int

const (
	TabList Tab = iota
	TabStack
	TabQueue
	TabTree
)

var tabOrder = []Tab{TabList, TabStack, TabQueue, TabTree}

// Title returns the label shown in the tab bar.
func (t Tab) Title() string {
	switch t {
	case TabList:
		return "Linked List"
	case TabStack:
		return "Stack"
	case TabQueue:
		return "Queue"
	case TabTree:
		return "Binary Tree"
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

// Context returns the help context for the tab.
func (t Tab) Context() Context {
	switch t {
	case TabList:
		return ContextList
	case TabStack:
		return ContextStack
	case TabQueue:
		return ContextQueue
	}
	return ContextTree
}

// ParseTab maps a config.Tabs name to a Tab.
func ParseTab(s string) (Tab, bool) {
	for i, name := range config.Tabs {
		if strings.EqualFold(s, name) {
			return tabOrder[i], true
		}
	}
	return TabTree, false
}

// Model is the root program: a tab bar over the four structures plus the
// help and explainer overlays.
type Model struct {
	cfg        config.Config
	configPath string
	theme      Theme
	help       help.Model

	list  LinearModel
	stack LinearModel
	queue LinearModel
	tree  TreeModel

	activeTab     Tab
	showHelp      bool
	showExplainer bool
	explainer     ExplainerModel

	status    string
	statusErr bool

	ready  bool
	width  int
	height int
}

// NewModel builds the program state from cfg.
func NewModel(cfg config.Config, theme Theme) Model {
	timing := cfg.AnimTiming()
	active, _ := ParseTab(cfg.UI.DefaultTab)
	return Model{
		cfg:       cfg,
		theme:     theme,
		help:      help.New(),
		list:      NewLinearModel(KindLinkedList, timing, theme),
		stack:     NewLinearModel(KindStack, timing, theme),
		queue:     NewLinearModel(KindQueue, timing, theme),
		tree:      NewTreeModel(cfg, theme),
		activeTab: active,
		explainer: NewExplainerModel(theme),
	}
}

// SetTree seeds the tree tab, e.g. from --values.
func (m *Model) SetTree(t tree.Tree) { m.tree.SetTree(t) }

// SetConfigPath records where the configuration came from for the footer.
func (m *Model) SetConfigPath(path string) { m.configPath = path }

// ActiveTab returns the tab being shown.
func (m Model) ActiveTab() Tab { return m.activeTab }

// TreeTab returns the tree panel state.
func (m Model) TreeTab() TreeModel { return m.tree }

// Linear returns the list, stack or queue panel state.
func (m Model) Linear(t Tab) LinearModel {
	switch t {
	case TabStack:
		return m.stack
	case TabQueue:
		return m.queue
	}
	return m.list
}

// Status returns the footer status line.
func (m Model) Status() string { return m.status }

// ShowingHelp reports whether the quick reference is open.
func (m Model) ShowingHelp() bool { return m.showHelp }

// ShowingExplainer reports whether the explainer overlay is open.
func (m Model) ShowingExplainer() bool { return m.showExplainer }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		bodyHeight := max(msg.Height-4, 1) // tab bar, rule, footer
		m.list.SetSize(msg.Width, bodyHeight)
		m.stack.SetSize(msg.Width, bodyHeight)
		m.queue.SetSize(msg.Width, bodyHeight)
		m.tree.SetSize(msg.Width, bodyHeight)
		m.help.Width = msg.Width
		m.explainer.SetSize(min(msg.Width-4, 100), msg.Height-2)
		return m, nil

	case anim.StepMsg:
		// Ticks go back to the sequencer that scheduled them, even when the
		// tab is not visible.
		switch msg.ID {
		case treeSequencerID:
			m.tree, cmd = m.tree.Update(msg)
		case KindLinkedList.sequencerID():
			m.list, cmd = m.list.Update(msg)
		case KindStack.sequencerID():
			m.stack, cmd = m.stack.Update(msg)
		case KindQueue.sequencerID():
			m.queue, cmd = m.queue.Update(msg)
		}
		return m, cmd

	case ExportDoneMsg:
		m.tree, cmd = m.tree.Update(msg)
		return m, cmd

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		m.setStatus(fmt.Sprintf("Config reloaded from %s", msg.Path))
		return m, nil

	case ConfigErrorMsg:
		m.setError(fmt.Sprintf("Config not applied: %v", msg.Err))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blinks and anything else belong to the value field.
	m.tree, cmd = m.tree.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showExplainer {
		var cmd tea.Cmd
		m.explainer, cmd = m.explainer.Update(msg)
		if m.explainer.ShouldClose() {
			m.explainer.ResetClose()
			m.showExplainer = false
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key dismisses the quick reference; ? goes on to the explainer.
		m.showHelp = false
		if key.Matches(msg, globalKeys.Explainer) {
			m.openExplainer()
		}
		return m, nil
	}

	// The picker owns esc and navigation while it is open.
	if m.activeTab == TabTree && m.tree.PickerOpen() {
		var cmd tea.Cmd
		m.tree, cmd = m.tree.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, globalKeys.Explainer):
		m.openExplainer()
		return m, nil
	case key.Matches(msg, globalKeys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, globalKeys.NextTab):
		m.activeTab = tabOrder[(int(m.activeTab)+1)%len(tabOrder)]
		return m, nil
	case key.Matches(msg, globalKeys.PrevTab):
		m.activeTab = tabOrder[(int(m.activeTab)+len(tabOrder)-1)%len(tabOrder)]
		return m, nil
	case key.Matches(msg, globalKeys.Close):
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabList:
		m.list, cmd = m.list.Update(msg)
	case TabStack:
		m.stack, cmd = m.stack.Update(msg)
	case TabQueue:
		m.queue, cmd = m.queue.Update(msg)
	case TabTree:
		m.tree, cmd = m.tree.Update(msg)
	}
	return m, cmd
}

func (m *Model) openExplainer() {
	m.explainer.JumpToContext(m.activeTab.Context())
	m.explainer.MarkViewed(m.explainer.CurrentPageID())
	m.showExplainer = true
}

func (m *Model) applyConfig(cfg config.Config) {
	m.cfg = cfg
	timing := cfg.AnimTiming()
	m.list.SetTiming(timing)
	m.stack.SetTiming(timing)
	m.queue.SetTiming(timing)
	m.tree.SetConfig(cfg)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showExplainer {
		return m.explainer.CenterExplainer(m.width, m.height)
	}
	if m.showHelp {
		return RenderContextHelp(m.baseContext(), m.theme, m.width, m.height)
	}

	var body string
	switch m.activeTab {
	case TabList:
		body = m.list.View()
	case TabStack:
		body = m.stack.View()
	case TabQueue:
		body = m.queue.View()
	case TabTree:
		body = m.tree.View()
	}
	body = lipgloss.NewStyle().Height(max(m.height-4, 1)).MaxHeight(max(m.height-4, 1)).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabBar(), body, m.renderFooter())
}

func (m Model) renderTabBar() string {
	t := m.theme
	parts := make([]string, 0, len(tabOrder)+1)
	parts = append(parts, t.Header.Render("dsv"))
	for _, tab := range tabOrder {
		if tab == m.activeTab {
			parts = append(parts, t.Selected.Render(" "+tab.Title()+" "))
		} else {
			parts = append(parts, t.MutedText.Render(" "+tab.Title()+" "))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	rule := t.Renderer.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", max(m.width, 1)))
	return bar + "\n" + rule
}

func (m Model) renderFooter() string {
	t := m.theme
	keys := m.help.ShortHelpView([]key.Binding{
		globalKeys.NextTab, globalKeys.PrevTab, globalKeys.Explainer, globalKeys.Help, globalKeys.Quit,
	})
	left := ""
	if m.status != "" {
		if m.statusErr {
			left = t.ErrorText.Render(m.status)
		} else {
			left = t.MutedText.Render(m.status)
		}
	} else if m.configPath != "" {
		left = t.MutedText.Render("config: " + m.configPath)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(keys)
	if gap < 1 {
		return keys
	}
	return left + strings.Repeat(" ", gap) + keys
}

package ui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/dsv/pkg/anim"
	"github.com/vanderheijden86/dsv/pkg/config"
	"github.com/vanderheijden86/dsv/pkg/export"
	"github.com/vanderheijden86/dsv/pkg/layout"
	"github.com/vanderheijden86/dsv/pkg/model"
	"github.com/vanderheijden86/dsv/pkg/tree"
)

// treeSequencerID routes tree animation ticks.
const treeSequencerID = "tree"

// ExportDoneMsg reports the outcome of an export started from the tree tab.
type ExportDoneMsg struct {
	Results []export.Result
	Err     error
}

// TreeModel is the binary tree tab: a value input, the canvas and the
// traversal readout. It owns the tree value; every operation replaces it.
type TreeModel struct {
	cfg    config.Config
	timing anim.Timing
	theme  Theme
	help   help.Model

	tree  tree.Tree
	seq   anim.Sequencer
	input textinput.Model
	rng   *rand.Rand

	// Last traversal, shown until the tree is cleared.
	readout      []tree.Visit
	readoutOrder model.Order
	order        model.Order

	picker     OrderPickerModel
	showPicker bool

	status    string
	statusErr bool
	exporting bool

	width  int
	height int

	// Swappable for tests.
	copyText func(string) error
	now      func() time.Time
}

// NewTreeModel creates the tree tab with cfg's timings and layout steps.
func NewTreeModel(cfg config.Config, theme Theme) TreeModel {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.Prompt = "Value: "
	ti.CharLimit = 6
	ti.Width = 8
	ti.Focus()

	seed := cfg.Random.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return TreeModel{
		cfg:      cfg,
		timing:   cfg.AnimTiming(),
		theme:    theme,
		help:     help.New(),
		seq:      anim.Sequencer{ID: treeSequencerID},
		input:    ti,
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		order:    cfg.Order(),
		copyText: clipboard.WriteAll,
		now:      time.Now,
	}
}

// SetTree replaces the tree, cancelling any running animation.
func (m *TreeModel) SetTree(t tree.Tree) {
	m.seq.Cancel()
	m.tree = t
}

// Tree returns the current tree value.
func (m TreeModel) Tree() tree.Tree { return m.tree }

// Highlight returns the highlighted slot or anim.NoHighlight.
func (m TreeModel) Highlight() int { return m.seq.Highlight() }

// Operation returns the running operation.
func (m TreeModel) Operation() model.Operation { return m.seq.Operation() }

// Readout returns the last traversal.
func (m TreeModel) Readout() []tree.Visit { return m.readout }

// PickerOpen reports whether the order picker is showing.
func (m TreeModel) PickerOpen() bool { return m.showPicker }

// Status returns the last status line.
func (m TreeModel) Status() string { return m.status }

// SetSize updates the panel dimensions. The canvas recenters on the next View.
func (m *TreeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.picker.SetSize(width, height)
	m.help.Width = width
}

// SetConfig applies a reloaded configuration. A running animation keeps the
// cadence it started with.
func (m *TreeModel) SetConfig(cfg config.Config) {
	m.cfg = cfg
	m.timing = cfg.AnimTiming()
}

// Update handles keys and sequencer ticks for the tree tab.
func (m TreeModel) Update(msg tea.Msg) (TreeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case anim.StepMsg:
		step, ok, cmd := m.seq.Handle(msg)
		if !ok {
			return m, nil
		}
		m.applyStep(step)
		return m, cmd

	case ExportDoneMsg:
		m.exporting = false
		if msg.Err != nil {
			m.setError(fmt.Sprintf("Export failed: %v", msg.Err))
			return m, nil
		}
		paths := make([]string, 0, len(msg.Results))
		for _, r := range msg.Results {
			paths = append(paths, filepath.Base(r.Path))
		}
		dir := ""
		if len(msg.Results) > 0 {
			dir = filepath.Dir(msg.Results[0].Path)
		}
		m.setStatus(fmt.Sprintf("Exported %s to %s", strings.Join(paths, ", "), dir))
		return m, nil

	case tea.KeyMsg:
		if m.showPicker {
			return m.updatePicker(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TreeModel) handleKey(msg tea.KeyMsg) (TreeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, treeKeys.Insert):
		return m.insertFromInput()
	case key.Matches(msg, treeKeys.Remove):
		return m.removeLast()
	case key.Matches(msg, treeKeys.Clear):
		return m.clear()
	case key.Matches(msg, treeKeys.Random):
		return m.random()
	case key.Matches(msg, treeKeys.Preorder):
		return m.traverse(model.OrderPre)
	case key.Matches(msg, treeKeys.Inorder):
		return m.traverse(model.OrderIn)
	case key.Matches(msg, treeKeys.Postorder):
		return m.traverse(model.OrderPost)
	case key.Matches(msg, treeKeys.Pick):
		m.picker = NewOrderPickerModel(m.order, m.theme)
		m.picker.SetSize(m.width, m.height)
		m.showPicker = true
		return m, nil
	case key.Matches(msg, treeKeys.Copy):
		m.copyReadout()
		return m, nil
	case key.Matches(msg, treeKeys.Export):
		return m.startExport()
	}

	if isValueKey(msg) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// isValueKey reports whether msg edits the value field: digits, a minus
// sign, or cursor and deletion keys.
func isValueKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '-' {
				return false
			}
		}
		return len(msg.Runes) > 0
	}
	return false
}

func (m TreeModel) updatePicker(msg tea.KeyMsg) (TreeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, pickerKeys.Up):
		m.picker.MoveUp()
	case key.Matches(msg, pickerKeys.Down):
		m.picker.MoveDown()
	case key.Matches(msg, pickerKeys.Cancel):
		m.showPicker = false
	case key.Matches(msg, pickerKeys.Run):
		m.showPicker = false
		return m.traverse(m.picker.SelectedOrder())
	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.picker.Select(int(s[0] - '1'))
		}
	}
	return m, nil
}

// insertFromInput parses the field and inserts. Empty or non-numeric input
// does nothing.
func (m TreeModel) insertFromInput() (TreeModel, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return m, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return m, nil
	}
	m.input.SetValue("")
	return m.Insert(v)
}

// Insert adds v at the next free slot and highlights it.
func (m TreeModel) Insert(v int) (TreeModel, tea.Cmd) {
	slot := m.tree.Len()
	step, cmd := m.seq.Start(model.OpInsert, m.timing.InsertSteps(v, slot))
	m.applyStep(step)
	m.setStatus(fmt.Sprintf("Inserted %d at slot %d", v, slot))
	return m, cmd
}

func (m TreeModel) removeLast() (TreeModel, tea.Cmd) {
	if m.tree.Empty() {
		return m, nil
	}
	before := m.tree.Len()
	m.tree = m.tree.RemoveLast()
	if m.tree.Len() == before {
		m.setStatus("The root stays; press c to clear")
	} else {
		m.setStatus(fmt.Sprintf("Removed slot %d", before-1))
	}
	step, cmd := m.seq.Start(model.OpRemove, m.timing.RemoveSteps())
	m.applyStep(step)
	return m, cmd
}

func (m TreeModel) clear() (TreeModel, tea.Cmd) {
	m.tree = m.tree.Clear()
	m.readout = nil
	m.readoutOrder = ""
	step, cmd := m.seq.Start(model.OpClear, m.timing.ClearSteps())
	m.applyStep(step)
	m.setStatus("Cleared")
	return m, cmd
}

func (m TreeModel) random() (TreeModel, tea.Cmd) {
	count := m.cfg.Random.Count
	if count <= 0 {
		count = 7
	}
	values := tree.RandomValues(count, m.cfg.Random.Max, m.rng)
	m.tree = m.tree.Clear()
	step, cmd := m.seq.Start(model.OpRandom, m.timing.RandomSteps(values))
	m.applyStep(step)
	m.setStatus(fmt.Sprintf("Building %d random nodes", count))
	return m, cmd
}

func (m TreeModel) traverse(order model.Order) (TreeModel, tea.Cmd) {
	m.order = order
	if m.tree.Empty() {
		return m, nil
	}
	visits := m.tree.Traverse(order)
	m.readout = visits
	m.readoutOrder = order
	step, cmd := m.seq.Start(model.OpTraverse, m.timing.TraversalSteps(visits))
	m.applyStep(step)
	m.setStatus(order.Label())
	return m, cmd
}

func (m *TreeModel) applyStep(step anim.Step) {
	if step.Insert != nil {
		m.tree = m.tree.Insert(*step.Insert)
	}
}

func (m *TreeModel) copyReadout() {
	if len(m.readout) == 0 {
		m.setError("Nothing to copy: run a traversal first")
		return
	}
	text := readoutText(m.readout)
	if err := m.copyText(text); err != nil {
		m.setError(fmt.Sprintf("Clipboard error: %v", err))
		return
	}
	m.setStatus("Copied: " + text)
}

// startExport writes the tree in every configured format off the message
// loop and reports back with ExportDoneMsg.
func (m TreeModel) startExport() (TreeModel, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	if m.tree.Empty() {
		m.setError("Nothing to export: the tree is empty")
		return m, nil
	}
	formats := make([]export.Format, 0, len(m.cfg.Export.Formats))
	for _, f := range m.cfg.Export.Formats {
		pf, err := export.ParseFormat(f)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		formats = append(formats, pf)
	}
	if len(formats) == 0 {
		formats = []export.Format{export.FormatSVG, export.FormatJSON}
	}
	dir := exportDir(m.cfg)
	now := m.now()
	opts := export.SnapshotOptions{
		Path:      "tree-" + now.Format("20060102-150405"),
		Title:     "Binary Tree",
		Tree:      m.tree,
		Layout:    m.cfg.LayoutOptions(m.cfg.Export.ContainerWidth),
		Order:     m.order,
		Highlight: anim.NoHighlight,
		Now:       now,
	}
	m.exporting = true
	m.setStatus("Exporting...")
	return m, func() tea.Msg {
		results, err := export.ExportAll(context.Background(), opts, dir, formats)
		return ExportDoneMsg{Results: results, Err: err}
	}
}

func exportDir(cfg config.Config) string {
	if cfg.Export.Dir != "" {
		return cfg.Export.Dir
	}
	if state := config.StateDir(); state != "" {
		return filepath.Join(state, "exports")
	}
	return "."
}

func (m *TreeModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *TreeModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

func readoutText(visits []tree.Visit) string {
	parts := make([]string, len(visits))
	for i, v := range visits {
		parts[i] = strconv.Itoa(v.Value)
	}
	return strings.Join(parts, " → ")
}

// Canvas draws the tree centered in the panel width with the highlighted
// node styled.
func (m TreeModel) Canvas() string {
	if m.tree.Empty() {
		return m.theme.MutedText.Render("(empty tree: type a value and press enter, or r for random)")
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	grid := layout.Rasterize(layout.Compute(m.tree, m.cfg.CellOptions(width)))
	hl := m.seq.Highlight()
	return grid.Render(func(slot int, text string) string {
		if slot == hl {
			return m.theme.NodeActive.Render(text)
		}
		return m.theme.NodeText.Render(text)
	})
}

// View renders the tab body.
func (m TreeModel) View() string {
	if m.showPicker {
		return m.picker.View()
	}
	t := m.theme

	var sb strings.Builder
	sb.WriteString(t.Header.Render("Binary Tree Visualizer"))
	sb.WriteString("  ")
	sb.WriteString(t.MutedText.Render("Each node has at most two children."))
	sb.WriteString("\n\n")

	sb.WriteString(m.input.View())
	sb.WriteString("   ")
	sb.WriteString(m.operationBadge())
	sb.WriteString("\n")

	if len(m.readout) > 0 {
		label := "Traversal: "
		if m.readoutOrder != "" {
			label = fmt.Sprintf("Traversal (%s): ", m.readoutOrder.Label())
		}
		line := label + readoutText(m.readout)
		if m.width > 0 {
			line = runewidth.Truncate(line, m.width, "…")
		}
		sb.WriteString(t.Base.Render(line))
	}
	sb.WriteString("\n\n")

	canvas := m.Canvas()
	canvasHeight := m.height - 8
	if canvasHeight > 0 {
		canvas = lipgloss.NewStyle().MaxHeight(canvasHeight).Render(canvas)
	}
	sb.WriteString(canvas)
	sb.WriteString("\n\n")

	if m.status != "" {
		if m.statusErr {
			sb.WriteString(t.ErrorText.Render(m.status))
		} else {
			sb.WriteString(t.MutedText.Render(m.status))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.ShortHelpView(treeKeys.ShortHelp()))
	return sb.String()
}

func (m TreeModel) operationBadge() string {
	op := m.seq.Operation()
	if !op.Busy() {
		return m.theme.MutedText.Render(fmt.Sprintf("nodes: %d  height: %d", m.tree.Len(), m.tree.Height()))
	}
	style := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Info)
	switch op {
	case model.OpRemove, model.OpClear:
		style = style.Foreground(m.theme.Danger)
	case model.OpTraverse:
		style = style.Foreground(m.theme.Warning)
	}
	return style.Render(strings.ToUpper(string(op)))
}

package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/dsv/pkg/anim"
	"github.com/vanderheijden86/dsv/pkg/config"
	"github.com/vanderheijden86/dsv/pkg/export"
	"github.com/vanderheijden86/dsv/pkg/model"
	"github.com/vanderheijden86/dsv/pkg/tree"
)

func newTestTreeModel() TreeModel {
	cfg := config.DefaultConfig()
	cfg.Random.Seed = 42
	m := NewTreeModel(cfg, DefaultTheme(lipgloss.DefaultRenderer()))
	m.SetSize(100, 30)
	return m
}

// stepTree delivers tick index of the current generation.
func stepTree(m TreeModel, index int) TreeModel {
	m, _ = m.Update(anim.StepMsg{ID: treeSequencerID, Gen: m.seq.Generation(), Index: index})
	return m
}

func typeValue(m TreeModel, s string) TreeModel {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func visitValues(visits []tree.Visit) []int {
	out := make([]int, len(visits))
	for i, v := range visits {
		out[i] = v.Value
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTreeModelInsertFromInput(t *testing.T) {
	m := newTestTreeModel()

	m = typeValue(m, "42")
	if got := m.input.Value(); got != "42" {
		t.Fatalf("input = %q, want 42", got)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("Expected a tick command for the highlight")
	}
	if m.Tree().Len() != 1 {
		t.Fatalf("Expected 1 node, got %d", m.Tree().Len())
	}
	if m.Highlight() != 0 {
		t.Errorf("Expected root slot highlighted, got %d", m.Highlight())
	}
	if m.Operation() != model.OpInsert {
		t.Errorf("Expected insert operation, got %q", m.Operation())
	}
	if m.input.Value() != "" {
		t.Error("Input should be cleared after insert")
	}

	// Second value lands in slot 1
	m = typeValue(m, "-7")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Highlight() != 1 {
		t.Errorf("Expected slot 1 highlighted, got %d", m.Highlight())
	}
	if !equalInts(m.Tree().Values(model.OrderPre), []int{42, -7}) {
		t.Errorf("Unexpected values %v", m.Tree().Values(model.OrderPre))
	}
}

func TestTreeModelForwardsCursorMessages(t *testing.T) {
	m := newTestTreeModel()
	m, cmd := m.Update(textinput.Blink())
	if cmd == nil {
		t.Error("Expected the value field to schedule its next blink")
	}
	if !m.Tree().Empty() || m.Operation().Busy() {
		t.Error("Cursor messages should not touch the tree")
	}
}

func TestTreeModelInsertIgnoresBadInput(t *testing.T) {
	m := newTestTreeModel()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !m.Tree().Empty() {
		t.Error("Empty input should do nothing")
	}

	// Letters never reach the field
	m, _ = m.Update(runes("z"))
	if m.input.Value() != "" {
		t.Errorf("Letters should not be typed into the field, got %q", m.input.Value())
	}

	m.input.SetValue("--")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Tree().Empty() {
		t.Error("Non-numeric input should not insert")
	}
}

func TestTreeModelHighlightEnds(t *testing.T) {
	m := newTestTreeModel()
	m, _ = m.Insert(5)

	m = stepTree(m, 1)
	if m.Highlight() != anim.NoHighlight {
		t.Errorf("Expected no highlight after the hold, got %d", m.Highlight())
	}
	if m.Operation() != model.OpNone {
		t.Errorf("Expected idle, got %q", m.Operation())
	}
}

func TestTreeModelStaleTickIgnored(t *testing.T) {
	m := newTestTreeModel()
	m, _ = m.Insert(5)
	oldGen := m.seq.Generation()
	m, _ = m.Insert(6)

	m, cmd := m.Update(anim.StepMsg{ID: treeSequencerID, Gen: oldGen, Index: 1})
	if cmd != nil {
		t.Error("Stale tick should not schedule anything")
	}
	if m.Highlight() != 1 {
		t.Errorf("Stale tick must not clear the newer highlight, got %d", m.Highlight())
	}

	// Ticks for another widget are ignored too
	m, _ = m.Update(anim.StepMsg{ID: "stack", Gen: m.seq.Generation(), Index: 1})
	if m.Highlight() != 1 {
		t.Errorf("Foreign tick changed the highlight to %d", m.Highlight())
	}
}

func TestTreeModelRemoveLast(t *testing.T) {
	m := newTestTreeModel()

	m, cmd := m.Update(runes("x"))
	if cmd != nil {
		t.Error("Remove on an empty tree should do nothing")
	}

	m.SetTree(tree.FromValues(1, 2, 3))
	m, _ = m.Update(runes("x"))
	if m.Tree().Len() != 2 {
		t.Fatalf("Expected 2 nodes, got %d", m.Tree().Len())
	}
	if m.Operation() != model.OpRemove {
		t.Errorf("Expected remove operation, got %q", m.Operation())
	}

	m.SetTree(tree.FromValues(1))
	m, _ = m.Update(runes("x"))
	if m.Tree().Len() != 1 {
		t.Errorf("The root should stay, got %d nodes", m.Tree().Len())
	}
	if !strings.Contains(m.Status(), "root stays") {
		t.Errorf("Expected root hint, got %q", m.Status())
	}
}

func TestTreeModelTraversals(t *testing.T) {
	tests := []struct {
		key   string
		order model.Order
		want  []int
	}{
		{"p", model.OrderPre, []int{1, 2, 3}},
		{"i", model.OrderIn, []int{2, 1, 3}},
		{"o", model.OrderPost, []int{2, 3, 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			m := newTestTreeModel()
			m.SetTree(tree.FromValues(1, 2, 3))

			m, _ = m.Update(runes(tt.key))
			if !equalInts(visitValues(m.Readout()), tt.want) {
				t.Fatalf("readout = %v, want %v", visitValues(m.Readout()), tt.want)
			}
			if m.Operation() != model.OpTraverse {
				t.Errorf("Expected traverse operation, got %q", m.Operation())
			}

			// Each tick moves the highlight to the next visited slot
			for i, v := range m.Readout() {
				if i > 0 {
					m = stepTree(m, i)
				}
				if m.Highlight() != v.Slot {
					t.Errorf("step %d: highlight %d, want slot %d", i, m.Highlight(), v.Slot)
				}
			}
			m = stepTree(m, len(tt.want))
			if m.Highlight() != anim.NoHighlight {
				t.Error("Highlight should clear after the last visit")
			}
			if len(m.Readout()) != len(tt.want) {
				t.Error("Readout should persist after the animation")
			}
			if !strings.Contains(m.View(), tt.order.Label()) {
				t.Errorf("View should label the readout with %s", tt.order.Label())
			}
		})
	}
}

func TestTreeModelTraverseEmpty(t *testing.T) {
	m := newTestTreeModel()
	m, cmd := m.Update(runes("p"))
	if cmd != nil || len(m.Readout()) != 0 {
		t.Error("Traversing an empty tree should do nothing")
	}
}

func TestTreeModelClearDropsReadout(t *testing.T) {
	m := newTestTreeModel()
	m.SetTree(tree.FromValues(4, 5, 6))
	m, _ = m.Update(runes("i"))

	// Remove keeps the readout
	m, _ = m.Update(runes("x"))
	if len(m.Readout()) == 0 {
		t.Error("Remove should keep the last traversal")
	}

	m, _ = m.Update(runes("c"))
	if !m.Tree().Empty() {
		t.Error("Expected empty tree after clear")
	}
	if len(m.Readout()) != 0 {
		t.Error("Clear should drop the traversal readout")
	}
	if m.Operation() != model.OpClear {
		t.Errorf("Expected clear operation, got %q", m.Operation())
	}
}

func TestTreeModelRandom(t *testing.T) {
	m := newTestTreeModel()
	m.SetTree(tree.FromValues(9, 9))

	m, _ = m.Update(runes("r"))
	if !m.Tree().Empty() {
		t.Fatal("Random should clear the tree first")
	}
	if m.Operation() != model.OpRandom {
		t.Errorf("Expected random operation, got %q", m.Operation())
	}

	for i := 1; i <= 7; i++ {
		m = stepTree(m, i)
		if m.Tree().Len() != i {
			t.Fatalf("after tick %d: %d nodes", i, m.Tree().Len())
		}
	}
	m = stepTree(m, 8)
	if m.Operation() != model.OpNone {
		t.Errorf("Expected idle after the last insert, got %q", m.Operation())
	}
	for _, v := range m.Tree().Values(model.OrderPre) {
		if v < 0 || v >= 100 {
			t.Errorf("Random value %d outside [0, 100)", v)
		}
	}
}

func TestTreeModelRandomSuperseded(t *testing.T) {
	m := newTestTreeModel()
	m, _ = m.Update(runes("r"))
	gen := m.seq.Generation()
	m = stepTree(m, 1)
	m = stepTree(m, 2)

	m, _ = m.Update(runes("c"))
	for i := 3; i <= 7; i++ {
		m, _ = m.Update(anim.StepMsg{ID: treeSequencerID, Gen: gen, Index: i})
	}
	if !m.Tree().Empty() {
		t.Errorf("Pending random inserts must not land after clear, got %d nodes", m.Tree().Len())
	}
}

func TestTreeModelCopyReadout(t *testing.T) {
	m := newTestTreeModel()
	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}

	m, _ = m.Update(runes("y"))
	if !m.statusErr || !strings.Contains(m.Status(), "Nothing to copy") {
		t.Errorf("Expected nothing-to-copy error, got %q", m.Status())
	}

	m.SetTree(tree.FromValues(1, 2, 3))
	m, _ = m.Update(runes("i"))
	m, _ = m.Update(runes("y"))
	if copied != "2 → 1 → 3" {
		t.Errorf("copied %q", copied)
	}

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m, _ = m.Update(runes("y"))
	if !strings.Contains(m.Status(), "no clipboard") {
		t.Errorf("Expected clipboard error, got %q", m.Status())
	}
}

func TestTreeModelOrderPicker(t *testing.T) {
	m := newTestTreeModel()
	m.SetTree(tree.FromValues(1, 2, 3))

	m, _ = m.Update(runes("t"))
	if !m.PickerOpen() {
		t.Fatal("Expected picker to open")
	}
	if !strings.Contains(m.View(), "Traversal Order") {
		t.Error("View should show the picker")
	}

	// Keys go to the picker, not the tree
	m, _ = m.Update(runes("x"))
	if m.Tree().Len() != 3 {
		t.Error("Tree keys must not act while the picker is open")
	}

	m, _ = m.Update(runes("1")) // Preorder
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.PickerOpen() {
		t.Error("Enter should close the picker")
	}
	if !equalInts(visitValues(m.Readout()), []int{1, 2, 3}) {
		t.Errorf("Expected preorder readout, got %v", visitValues(m.Readout()))
	}

	m, _ = m.Update(runes("t"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.PickerOpen() {
		t.Error("Esc should close the picker")
	}
}

func TestTreeModelExport(t *testing.T) {
	m := newTestTreeModel()
	dir := t.TempDir()
	m.cfg.Export.Dir = dir
	m.cfg.Export.Formats = []string{"json", "md"}
	m.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	m, cmd := m.Update(runes("e"))
	if cmd != nil || !strings.Contains(m.Status(), "Nothing to export") {
		t.Fatalf("Expected empty-tree error, got %q", m.Status())
	}

	m.SetTree(tree.FromValues(8, 4, 12))
	m, cmd = m.Update(runes("e"))
	if cmd == nil {
		t.Fatal("Expected an export command")
	}
	if !m.exporting {
		t.Error("Expected exporting flag while the command runs")
	}

	msg, ok := cmd().(ExportDoneMsg)
	if !ok {
		t.Fatalf("Expected ExportDoneMsg")
	}
	if msg.Err != nil {
		t.Fatalf("export failed: %v", msg.Err)
	}
	if len(msg.Results) != 2 || msg.Results[0].Format != export.FormatJSON {
		t.Errorf("Unexpected results %+v", msg.Results)
	}
	m, _ = m.Update(msg)
	if m.exporting {
		t.Error("exporting flag should clear")
	}
	if !strings.Contains(m.Status(), "tree-20240301-120000.json") {
		t.Errorf("Status should name the files, got %q", m.Status())
	}
	for _, name := range []string{"tree-20240301-120000.json", "tree-20240301-120000.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestTreeModelExportErrors(t *testing.T) {
	m := newTestTreeModel()
	m.SetTree(tree.FromValues(1))
	m.cfg.Export.Formats = []string{"gif"}
	m, cmd := m.Update(runes("e"))
	if cmd != nil || !m.statusErr {
		t.Errorf("Unknown format should fail up front, got %q", m.Status())
	}

	m, _ = m.Update(ExportDoneMsg{Err: errors.New("disk full")})
	if !strings.Contains(m.Status(), "Export failed: disk full") {
		t.Errorf("got %q", m.Status())
	}
}

func TestTreeModelSetConfig(t *testing.T) {
	m := newTestTreeModel()
	cfg := config.DefaultConfig()
	cfg.Timing.InsertHighlight = 50 * time.Millisecond
	m.SetConfig(cfg)
	if m.timing.InsertHighlight != 50*time.Millisecond {
		t.Errorf("timing not applied: %v", m.timing.InsertHighlight)
	}
}

func TestExportDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Export.Dir = "/tmp/out"
	if got := exportDir(cfg); got != "/tmp/out" {
		t.Errorf("exportDir = %q", got)
	}
	cfg.Export.Dir = ""
	if got := exportDir(cfg); got == "" {
		t.Error("exportDir should fall back to a directory")
	}
}

func TestTreeModelView(t *testing.T) {
	m := newTestTreeModel()
	view := m.View()
	if !strings.Contains(view, "Binary Tree Visualizer") {
		t.Error("View should contain the header")
	}
	if !strings.Contains(view, "empty tree") {
		t.Error("Empty tree should show a hint")
	}

	m.SetTree(tree.FromValues(10, 20, 30))
	canvas := m.Canvas()
	for _, v := range []string{"10", "20", "30"} {
		if !strings.Contains(canvas, v) {
			t.Errorf("Canvas missing %s:\n%s", v, canvas)
		}
	}
	if !strings.Contains(m.View(), "nodes: 3") {
		t.Error("Idle badge should show the node count")
	}
}

func TestIsValueKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want bool
	}{
		{runes("7"), true},
		{runes("-"), true},
		{runes("a"), false},
		{runes("12a"), false},
		{tea.KeyMsg{Type: tea.KeyBackspace}, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, false},
	}
	for _, tt := range tests {
		if got := isValueKey(tt.msg); got != tt.want {
			t.Errorf("isValueKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/dsv/pkg/model"
)

// OrderPickerModel is a small modal for choosing the traversal order
type OrderPickerModel struct {
	orders        []model.Order
	currentOrder  model.Order // Order the tree tab is using now
	selectedIndex int
	width         int
	height        int
	theme         Theme
}

// NewOrderPickerModel creates a picker with current preselected
func NewOrderPickerModel(current model.Order, theme Theme) OrderPickerModel {
	orders := append([]model.Order(nil), model.Orders...)

	selectedIdx := 0
	for i, o := range orders {
		if o == current {
			selectedIdx = i
			break
		}
	}

	return OrderPickerModel{
		orders:        orders,
		currentOrder:  current,
		selectedIndex: selectedIdx,
		theme:         theme,
	}
}

// SetSize updates the picker dimensions
func (m *OrderPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves selection up
func (m *OrderPickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down
func (m *OrderPickerModel) MoveDown() {
	if m.selectedIndex < len(m.orders)-1 {
		m.selectedIndex++
	}
}

// Select jumps to the order at position i (0-based). Out of range is ignored.
func (m *OrderPickerModel) Select(i int) {
	if i >= 0 && i < len(m.orders) {
		m.selectedIndex = i
	}
}

// SelectedOrder returns the highlighted order
func (m *OrderPickerModel) SelectedOrder() model.Order {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.orders) {
		return m.orders[m.selectedIndex]
	}
	return model.OrderIn
}

// View renders the picker overlay
func (m *OrderPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	boxWidth := 35
	if m.width < 45 {
		boxWidth = m.width - 10
	}
	if boxWidth < 25 {
		boxWidth = 25
	}

	var lines []string

	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
	lines = append(lines, titleStyle.Render("Traversal Order"))
	lines = append(lines, "")

	for i, o := range m.orders {
		isSelected := i == m.selectedIndex
		isCurrent := o == m.currentOrder

		itemStyle := t.Renderer.NewStyle()
		if isSelected {
			itemStyle = itemStyle.Foreground(t.Primary).Bold(true)
		} else {
			itemStyle = itemStyle.Foreground(t.Base.GetForeground())
		}

		prefix := "  "
		if isSelected {
			prefix = "> "
		}

		suffix := ""
		if isCurrent {
			checkStyle := t.Renderer.NewStyle().Foreground(t.Secondary)
			suffix = " " + checkStyle.Render("✓")
		}

		lines = append(lines, itemStyle.Render(prefix+o.Label())+suffix)
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("j/k: navigate | enter: run | esc: cancel"))

	content := strings.Join(lines, "\n")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		boxStyle.Render(content),
	)
}

package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/dsv/pkg/model"
)

func TestNewOrderPickerModel(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	picker := NewOrderPickerModel(model.OrderPost, theme)

	if len(picker.orders) != 3 {
		t.Errorf("Expected 3 orders, got %d", len(picker.orders))
	}
	if picker.SelectedOrder() != model.OrderPost {
		t.Errorf("Expected current order 'post' to be selected, got %q", picker.SelectedOrder())
	}
	if picker.currentOrder != model.OrderPost {
		t.Errorf("Expected currentOrder to be post, got %q", picker.currentOrder)
	}
}

func TestNewOrderPickerModelUnknownOrder(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	picker := NewOrderPickerModel(model.Order("level"), theme)

	if picker.selectedIndex != 0 {
		t.Errorf("Expected selectedIndex 0 for unknown order, got %d", picker.selectedIndex)
	}
	if picker.SelectedOrder() != model.OrderPre {
		t.Errorf("Expected default to 'pre', got %q", picker.SelectedOrder())
	}
}

func TestOrderPickerNavigation(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	picker := NewOrderPickerModel(model.OrderPre, theme)

	picker.MoveDown()
	if picker.SelectedOrder() != model.OrderIn {
		t.Errorf("After MoveDown, expected 'in', got %q", picker.SelectedOrder())
	}

	picker.MoveUp()
	picker.MoveUp()
	if picker.selectedIndex != 0 {
		t.Errorf("MoveUp at start should stay at 0, got %d", picker.selectedIndex)
	}

	for i := 0; i < 10; i++ {
		picker.MoveDown()
	}
	if picker.selectedIndex != 2 {
		t.Errorf("MoveDown at end should stay at 2, got %d", picker.selectedIndex)
	}

	picker.Select(1)
	if picker.SelectedOrder() != model.OrderIn {
		t.Errorf("Select(1) = %q, want in", picker.SelectedOrder())
	}
	picker.Select(7)
	if picker.SelectedOrder() != model.OrderIn {
		t.Errorf("Select out of range changed selection to %q", picker.SelectedOrder())
	}
}

func TestOrderPickerOwnsOrderSlice(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	picker := NewOrderPickerModel(model.OrderIn, theme)
	picker.orders[0] = model.OrderPost
	if model.Orders[0] != model.OrderPre {
		t.Fatal("picker aliases model.Orders")
	}
}

func TestOrderPickerView(t *testing.T) {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	picker := NewOrderPickerModel(model.OrderIn, theme)
	picker.SetSize(80, 40)

	output := picker.View()

	for _, expected := range []string{
		"Traversal Order",
		"Preorder",
		"Inorder",
		"Postorder",
		"✓",
		"j/k: navigate",
		"enter: run",
		"esc: cancel",
		"> ",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("Expected View() to contain %q, but it didn't", expected)
		}
	}

	found := false
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "Inorder") && strings.Contains(line, "✓") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected the current order to carry the checkmark")
	}
}

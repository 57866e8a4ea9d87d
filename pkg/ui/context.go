package ui

// Context identifies what the user is looking at, for context help
type Context string

const (
	// Overlays
	ContextOrderPicker Context = "order-picker"
	ContextExplainer   Context = "explainer"
	ContextHelp        Context = "help"

	// Tabs
	ContextList  Context = "list"
	ContextStack Context = "stack"
	ContextQueue Context = "queue"
	ContextTree  Context = "tree"
)

// CurrentContext returns the current UI context identifier.
// Overlays win over the active tab.
func (m Model) CurrentContext() Context {
	switch {
	case m.showHelp:
		return ContextHelp
	case m.showExplainer:
		return ContextExplainer
	}
	return m.baseContext()
}

// baseContext ignores the help and explainer overlays.
func (m Model) baseContext() Context {
	if m.activeTab == TabTree && m.tree.PickerOpen() {
		return ContextOrderPicker
	}
	return m.activeTab.Context()
}

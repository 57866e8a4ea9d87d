package ui

import "github.com/charmbracelet/bubbles/key"

// globalKeyMap holds bindings that work on every tab.
type globalKeyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Explainer key.Binding
	Help      key.Binding
	Quit      key.Binding
	Close     key.Binding
}

var globalKeys = globalKeyMap{
	NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev")),
	Explainer: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "how it works")),
	Help:      key.NewBinding(key.WithKeys("`"), key.WithHelp("`", "keys")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
}

// treeKeyMap holds the tree tab bindings.
type treeKeyMap struct {
	Insert    key.Binding
	Remove    key.Binding
	Clear     key.Binding
	Random    key.Binding
	Preorder  key.Binding
	Inorder   key.Binding
	Postorder key.Binding
	Pick      key.Binding
	Copy      key.Binding
	Export    key.Binding
}

var treeKeys = treeKeyMap{
	Insert:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
	Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
	Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Random:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "random")),
	Preorder:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pre")),
	Inorder:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "in")),
	Postorder: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "post")),
	Pick:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "order")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
}

// ShortHelp feeds the footer.
func (k treeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Remove, k.Clear, k.Random, k.Preorder, k.Inorder, k.Postorder, k.Pick, k.Copy, k.Export}
}

// pickerKeyMap holds the order picker bindings.
type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Run    key.Binding
	Cancel key.Binding
}

var pickerKeys = pickerKeyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	Run:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Cancel: key.NewBinding(key.WithKeys("esc", "t"), key.WithHelp("esc", "cancel")),
}

// linearKeyMap holds the bindings shared by the list, stack and queue tabs.
// Reverse and Sort only apply to the linked list.
type linearKeyMap struct {
	Add     key.Binding
	Remove  key.Binding
	Reverse key.Binding
	Sort    key.Binding
}

var linearKeys = linearKeyMap{
	Add:     key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "add")),
	Remove:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
	Reverse: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "reverse")),
	Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
}

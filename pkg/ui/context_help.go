package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ContextHelpContent holds a one-screen quick reference per context.
var ContextHelpContent = map[Context]string{
	ContextList:        contextHelpList,
	ContextStack:       contextHelpStack,
	ContextQueue:       contextHelpQueue,
	ContextTree:        contextHelpTree,
	ContextOrderPicker: contextHelpOrderPicker,
	ContextExplainer:   contextHelpExplainer,
	ContextHelp:        contextHelpHelp,
}

// GetContextHelp returns the help content for a given context.
// Falls back to generic help if the context has no specific content.
func GetContextHelp(ctx Context) string {
	if content, ok := ContextHelpContent[ctx]; ok {
		return content
	}
	return contextHelpGeneric
}

// RenderContextHelp renders the context-specific help modal.
func RenderContextHelp(ctx Context, theme Theme, width, height int) string {
	content := GetContextHelp(ctx)

	r := theme.Renderer

	modalWidth := 60
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)
	contentStyle := r.NewStyle().
		Foreground(theme.Subtext)
	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("Press ? for how it works │ Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	modal := modalStyle.Render(b.String())
	if width <= 0 || height <= 0 {
		return modal
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

const contextHelpTree = `## Binary Tree

**Build**
  0-9, -    Type a value
  Enter     Insert at the next free slot
  x         Remove the last node
  c         Clear the tree
  r         Fill with random values

**Traverse**
  p         Preorder  (node, left, right)
  i         Inorder   (left, node, right)
  o         Postorder (left, right, node)
  t         Pick an order

**Output**
  y         Copy the traversal readout
  e         Export a snapshot`

const contextHelpList = `## Linked List

**Operations**
  a         Insert a new entry at the head
  d         Delete the head entry
  v         Reverse the list
  s         Sort by timestamp

Each card is one node; arrows follow the
next pointers from head to tail.`

const contextHelpStack = `## Stack

**Operations**
  a         Push "Data N" on top
  d         Pop the top item

Last in, first out. Popping an empty stack
does nothing.`

const contextHelpQueue = `## Queue

**Operations**
  a         Enqueue "Item N" at the back
  d         Dequeue the front item

First in, first out. Dequeuing an empty
queue does nothing.`

const contextHelpOrderPicker = `## Traversal Order

  j/k       Move the selection
  1-3       Jump to an order
  Enter     Run the selected traversal
  Esc       Close without running`

const contextHelpExplainer = `## How It Works

  ←/→       Previous / next page
  j/k       Scroll the page
  1-9       Jump to a page
  t         Table of contents
  Esc       Close`

const contextHelpHelp = `## Quick Reference

You are looking at it. Press Esc to close.`

const contextHelpGeneric = `## dsv

  Tab       Next data structure
  Shift+Tab Previous data structure
  ?         How it works
  ` + "`" + `         Quick reference
  q         Quit`

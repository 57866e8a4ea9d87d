// Package tree holds the complete binary tree behind the visualizer.
//
// A Tree is an immutable value: Insert, RemoveLast and Clear return a new
// Tree and never touch the receiver, so whoever holds the value owns the
// state and can re-render on replacement. Nodes fill breadth-first, left to
// right, which keeps the tree complete regardless of the inserted values.
// There is no ordering between values; this is not a search tree.
package tree

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// DefaultRandomMax is the exclusive upper bound of random values.
const DefaultRandomMax = 100

// Node is one element of the tree. Children are owned by their parent.
type Node struct {
	Value int
	Left  *Node
	Right *Node
}

// Tree is a complete binary tree of integers. The zero value is empty.
type Tree struct {
	root *Node
	size int
}

// New returns an empty tree.
func New() Tree {
	return Tree{}
}

// FromValues inserts values in order into an empty tree.
func FromValues(values ...int) Tree {
	var t Tree
	if len(values) == 0 {
		return t
	}
	// Build once rather than copying on every Insert.
	nodes := make([]*Node, len(values))
	for i, v := range values {
		nodes[i] = &Node{Value: v}
	}
	for i, n := range nodes {
		if l := 2*i + 1; l < len(nodes) {
			n.Left = nodes[l]
		}
		if r := 2*i + 2; r < len(nodes) {
			n.Right = nodes[r]
		}
	}
	return Tree{root: nodes[0], size: len(nodes)}
}

// Len returns the number of nodes.
func (t Tree) Len() int { return t.size }

// Empty reports whether the tree has no nodes.
func (t Tree) Empty() bool { return t.root == nil }

// Root returns the root node, or nil for an empty tree. The node graph is
// shared with t and must not be modified.
func (t Tree) Root() *Node { return t.root }

// Height returns the number of levels (0 for an empty tree).
func (t Tree) Height() int {
	h := 0
	for n := t.root; n != nil; n = n.Left {
		h++
	}
	return h
}

// Insert places v at the first free child position in breadth-first order.
func (t Tree) Insert(v int) Tree {
	node := &Node{Value: v}
	if t.root == nil {
		return Tree{root: node, size: 1}
	}
	root := clone(t.root)
	queue := []*Node{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Left == nil {
			cur.Left = node
			break
		}
		if cur.Right == nil {
			cur.Right = node
			break
		}
		queue = append(queue, cur.Left, cur.Right)
	}
	return Tree{root: root, size: t.size + 1}
}

// RemoveLast detaches the last node in breadth-first order. The root is
// never removed: a single-node tree is returned unchanged, as is an empty
// one. Use Clear to drop the root.
func (t Tree) RemoveLast() Tree {
	if t.root == nil || (t.root.Left == nil && t.root.Right == nil) {
		return t
	}
	root := clone(t.root)

	type entry struct {
		node, parent *Node
	}
	var last entry
	queue := []entry{{node: root}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		last = cur
		if cur.node.Left != nil {
			queue = append(queue, entry{cur.node.Left, cur.node})
		}
		if cur.node.Right != nil {
			queue = append(queue, entry{cur.node.Right, cur.node})
		}
	}
	if last.parent.Right == last.node {
		last.parent.Right = nil
	} else {
		last.parent.Left = nil
	}
	return Tree{root: root, size: t.size - 1}
}

// Clear returns the empty tree.
func (t Tree) Clear() Tree {
	return Tree{}
}

// RandomValues draws count values uniformly from [0, max). A non-positive
// max falls back to DefaultRandomMax.
func RandomValues(count, max int, rng *rand.Rand) []int {
	if count <= 0 {
		return nil
	}
	if max <= 0 {
		max = DefaultRandomMax
	}
	values := make([]int, count)
	for i := range values {
		if rng != nil {
			values[i] = rng.IntN(max)
		} else {
			values[i] = rand.IntN(max)
		}
	}
	return values
}

// Random clears the tree and inserts count random values in [0, 100).
func Random(count int, rng *rand.Rand) Tree {
	t := New()
	for _, v := range RandomValues(count, DefaultRandomMax, rng) {
		t = t.Insert(v)
	}
	return t
}

// Levels returns node values grouped by depth.
func (t Tree) Levels() [][]int {
	var levels [][]int
	t.Walk(func(p Position) bool {
		if p.Depth == len(levels) {
			levels = append(levels, nil)
		}
		levels[p.Depth] = append(levels[p.Depth], p.Value)
		return true
	})
	return levels
}

// IsComplete reports whether every level but the last is full and the last
// level fills from the left. Trees built by Insert and RemoveLast always are.
func (t Tree) IsComplete() bool {
	if t.root == nil {
		return true
	}
	seenGap := false
	queue := []*Node{t.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range []*Node{cur.Left, cur.Right} {
			if child == nil {
				seenGap = true
				continue
			}
			if seenGap {
				return false
			}
			queue = append(queue, child)
		}
	}
	return true
}

// Position describes a node during a level-order walk.
type Position struct {
	Slot   int
	Parent int // -1 for the root
	Depth  int
	Value  int
	Node   *Node
}

// Walk visits nodes in level order until fn returns false.
func (t Tree) Walk(fn func(Position) bool) {
	if t.root == nil {
		return
	}
	queue := []Position{{Slot: 0, Parent: -1, Node: t.root, Value: t.root.Value}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !fn(cur) {
			return
		}
		if l := cur.Node.Left; l != nil {
			queue = append(queue, Position{Slot: 2*cur.Slot + 1, Parent: cur.Slot, Depth: cur.Depth + 1, Value: l.Value, Node: l})
		}
		if r := cur.Node.Right; r != nil {
			queue = append(queue, Position{Slot: 2*cur.Slot + 2, Parent: cur.Slot, Depth: cur.Depth + 1, Value: r.Value, Node: r})
		}
	}
}

// String renders the tree level by level, e.g. "[5] [2 8] [1]".
func (t Tree) String() string {
	if t.root == nil {
		return "(empty)"
	}
	var sb strings.Builder
	for i, level := range t.Levels() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('[')
		for j, v := range level {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(v))
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

func clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	root := &Node{Value: n.Value}
	type pair struct{ src, dst *Node }
	stack := []pair{{n, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.src.Left != nil {
			p.dst.Left = &Node{Value: p.src.Left.Value}
			stack = append(stack, pair{p.src.Left, p.dst.Left})
		}
		if p.src.Right != nil {
			p.dst.Right = &Node{Value: p.src.Right.Value}
			stack = append(stack, pair{p.src.Right, p.dst.Right})
		}
	}
	return root
}

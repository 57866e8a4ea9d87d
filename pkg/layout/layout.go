// Package layout assigns 2D coordinates to tree nodes for drawing.
//
// A node's x is its offset plus the size of its left subtree times StepX,
// which puts every node one step right of its in-order predecessor and
// keeps left subtrees strictly left of their parents. y grows with depth.
// Coordinates live in the Result; the tree is never touched.
package layout

import (
	"math"

	"github.com/vanderheijden86/dsv/pkg/tree"
)

// Options controls spacing and centering.
type Options struct {
	StepX          float64 `json:"step_x" yaml:"step_x"`
	StepY          float64 `json:"step_y" yaml:"step_y"`
	ContainerWidth float64 `json:"container_width" yaml:"container_width"`
	TopMargin      float64 `json:"top_margin" yaml:"top_margin"`
}

// DefaultOptions are the pixel spacings used by image exports.
func DefaultOptions() Options {
	return Options{StepX: 80, StepY: 100, TopMargin: 20}
}

// CellOptions are the spacings used by the terminal canvas, in cells.
func CellOptions(width int) Options {
	return Options{StepX: 6, StepY: 3, ContainerWidth: float64(width), TopMargin: 0}
}

// Placement is the position of one node.
type Placement struct {
	Slot  int     `json:"slot"`
	Value int     `json:"value"`
	Depth int     `json:"depth"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Edge connects a parent slot to a child slot.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Result is a laid-out tree. Nodes are in level order, so Nodes[i].Slot == i.
type Result struct {
	Nodes  []Placement `json:"nodes"`
	Edges  []Edge      `json:"edges"`
	MinX   float64     `json:"min_x"`
	MaxX   float64     `json:"max_x"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
}

// Empty reports whether there is nothing to draw.
func (r Result) Empty() bool { return len(r.Nodes) == 0 }

// Node returns the placement for slot.
func (r Result) Node(slot int) (Placement, bool) {
	if slot < 0 || slot >= len(r.Nodes) {
		return Placement{}, false
	}
	return r.Nodes[slot], true
}

type placeFrame struct {
	node   *tree.Node
	slot   int
	depth  int
	offset float64
}

// Compute lays out t. The pass uses explicit stacks, so very deep trees are
// fine.
func Compute(t tree.Tree, opts Options) Result {
	var res Result
	if t.Empty() {
		return res
	}

	sizes := subtreeSizes(t.Root())
	res.Nodes = make([]Placement, t.Len())
	res.MinX = math.Inf(1)
	res.MaxX = math.Inf(-1)
	maxDepth := 0

	stack := []placeFrame{{node: t.Root(), slot: 0, offset: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left := 0
		if f.node.Left != nil {
			left = sizes[f.node.Left]
		}
		x := f.offset + float64(left)*opts.StepX
		res.Nodes[f.slot] = Placement{
			Slot:  f.slot,
			Value: f.node.Value,
			Depth: f.depth,
			X:     x,
			Y:     float64(f.depth)*opts.StepY + opts.TopMargin,
		}
		res.MinX = math.Min(res.MinX, x)
		res.MaxX = math.Max(res.MaxX, x)
		maxDepth = max(maxDepth, f.depth)

		if f.node.Right != nil {
			to := 2*f.slot + 2
			res.Edges = append(res.Edges, Edge{From: f.slot, To: to})
			stack = append(stack, placeFrame{
				node:   f.node.Right,
				slot:   to,
				depth:  f.depth + 1,
				offset: f.offset + float64(left+1)*opts.StepX,
			})
		}
		if f.node.Left != nil {
			to := 2*f.slot + 1
			res.Edges = append(res.Edges, Edge{From: f.slot, To: to})
			stack = append(stack, placeFrame{
				node:   f.node.Left,
				slot:   to,
				depth:  f.depth + 1,
				offset: f.offset,
			})
		}
	}

	if opts.ContainerWidth > 0 {
		shift := opts.ContainerWidth/2 - (res.MinX+res.MaxX)/2
		for i := range res.Nodes {
			res.Nodes[i].X += shift
		}
		res.MinX += shift
		res.MaxX += shift
	}
	res.Width = res.MaxX - res.MinX
	res.Height = float64(maxDepth)*opts.StepY + opts.TopMargin
	return res
}

// subtreeSizes counts the nodes under (and including) every node with a
// post-order walk.
func subtreeSizes(root *tree.Node) map[*tree.Node]int {
	sizes := make(map[*tree.Node]int)
	type frame struct {
		node *tree.Node
		done bool
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.done {
			sizes[f.node] = 1 + sizes[f.node.Left] + sizes[f.node.Right]
			continue
		}
		stack = append(stack, frame{node: f.node, done: true})
		if f.node.Right != nil {
			stack = append(stack, frame{node: f.node.Right})
		}
		if f.node.Left != nil {
			stack = append(stack, frame{node: f.node.Left})
		}
	}
	return sizes
}

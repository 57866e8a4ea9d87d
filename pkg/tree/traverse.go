package tree

import (
	"github.com/vanderheijden86/dsv/pkg/model"
)

// Visit is one step of a traversal. Slot is the node's level-order index
// (root 0, children of i at 2i+1 and 2i+2) and identifies the node even
// when values repeat.
type Visit struct {
	Slot  int `json:"slot"`
	Value int `json:"value"`
}

type frame struct {
	node *Node
	slot int
	// expanded is set once the node's children have been pushed.
	expanded bool
}

// Traverse returns the nodes in the requested depth-first order. The result
// is a fresh slice on every call. An invalid order yields nil.
func (t Tree) Traverse(order model.Order) []Visit {
	if t.root == nil || !order.IsValid() {
		return nil
	}
	out := make([]Visit, 0, t.size)
	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.expanded {
			out = append(out, Visit{Slot: f.slot, Value: f.node.Value})
			continue
		}
		self := frame{node: f.node, slot: f.slot, expanded: true}
		var left, right *frame
		if f.node.Left != nil {
			left = &frame{node: f.node.Left, slot: 2*f.slot + 1}
		}
		if f.node.Right != nil {
			right = &frame{node: f.node.Right, slot: 2*f.slot + 2}
		}
		// Push in reverse of the emit order.
		switch order {
		case model.OrderPre:
			pushFrame(&stack, right)
			pushFrame(&stack, left)
			stack = append(stack, self)
		case model.OrderIn:
			pushFrame(&stack, right)
			stack = append(stack, self)
			pushFrame(&stack, left)
		case model.OrderPost:
			stack = append(stack, self)
			pushFrame(&stack, right)
			pushFrame(&stack, left)
		}
	}
	return out
}

// Values returns just the values of Traverse(order).
func (t Tree) Values(order model.Order) []int {
	visits := t.Traverse(order)
	if visits == nil {
		return nil
	}
	values := make([]int, len(visits))
	for i, v := range visits {
		values[i] = v.Value
	}
	return values
}

func pushFrame(stack *[]frame, f *frame) {
	if f != nil {
		*stack = append(*stack, *f)
	}
}

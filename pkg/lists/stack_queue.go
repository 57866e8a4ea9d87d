package lists

import "fmt"

type stackNode struct {
	label string
	next  *stackNode
}

// Stack is a LIFO of labels.
type Stack struct {
	top  *stackNode
	size int
}

// SeedStack returns the stack the widget starts with: Data 3 on top.
func SeedStack() Stack {
	return Stack{}.Push().Push().Push()
}

// Len returns the number of items.
func (s Stack) Len() int { return s.size }

// Items returns the labels from top to bottom.
func (s Stack) Items() []string {
	out := make([]string, 0, s.size)
	for n := s.top; n != nil; n = n.next {
		out = append(out, n.label)
	}
	return out
}

// Peek returns the top label.
func (s Stack) Peek() (string, bool) {
	if s.top == nil {
		return "", false
	}
	return s.top.label, true
}

// Push adds "Data <n>" on top, where n is the new size.
func (s Stack) Push() Stack {
	label := fmt.Sprintf("Data %d", s.size+1)
	return Stack{top: &stackNode{label: label, next: s.top}, size: s.size + 1}
}

// Pop removes the top. Popping an empty stack is a no-op.
func (s Stack) Pop() Stack {
	if s.top == nil {
		return s
	}
	return Stack{top: s.top.next, size: s.size - 1}
}

// Queue is a FIFO of labels.
type Queue struct {
	items []string
}

// SeedQueue returns the queue the widget starts with: Item 1 at the front.
func SeedQueue() Queue {
	return Queue{}.Enqueue().Enqueue().Enqueue()
}

// Len returns the number of items.
func (q Queue) Len() int { return len(q.items) }

// Items returns the labels from front to rear.
func (q Queue) Items() []string {
	return append([]string(nil), q.items...)
}

// Front returns the label at the front.
func (q Queue) Front() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	return q.items[0], true
}

// Enqueue appends "Item <n>" at the rear, where n is the new size.
func (q Queue) Enqueue() Queue {
	items := make([]string, len(q.items), len(q.items)+1)
	copy(items, q.items)
	return Queue{items: append(items, fmt.Sprintf("Item %d", len(q.items)+1))}
}

// Dequeue removes the front. Dequeuing an empty queue is a no-op.
func (q Queue) Dequeue() Queue {
	if len(q.items) == 0 {
		return q
	}
	return Queue{items: append([]string(nil), q.items[1:]...)}
}

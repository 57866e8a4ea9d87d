// Package lists holds the linear structures shown next to the tree: a linked
// list of log entries, a stack and a queue. Like tree.Tree they are values;
// every operation returns a new one.
package lists

import (
	"slices"
	"time"

	"github.com/vanderheijden86/dsv/pkg/model"
)

// NewEntryMessage is the message given to entries added at the head.
const NewEntryMessage = "New log entry"

type entryNode struct {
	entry model.LogEntry
	next  *entryNode
}

// LinkedList is a singly linked list of log entries. Tails are shared
// between versions, which is safe because nodes are never modified.
type LinkedList struct {
	head   *entryNode
	size   int
	nextID int
}

// SeedEntries returns the three entries the list starts with.
func SeedEntries() []model.LogEntry {
	base := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)
	return []model.LogEntry{
		{ID: 1, Timestamp: base, Severity: model.SeverityInfo, Message: "System startup"},
		{ID: 2, Timestamp: base.Add(time.Minute), Severity: model.SeverityWarning, Message: "High CPU usage"},
		{ID: 3, Timestamp: base.Add(2 * time.Minute), Severity: model.SeverityError, Message: "Connection failed"},
	}
}

// NewLinkedList builds a list holding entries in order.
func NewLinkedList(entries ...model.LogEntry) LinkedList {
	var l LinkedList
	for i := len(entries) - 1; i >= 0; i-- {
		l.head = &entryNode{entry: entries[i], next: l.head}
		l.size++
		l.nextID = max(l.nextID, entries[i].ID)
	}
	l.nextID++
	return l
}

// Len returns the number of entries.
func (l LinkedList) Len() int { return l.size }

// Entries returns the entries from head to tail.
func (l LinkedList) Entries() []model.LogEntry {
	out := make([]model.LogEntry, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.entry)
	}
	return out
}

// Head returns the first entry.
func (l LinkedList) Head() (model.LogEntry, bool) {
	if l.head == nil {
		return model.LogEntry{}, false
	}
	return l.head.entry, true
}

// InsertAtBeginning prepends a fresh info entry stamped with now.
func (l LinkedList) InsertAtBeginning(now time.Time) LinkedList {
	id := max(l.nextID, 1)
	entry := model.LogEntry{
		ID:        id,
		Timestamp: now.Truncate(time.Second),
		Severity:  model.SeverityInfo,
		Message:   NewEntryMessage,
	}
	return LinkedList{
		head:   &entryNode{entry: entry, next: l.head},
		size:   l.size + 1,
		nextID: id + 1,
	}
}

// DeleteFirst drops the head. An empty list is returned unchanged.
func (l LinkedList) DeleteFirst() LinkedList {
	if l.head == nil {
		return l
	}
	return LinkedList{head: l.head.next, size: l.size - 1, nextID: l.nextID}
}

// Reverse returns the list in the opposite order.
func (l LinkedList) Reverse() LinkedList {
	out := LinkedList{size: l.size, nextID: l.nextID}
	for n := l.head; n != nil; n = n.next {
		out.head = &entryNode{entry: n.entry, next: out.head}
	}
	return out
}

// SortByTimestamp orders entries oldest first. Ties keep their order.
func (l LinkedList) SortByTimestamp() LinkedList {
	entries := l.Entries()
	slices.SortStableFunc(entries, func(a, b model.LogEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	out := NewLinkedList(entries...)
	out.nextID = l.nextID
	return out
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// Order selects a depth-first traversal order
type Order string

const (
	OrderPre  Order = "pre"
	OrderIn   Order = "in"
	OrderPost Order = "post"
)

// Orders lists every traversal order in display order.
var Orders = []Order{OrderPre, OrderIn, OrderPost}

// IsValid returns true if the order is a recognized value
func (o Order) IsValid() bool {
	switch o {
	case OrderPre, OrderIn, OrderPost:
		return true
	}
	return false
}

// String returns the order as it is stored in config and scripts
func (o Order) String() string {
	return string(o)
}

// Label returns the human-facing name ("Preorder", "Inorder", "Postorder")
func (o Order) Label() string {
	switch o {
	case OrderPre:
		return "Preorder"
	case OrderIn:
		return "Inorder"
	case OrderPost:
		return "Postorder"
	}
	return string(o)
}

// ParseOrder accepts the short form ("pre") as well as the long form
// ("preorder", "pre-order"), case-insensitively.
func ParseOrder(s string) (Order, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "")
	norm = strings.TrimSuffix(norm, "order")
	o := Order(norm)
	if !o.IsValid() {
		return "", fmt.Errorf("invalid traversal order: %q (want pre, in or post)", s)
	}
	return o, nil
}

// Operation names the operation an animation is running for
type Operation string

const (
	OpNone     Operation = ""
	OpInsert   Operation = "insert"
	OpRemove   Operation = "remove"
	OpClear    Operation = "clear"
	OpTraverse Operation = "traverse"
	OpRandom   Operation = "random"

	// Linear widgets
	OpReverse Operation = "reverse"
	OpSort    Operation = "sort"
)

// IsValid returns true if the operation is a recognized value
func (o Operation) IsValid() bool {
	switch o {
	case OpNone, OpInsert, OpRemove, OpClear, OpTraverse, OpRandom, OpReverse, OpSort:
		return true
	}
	return false
}

// Busy reports whether the operation should lock out other input.
func (o Operation) Busy() bool {
	return o != OpNone
}

// Severity classifies a log entry
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// IsValid returns true if the severity is a recognized value
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true
	}
	return false
}

// LogEntry is one element of the linked-list widget
type LogEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}

// Validate checks if the entry data is logically valid
func (e LogEntry) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("log entry ID must be positive, got %d", e.ID)
	}
	if e.Message == "" {
		return fmt.Errorf("log entry %d: message cannot be empty", e.ID)
	}
	if !e.Severity.IsValid() {
		return fmt.Errorf("log entry %d: invalid severity: %s", e.ID, e.Severity)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("log entry %d: timestamp cannot be zero", e.ID)
	}
	return nil
}

// String renders the entry the way the list card shows it
func (e LogEntry) String() string {
	return fmt.Sprintf("#%d [%s] %s (%s)", e.ID, e.Severity, e.Message, e.Timestamp.Format("15:04:05"))
}

package anim

import (
	"time"

	"github.com/vanderheijden86/dsv/pkg/tree"
)

// Timing holds the cadence of each animated operation.
type Timing struct {
	InsertHighlight time.Duration
	RemoveBusy      time.Duration
	ClearBusy       time.Duration
	TraversalStep   time.Duration
	RandomLeadIn    time.Duration
	RandomStep      time.Duration
	ListFlash       time.Duration
	ListDelete      time.Duration
}

// DefaultTiming returns the stock cadence.
func DefaultTiming() Timing {
	return Timing{
		InsertHighlight: 800 * time.Millisecond,
		RemoveBusy:      500 * time.Millisecond,
		ClearBusy:       300 * time.Millisecond,
		TraversalStep:   500 * time.Millisecond,
		RandomLeadIn:    300 * time.Millisecond,
		RandomStep:      200 * time.Millisecond,
		ListFlash:       time.Second,
		ListDelete:      500 * time.Millisecond,
	}
}

// InsertSteps inserts value and highlights the slot it lands in.
func (tm Timing) InsertSteps(value, slot int) []Step {
	v := value
	return []Step{{Highlight: slot, Insert: &v, Delay: tm.InsertHighlight}}
}

// RemoveSteps holds the busy state after a removal.
func (tm Timing) RemoveSteps() []Step {
	return []Step{{Highlight: NoHighlight, Delay: tm.RemoveBusy}}
}

// ClearSteps holds the busy state after a clear.
func (tm Timing) ClearSteps() []Step {
	return []Step{{Highlight: NoHighlight, Delay: tm.ClearBusy}}
}

// TraversalSteps highlights each visited node in turn.
func (tm Timing) TraversalSteps(visits []tree.Visit) []Step {
	steps := make([]Step, len(visits))
	for i, v := range visits {
		steps[i] = Step{Highlight: v.Slot, Delay: tm.TraversalStep}
	}
	return steps
}

// RandomSteps waits for the lead-in, then inserts one value per step.
func (tm Timing) RandomSteps(values []int) []Step {
	steps := make([]Step, 0, len(values)+1)
	steps = append(steps, Step{Highlight: NoHighlight, Delay: tm.RandomLeadIn})
	for _, v := range values {
		steps = append(steps, Step{Highlight: NoHighlight, Insert: &v, Delay: tm.RandomStep})
	}
	return steps
}

// DeleteFirstSteps highlights the head for the delete lead-in, then commits
// the removal and holds the busy state for the flash period.
func (tm Timing) DeleteFirstSteps() []Step {
	return []Step{
		{Highlight: 0, Delay: tm.ListDelete},
		{Highlight: NoHighlight, Commit: true, Delay: tm.ListFlash},
	}
}

// FlashSteps highlights one list item for the flash period.
func (tm Timing) FlashSteps(index int) []Step {
	return []Step{{Highlight: index, Delay: tm.ListFlash}}
}

// Package anim sequences timed highlight steps on the bubbletea message loop.
//
// A Sequencer runs at most one sequence at a time. Starting a sequence bumps
// a generation counter; ticks carry the generation they were scheduled for
// and are dropped on arrival if a newer sequence has started since. The
// sequencer never touches the tree: callers apply Step.Insert themselves.
package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/dsv/pkg/model"
)

// NoHighlight marks a step without an active node.
const NoHighlight = -1

// Step is one frame of a sequence. The frame's state is held for Delay
// before the next frame is applied.
type Step struct {
	Highlight int
	Insert    *int
	Commit    bool // apply a change deferred by the owner
	Delay     time.Duration
}

// StepMsg asks the sequencer named ID to apply step Index of generation Gen.
type StepMsg struct {
	ID    string
	Gen   uint64
	Index int
}

// Sequencer holds the highlight state. The zero value is idle. ID names the
// owner so several sequencers can share one message loop.
type Sequencer struct {
	ID string

	gen       uint64
	op        model.Operation
	steps     []Step
	index     int
	highlight int
	active    bool
}

// Start replaces any running sequence with steps and applies the first one
// immediately. The returned step must be applied by the caller.
func (s *Sequencer) Start(op model.Operation, steps []Step) (Step, tea.Cmd) {
	s.gen++
	if len(steps) == 0 {
		s.finish()
		return Step{Highlight: NoHighlight}, nil
	}
	s.op = op
	s.steps = steps
	s.active = true
	return s.apply(0)
}

// Handle applies a tick. ok is false for ticks from a superseded sequence,
// which the caller should ignore. When the sequence runs out the sequencer
// goes idle and returns an empty step with ok set.
func (s *Sequencer) Handle(msg StepMsg) (step Step, ok bool, cmd tea.Cmd) {
	if msg.ID != s.ID || msg.Gen != s.gen || !s.active {
		return Step{}, false, nil
	}
	if msg.Index >= len(s.steps) {
		s.finish()
		return Step{Highlight: NoHighlight}, true, nil
	}
	step, cmd = s.apply(msg.Index)
	return step, true, cmd
}

// Cancel stops the running sequence. Pending ticks become stale.
func (s *Sequencer) Cancel() {
	s.gen++
	s.finish()
}

// Active reports whether a sequence is running.
func (s *Sequencer) Active() bool { return s.active }

// Operation returns the running operation, or OpNone.
func (s *Sequencer) Operation() model.Operation { return s.op }

// Highlight returns the highlighted slot or NoHighlight.
func (s *Sequencer) Highlight() int {
	if !s.active {
		return NoHighlight
	}
	return s.highlight
}

// Index returns the position of the current step.
func (s *Sequencer) Index() int { return s.index }

// Generation returns the current generation.
func (s *Sequencer) Generation() uint64 { return s.gen }

func (s *Sequencer) apply(i int) (Step, tea.Cmd) {
	step := s.steps[i]
	s.index = i
	s.highlight = step.Highlight
	return step, tick(step.Delay, s.ID, s.gen, i+1)
}

func (s *Sequencer) finish() {
	s.op = model.OpNone
	s.steps = nil
	s.index = 0
	s.highlight = NoHighlight
	s.active = false
}

func tick(d time.Duration, id string, gen uint64, index int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StepMsg{ID: id, Gen: gen, Index: index}
	})
}

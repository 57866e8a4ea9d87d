package anim

import (
	"testing"
	"time"

	"github.com/vanderheijden86/dsv/pkg/model"
	"github.com/vanderheijden86/dsv/pkg/tree"
)

func TestSequencer_ZeroValueIdle(t *testing.T) {
	var s Sequencer
	if s.Active() || s.Highlight() != NoHighlight || s.Operation() != model.OpNone {
		t.Fatalf("zero sequencer not idle: active=%v highlight=%d op=%q", s.Active(), s.Highlight(), s.Operation())
	}
	if _, ok, _ := s.Handle(StepMsg{Gen: 0, Index: 0}); ok {
		t.Error("idle sequencer accepted a tick")
	}
}

func TestSequencer_Traversal(t *testing.T) {
	var s Sequencer
	visits := tree.FromValues(5, 2, 8).Traverse(model.OrderIn)
	steps := DefaultTiming().TraversalSteps(visits)

	step, cmd := s.Start(model.OpTraverse, steps)
	if cmd == nil {
		t.Fatal("Start returned no tick")
	}
	if step.Highlight != 1 || s.Highlight() != 1 {
		t.Fatalf("first highlight = %d, want slot 1", step.Highlight)
	}
	if s.Operation() != model.OpTraverse {
		t.Errorf("Operation() = %q", s.Operation())
	}

	gen := s.Generation()
	for i, want := range []int{0, 2} {
		step, ok, cmd := s.Handle(StepMsg{Gen: gen, Index: i + 1})
		if !ok || cmd == nil {
			t.Fatalf("step %d: ok=%v cmd=%v", i+1, ok, cmd)
		}
		if step.Highlight != want || s.Highlight() != want {
			t.Errorf("step %d highlight = %d, want %d", i+1, step.Highlight, want)
		}
		if s.Index() != i+1 {
			t.Errorf("Index() = %d, want %d", s.Index(), i+1)
		}
	}

	step, ok, cmd := s.Handle(StepMsg{Gen: gen, Index: 3})
	if !ok || cmd != nil {
		t.Fatalf("final tick: ok=%v cmd=%v", ok, cmd)
	}
	if step.Highlight != NoHighlight || s.Active() || s.Operation() != model.OpNone {
		t.Errorf("sequencer still active after last step")
	}
}

func TestSequencer_NewStartDropsStaleTicks(t *testing.T) {
	var s Sequencer
	tm := DefaultTiming()
	s.Start(model.OpTraverse, tm.TraversalSteps(tree.FromValues(1, 2, 3).Traverse(model.OrderPre)))
	stale := s.Generation()

	s.Start(model.OpInsert, tm.InsertSteps(9, 3))
	if _, ok, _ := s.Handle(StepMsg{Gen: stale, Index: 1}); ok {
		t.Fatal("stale tick applied")
	}
	if s.Highlight() != 3 || s.Operation() != model.OpInsert {
		t.Errorf("stale tick changed state: highlight=%d op=%q", s.Highlight(), s.Operation())
	}
	if _, ok, _ := s.Handle(StepMsg{Gen: s.Generation(), Index: 1}); !ok {
		t.Error("current tick rejected")
	}
	if s.Active() {
		t.Error("insert sequence should be done after its only step")
	}
}

func TestSequencer_Cancel(t *testing.T) {
	var s Sequencer
	s.Start(model.OpRemove, DefaultTiming().RemoveSteps())
	gen := s.Generation()
	s.Cancel()
	if s.Active() {
		t.Fatal("still active after Cancel")
	}
	if _, ok, _ := s.Handle(StepMsg{Gen: gen, Index: 1}); ok {
		t.Error("tick from cancelled sequence applied")
	}
}

func TestSequencer_EmptySteps(t *testing.T) {
	var s Sequencer
	step, cmd := s.Start(model.OpTraverse, nil)
	if cmd != nil || s.Active() || step.Highlight != NoHighlight {
		t.Errorf("empty sequence should finish immediately")
	}
}

func TestTiming_Builders(t *testing.T) {
	tm := DefaultTiming()

	ins := tm.InsertSteps(42, 6)
	if len(ins) != 1 || ins[0].Insert == nil || *ins[0].Insert != 42 || ins[0].Highlight != 6 || ins[0].Delay != 800*time.Millisecond {
		t.Errorf("InsertSteps = %+v", ins)
	}
	if rm := tm.RemoveSteps(); rm[0].Delay != 500*time.Millisecond || rm[0].Highlight != NoHighlight {
		t.Errorf("RemoveSteps = %+v", rm)
	}
	if cl := tm.ClearSteps(); cl[0].Delay != 300*time.Millisecond {
		t.Errorf("ClearSteps = %+v", cl)
	}

	rnd := tm.RandomSteps([]int{4, 5, 6})
	if len(rnd) != 4 {
		t.Fatalf("RandomSteps len = %d, want 4", len(rnd))
	}
	if rnd[0].Insert != nil || rnd[0].Delay != 300*time.Millisecond {
		t.Errorf("lead-in = %+v", rnd[0])
	}
	for i, want := range []int{4, 5, 6} {
		st := rnd[i+1]
		if st.Insert == nil || *st.Insert != want || st.Highlight != NoHighlight || st.Delay != 200*time.Millisecond {
			t.Errorf("random step %d = %+v", i+1, st)
		}
	}

	tr := tm.TraversalSteps([]tree.Visit{{Slot: 2, Value: 8}})
	if tr[0].Highlight != 2 || tr[0].Delay != 500*time.Millisecond {
		t.Errorf("TraversalSteps = %+v", tr)
	}
	if fl := tm.FlashSteps(0); fl[0].Delay != time.Second {
		t.Errorf("FlashSteps = %+v", fl)
	}
	del := tm.DeleteFirstSteps()
	if len(del) != 2 || del[0].Highlight != 0 || del[0].Commit || del[0].Delay != 500*time.Millisecond {
		t.Errorf("DeleteFirstSteps lead-in = %+v", del)
	}
	if !del[1].Commit || del[1].Highlight != NoHighlight || del[1].Delay != time.Second {
		t.Errorf("DeleteFirstSteps commit = %+v", del[1])
	}
}

func TestSequencer_RoutesByID(t *testing.T) {
	treeSeq := Sequencer{ID: "tree"}
	listSeq := Sequencer{ID: "list"}
	_, cmd := treeSeq.Start(model.OpInsert, []Step{{Highlight: 0, Delay: time.Millisecond}})
	listSeq.Start(model.OpInsert, []Step{{Highlight: 0, Delay: time.Hour}})

	msg, ok := cmd().(StepMsg)
	if !ok {
		t.Fatalf("tick produced %T", msg)
	}
	if msg.ID != "tree" || msg.Gen != 1 || msg.Index != 1 {
		t.Errorf("tick = %+v", msg)
	}
	if _, ok, _ := listSeq.Handle(msg); ok {
		t.Error("list sequencer accepted a tree tick with the same generation")
	}
	if _, ok, _ := treeSeq.Handle(msg); !ok {
		t.Error("tree sequencer rejected its own tick")
	}
}

package script

import (
	"math/rand/v2"

	"github.com/vanderheijden86/dsv/pkg/model"
	"github.com/vanderheijden86/dsv/pkg/tree"
)

// StepResult records the tree after one step.
type StepResult struct {
	Index  int          `json:"index"`
	Op     Op           `json:"op"`
	Tree   string       `json:"tree"`
	Size   int          `json:"size"`
	Order  model.Order  `json:"order,omitempty"`
	Output []int        `json:"output,omitempty"`
	Visits []tree.Visit `json:"-"`
}

// Result is the outcome of a whole script.
type Result struct {
	Script string       `json:"script"`
	Steps  []StepResult `json:"steps"`
	Final  tree.Tree    `json:"-"`
}

// Run replays s starting from start. Random steps without a seed draw from
// rng, or from the global source when rng is nil.
func Run(s Script, start tree.Tree, rng *rand.Rand) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	res := Result{Script: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}
	t := start
	for i, st := range s.Steps {
		sr := StepResult{Index: i + 1, Op: st.Op}
		switch st.Op {
		case OpInsert:
			for _, v := range st.Values {
				t = t.Insert(v)
			}
		case OpRemove:
			n := st.Count
			if n == 0 {
				n = 1
			}
			for range n {
				t = t.RemoveLast()
			}
		case OpClear:
			t = t.Clear()
		case OpRandom:
			r := rng
			if st.Seed != 0 {
				r = rand.New(rand.NewPCG(st.Seed, st.Seed))
			}
			t = tree.New()
			for _, v := range tree.RandomValues(st.Count, st.Max, r) {
				t = t.Insert(v)
			}
		case OpTraverse:
			order, _ := model.ParseOrder(st.Order)
			sr.Order = order
			sr.Visits = t.Traverse(order)
			sr.Output = t.Values(order)
		}
		sr.Tree = t.String()
		sr.Size = t.Len()
		res.Steps = append(res.Steps, sr)
	}
	res.Final = t
	return res, nil
}

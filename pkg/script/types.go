// Package script replays named sequences of tree operations. Scripts are
// YAML documents; a few are built in.
package script

import (
	"fmt"

	"github.com/vanderheijden86/dsv/pkg/model"
)

// Op names a script step.
type Op string

const (
	OpInsert   Op = "insert"
	OpRemove   Op = "remove"
	OpClear    Op = "clear"
	OpRandom   Op = "random"
	OpTraverse Op = "traverse"
)

// Script is a named list of steps.
type Script struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op     Op     `yaml:"op" json:"op"`
	Values []int  `yaml:"values,omitempty" json:"values,omitempty"` // insert
	Count  int    `yaml:"count,omitempty" json:"count,omitempty"`   // remove (default 1), random
	Max    int    `yaml:"max,omitempty" json:"max,omitempty"`       // random
	Seed   uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`     // random
	Order  string `yaml:"order,omitempty" json:"order,omitempty"`   // traverse
}

// Validate checks that every step is well formed.
func (s Script) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("script name cannot be empty")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("script %s: no steps", s.Name)
	}
	for i, st := range s.Steps {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("script %s: step %d: %w", s.Name, i+1, err)
		}
	}
	return nil
}

// Validate checks a single step.
func (st Step) Validate() error {
	switch st.Op {
	case OpInsert:
		if len(st.Values) == 0 {
			return fmt.Errorf("insert needs values")
		}
	case OpRemove:
		if st.Count < 0 {
			return fmt.Errorf("remove count cannot be negative")
		}
	case OpClear:
	case OpRandom:
		if st.Count < 0 || st.Count > 1000 {
			return fmt.Errorf("random count must be between 0 and 1000, got %d", st.Count)
		}
		if st.Max < 0 {
			return fmt.Errorf("random max cannot be negative")
		}
	case OpTraverse:
		if _, err := model.ParseOrder(st.Order); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

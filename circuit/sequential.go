//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/markkurossi/fhesim/logger"
)

// Runner drives repeated evaluation passes over a circuit, carrying
// register state across clock cycles. The level partition is computed
// once and reused for every cycle.
type Runner[V any] struct {
	c      *Circuit
	ops    Ops[V]
	store  *Store[V]
	inputs map[string]V
}

// NewRunner creates a sequential runner for the circuit. Registered
// wires are seeded with the backend's zero value as their reset
// state; SetRegister overrides individual wires before the first run.
func NewRunner[V any](c *Circuit, ops Ops[V]) (*Runner[V], error) {
	r := &Runner[V]{
		c:     c,
		ops:   ops,
		store: NewStore[V](c),
	}
	for _, w := range c.Registered() {
		zero, err := ops.Zero()
		if err != nil {
			return nil, err
		}
		if err := r.store.SetRegister(c.Name(w), zero); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SetInputs sets the primary input values applied at the start of
// every cycle. The map may be replaced between runs for per-cycle
// stimuli.
func (r *Runner[V]) SetInputs(inputs map[string]V) {
	r.inputs = inputs
}

// SetRegister overrides the reset value of a registered wire.
func (r *Runner[V]) SetRegister(name string, v V) error {
	return r.store.SetRegister(name, v)
}

// Run performs cycles evaluation passes and returns the primary
// output values of each cycle. After every pass the staged register
// values are committed so they become visible at the start of the
// next cycle.
func (r *Runner[V]) Run(cycles int) ([]map[string]V, error) {
	if cycles < 1 {
		return nil, fmt.Errorf("invalid cycle count %d", cycles)
	}
	log := logger.Logger()

	var result []map[string]V
	for cycle := 0; cycle < cycles; cycle++ {
		for name, v := range r.inputs {
			if err := r.store.Set(name, v); err != nil {
				return nil, err
			}
		}
		if err := Eval(r.c, r.ops, r.store); err != nil {
			return nil, fmt.Errorf("cycle %d: %w", cycle, err)
		}
		outputs, err := r.store.Outputs()
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", cycle, err)
		}
		result = append(result, outputs)
		log.Debug().Int("cycle", cycle).Msg("cycle done")

		r.store.Commit()
	}
	return result, nil
}

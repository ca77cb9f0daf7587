//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"
)

// ErrUninitialized is returned when a gate reads a wire that no
// earlier gate or input assignment has written.
var ErrUninitialized = errors.New("uninitialized wire")

// Ops is the value backend contract of the evaluator. The same
// contract is implemented over plaintext values for shadow evaluation
// and over ciphertexts for homomorphic evaluation; the evaluator is
// specialized for one backend when the run is configured.
//
// Fork returns a backend handle for one worker goroutine. Backends
// whose operations share mutable scratch state return a copy; the
// handles share the read-only key material.
type Ops[V any] interface {
	Fork() Ops[V]
	Zero() (V, error)
	One() (V, error)
	Not(a V) (V, error)
	Buf(a V) (V, error)
	And(a, b V) (V, error)
	Nand(a, b V) (V, error)
	Or(a, b V) (V, error)
	Nor(a, b V) (V, error)
	Xor(a, b V) (V, error)
	Xnor(a, b V) (V, error)
	Mux(sel, a, b V) (V, error)
	Add(a, b V) (V, error)
	Sub(a, b V) (V, error)
	Mul(a, b V) (V, error)
}

// Store holds the wire values of one evaluation pass. Registered
// wires have an additional staged next-cycle value which Commit moves
// into view at the cycle boundary.
type Store[V any] struct {
	c        *Circuit
	values   []V
	next     []V
	assigned *bitset.BitSet
}

// NewStore creates a wire-value store for the circuit.
func NewStore[V any](c *Circuit) *Store[V] {
	return &Store[V]{
		c:        c,
		values:   make([]V, c.NumWires()),
		next:     make([]V, c.NumWires()),
		assigned: bitset.New(uint(c.NumWires())),
	}
}

// Set assigns the value of the named primary input wire.
func (s *Store[V]) Set(name string, v V) error {
	w, ok := s.c.Wire(name)
	if !ok {
		return fmt.Errorf("unknown wire: %s", name)
	}
	if !s.c.IsInput(w) {
		return fmt.Errorf("wire %s is not a primary input", name)
	}
	s.values[w.ID()] = v
	s.assigned.Set(uint(w))
	return nil
}

// SetRegister assigns the visible value of a registered wire. The
// sequential runner uses this to seed reset state before cycle 0.
func (s *Store[V]) SetRegister(name string, v V) error {
	w, ok := s.c.Wire(name)
	if !ok {
		return fmt.Errorf("unknown wire: %s", name)
	}
	if !s.c.IsRegistered(w) {
		return fmt.Errorf("wire %s is not registered", name)
	}
	s.values[w.ID()] = v
	s.assigned.Set(uint(w))
	return nil
}

// Get returns the value of the named wire.
func (s *Store[V]) Get(name string) (V, error) {
	var none V
	w, ok := s.c.Wire(name)
	if !ok {
		return none, fmt.Errorf("unknown wire: %s", name)
	}
	return s.get(w)
}

func (s *Store[V]) get(w Wire) (V, error) {
	if !s.assigned.Test(uint(w)) {
		var none V
		return none, fmt.Errorf("wire %s: %w", s.c.Name(w), ErrUninitialized)
	}
	return s.values[w.ID()], nil
}

// Outputs snapshots the primary output values.
func (s *Store[V]) Outputs() (map[string]V, error) {
	result := make(map[string]V)
	for _, w := range s.c.Outputs {
		v, err := s.get(w)
		if err != nil {
			return nil, err
		}
		result[s.c.Name(w)] = v
	}
	return result, nil
}

// Commit ends the cycle: staged next-values of registered wires
// become visible and all other assignments are dropped. Primary
// inputs are re-applied by the caller before the next pass.
func (s *Store[V]) Commit() {
	s.assigned.ClearAll()
	for _, w := range s.c.Registered() {
		s.values[w.ID()] = s.next[w.ID()]
		s.assigned.Set(uint(w))
	}
}

// Eval evaluates the circuit against the store. Gates are evaluated
// level by level; the gates of one level are independent and are
// evaluated concurrently, with a barrier before the next level
// starts.
func Eval[V any](c *Circuit, ops Ops[V], s *Store[V]) error {
	workers := runtime.NumCPU()

	for _, level := range c.Levels() {
		if len(level) == 1 {
			if err := evalGate(c, ops, s, level[0]); err != nil {
				return err
			}
		} else {
			n := workers
			if len(level) < n {
				n = len(level)
			}
			var g errgroup.Group
			for i := 0; i < n; i++ {
				gates := level[i*len(level)/n : (i+1)*len(level)/n]
				fork := ops.Fork()
				g.Go(func() error {
					for _, idx := range gates {
						if err := evalGate(c, fork, s, idx); err != nil {
							return err
						}
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
		}

		// Mark the level's outputs resolved after the barrier: the
		// assigned set is shared and must not be written
		// concurrently.
		for _, idx := range level {
			gate := &c.Gates[idx]
			if gate.Op != DFF {
				s.assigned.Set(uint(gate.Output))
			}
		}
	}
	return nil
}

func evalGate[V any](c *Circuit, ops Ops[V], s *Store[V], idx int) error {
	gate := &c.Gates[idx]

	var in [3]V
	for i, w := range gate.Inputs {
		v, err := s.get(w)
		if err != nil {
			return err
		}
		in[i] = v
	}

	var out V
	var err error

	switch gate.Op {
	case XOR:
		out, err = ops.Xor(in[0], in[1])
	case XNOR:
		out, err = ops.Xnor(in[0], in[1])
	case AND:
		out, err = ops.And(in[0], in[1])
	case NAND:
		out, err = ops.Nand(in[0], in[1])
	case OR:
		out, err = ops.Or(in[0], in[1])
	case NOR:
		out, err = ops.Nor(in[0], in[1])
	case NOT:
		out, err = ops.Not(in[0])
	case BUF:
		out, err = ops.Buf(in[0])
	case MUX:
		out, err = ops.Mux(in[0], in[1], in[2])
	case ADD:
		out, err = ops.Add(in[0], in[1])
	case SUB:
		out, err = ops.Sub(in[0], in[1])
	case MULT:
		out, err = ops.Mul(in[0], in[1])
	case DFF:
		out = in[0]
	case ZERO:
		out, err = ops.Zero()
	case ONE:
		out, err = ops.One()
	default:
		err = fmt.Errorf("invalid operation %s", gate.Op)
	}
	if err != nil {
		return fmt.Errorf("gate %s: %w", gate, err)
	}

	if gate.Op == DFF {
		// The combinational result is staged as the wire's
		// next-cycle value; the visible value stays whatever the
		// previous commit (or the reset seed) left in place.
		s.next[gate.Output.ID()] = out
	} else {
		s.values[gate.Output.ID()] = out
	}
	return nil
}

//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements the netlist model and its homomorphic
// evaluation: the gate and wire arena, dependency levelization, the
// level-parallel evaluator, and the sequential runner that threads
// register state across clock cycles.
package circuit

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Operation specifies gate function.
type Operation byte

// Gate functions.
const (
	XOR Operation = iota
	XNOR
	AND
	NAND
	OR
	NOR
	NOT
	BUF
	MUX
	ADD
	SUB
	MULT
	DFF
	ZERO
	ONE
)

// Stats holds gate counts by operation.
type Stats [ONE + 1]int

func (s Stats) String() string {
	var str string
	for op := XOR; op <= ONE; op++ {
		if s[op] == 0 {
			continue
		}
		if len(str) > 0 {
			str += " "
		}
		str += fmt.Sprintf("%s=%d", op, s[op])
	}
	return str
}

var opNames = map[Operation]string{
	XOR:  "XOR",
	XNOR: "XNOR",
	AND:  "AND",
	NAND: "NAND",
	OR:   "OR",
	NOR:  "NOR",
	NOT:  "NOT",
	BUF:  "BUF",
	MUX:  "MUX",
	ADD:  "ADD",
	SUB:  "SUB",
	MULT: "MULT",
	DFF:  "DFF",
	ZERO: "ZERO",
	ONE:  "ONE",
}

var opArities = map[Operation]int{
	XOR:  2,
	XNOR: 2,
	AND:  2,
	NAND: 2,
	OR:   2,
	NOR:  2,
	NOT:  1,
	BUF:  1,
	MUX:  3,
	ADD:  2,
	SUB:  2,
	MULT: 2,
	DFF:  1,
	ZERO: 0,
	ONE:  0,
}

func (op Operation) String() string {
	name, ok := opNames[op]
	if !ok {
		return fmt.Sprintf("{Operation %d}", op)
	}
	return name
}

// Arity returns the number of input wires the operation takes.
func (op Operation) Arity() int {
	return opArities[op]
}

// ParseOperation parses the operation name.
func ParseOperation(name string) (Operation, error) {
	for op, n := range opNames {
		if n == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("invalid operation '%s'", name)
}

// Wire specifies a wire ID, an index into the circuit's wire arena.
type Wire int32

// ID returns the wire ID as integer.
func (w Wire) ID() int {
	return int(w)
}

// Gate specifies a gate: an operation with its input and output wire
// references. A DFF gate's output wire is registered: the value
// computed from its input becomes visible at the start of the next
// cycle.
type Gate struct {
	Op     Operation
	Inputs []Wire
	Output Wire
}

func (g Gate) String() string {
	return fmt.Sprintf("%v %v %v", g.Inputs, g.Op, g.Output)
}

// Circuit specifies a gate-level netlist. It is immutable once built;
// Builder and Parse are the only constructors and both validate the
// structure before handing the circuit out.
type Circuit struct {
	Gates   []Gate
	Inputs  []Wire
	Outputs []Wire
	Stats   Stats

	wires   []string
	wireIDs map[string]Wire

	// driver[w] is the index of the gate driving wire w, or -1 for
	// wires no gate drives (primary inputs).
	driver []int

	dffs   []int
	regs   *bitset.BitSet
	inputs *bitset.BitSet

	levels [][]int
}

func (c *Circuit) String() string {
	return fmt.Sprintf("#gates=%d (%s) #w=%d", len(c.Gates), c.Stats,
		len(c.wires))
}

// NumWires returns the number of wires in the circuit.
func (c *Circuit) NumWires() int {
	return len(c.wires)
}

// Wire resolves a wire name to its ID.
func (c *Circuit) Wire(name string) (Wire, bool) {
	w, ok := c.wireIDs[name]
	return w, ok
}

// Name returns the name of the wire.
func (c *Circuit) Name(w Wire) string {
	return c.wires[w.ID()]
}

// IsInput tests if the wire is a primary input.
func (c *Circuit) IsInput(w Wire) bool {
	return c.inputs.Test(uint(w))
}

// IsRegistered tests if the wire is the output of a DFF gate.
func (c *Circuit) IsRegistered(w Wire) bool {
	return c.regs.Test(uint(w))
}

// Registered returns the registered wires of the circuit.
func (c *Circuit) Registered() []Wire {
	var result []Wire
	for _, idx := range c.dffs {
		result = append(result, c.Gates[idx].Output)
	}
	return result
}

// Dump prints a debug dump of the circuit.
func (c *Circuit) Dump() {
	fmt.Printf("circuit %s\n", c)
	for id, gate := range c.Gates {
		fmt.Printf("%04d\t%s\n", id, gate)
	}
}

// StructuralError describes an invalid netlist: an undriven or
// multiply driven wire, or a cycle through combinational gates.
type StructuralError struct {
	Wire string
	Msg  string
}

func (e *StructuralError) Error() string {
	if len(e.Wire) > 0 {
		return fmt.Sprintf("wire %s: %s", e.Wire, e.Msg)
	}
	return e.Msg
}

// validate checks the circuit structure: every wire is driven by
// exactly one gate or is a primary input, and the combinational
// subgraph (DFF output edges removed) is acyclic.
func (c *Circuit) validate() error {
	for idx, g := range c.Gates {
		if len(g.Inputs) != g.Op.Arity() {
			return &StructuralError{
				Wire: c.Name(g.Output),
				Msg: fmt.Sprintf("%s gate with %d inputs",
					g.Op, len(g.Inputs)),
			}
		}
		if c.IsInput(g.Output) {
			return &StructuralError{
				Wire: c.Name(g.Output),
				Msg:  "gate drives a primary input",
			}
		}
		if c.driver[g.Output.ID()] != idx {
			return &StructuralError{
				Wire: c.Name(g.Output),
				Msg:  "wire has multiple drivers",
			}
		}
	}
	for id, name := range c.wires {
		if c.driver[id] < 0 && !c.inputs.Test(uint(id)) {
			return &StructuralError{
				Wire: name,
				Msg:  "wire is not driven by any gate or primary input",
			}
		}
	}
	return c.checkAcyclic()
}

// checkAcyclic runs a DFS over the combinational gates. Registered
// edges are delayed by a cycle so they cannot form a combinational
// cycle; the walk never crosses a DFF output.
func (c *Circuit) checkAcyclic() error {
	done := bitset.New(uint(len(c.Gates)))
	onPath := bitset.New(uint(len(c.Gates)))

	var visit func(idx int) error
	visit = func(idx int) error {
		if done.Test(uint(idx)) {
			return nil
		}
		if onPath.Test(uint(idx)) {
			return &StructuralError{
				Wire: c.Name(c.Gates[idx].Output),
				Msg:  "combinational cycle",
			}
		}
		onPath.Set(uint(idx))
		for _, in := range c.Gates[idx].Inputs {
			prev := c.driver[in.ID()]
			if prev < 0 || c.Gates[prev].Op == DFF {
				continue
			}
			if err := visit(prev); err != nil {
				return err
			}
		}
		onPath.Clear(uint(idx))
		done.Set(uint(idx))
		return nil
	}

	for idx := range c.Gates {
		if err := visit(idx); err != nil {
			return err
		}
	}
	return nil
}

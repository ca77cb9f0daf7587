//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"github.com/bits-and-blooms/bitset"
)

// Builder constructs circuits. The external netlist parser hands its
// gates and primary I/O declarations over through this interface;
// Build validates the structure and freezes the circuit.
type Builder struct {
	c *Circuit
}

// NewBuilder creates a new circuit builder.
func NewBuilder() *Builder {
	return &Builder{
		c: &Circuit{
			wireIDs: make(map[string]Wire),
		},
	}
}

func (b *Builder) wire(name string) Wire {
	w, ok := b.c.wireIDs[name]
	if ok {
		return w
	}
	w = Wire(len(b.c.wires))
	b.c.wires = append(b.c.wires, name)
	b.c.wireIDs[name] = w
	return w
}

// Input declares primary input wires.
func (b *Builder) Input(names ...string) {
	for _, name := range names {
		b.c.Inputs = append(b.c.Inputs, b.wire(name))
	}
}

// Output declares primary output wires.
func (b *Builder) Output(names ...string) {
	for _, name := range names {
		b.c.Outputs = append(b.c.Outputs, b.wire(name))
	}
}

// Gate adds a gate driving the output wire from the input wires.
func (b *Builder) Gate(op Operation, output string, inputs ...string) {
	gate := Gate{
		Op:     op,
		Output: b.wire(output),
	}
	for _, in := range inputs {
		gate.Inputs = append(gate.Inputs, b.wire(in))
	}
	b.c.Gates = append(b.c.Gates, gate)
	b.c.Stats[op]++
}

// Build validates the circuit and returns it. The builder must not be
// used after Build.
func (b *Builder) Build() (*Circuit, error) {
	c := b.c
	b.c = nil

	numWires := uint(len(c.wires))
	c.inputs = bitset.New(numWires)
	for _, w := range c.Inputs {
		c.inputs.Set(uint(w))
	}

	c.driver = make([]int, len(c.wires))
	for i := range c.driver {
		c.driver[i] = -1
	}
	c.regs = bitset.New(numWires)
	for idx, g := range c.Gates {
		if c.driver[g.Output.ID()] < 0 {
			c.driver[g.Output.ID()] = idx
		}
		if g.Op == DFF {
			c.dffs = append(c.dffs, idx)
			c.regs.Set(uint(g.Output))
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func adderCircuit(t *testing.T) *Circuit {
	b := NewBuilder()
	b.Input("a", "b", "cin")
	b.Output("sum", "cout")
	b.Gate(XOR, "t1", "a", "b")
	b.Gate(XOR, "sum", "t1", "cin")
	b.Gate(AND, "t2", "a", "b")
	b.Gate(AND, "t3", "t1", "cin")
	b.Gate(OR, "cout", "t2", "t3")

	c, err := b.Build()
	require.NoError(t, err)
	return c
}

func TestLevels(t *testing.T) {
	c := adderCircuit(t)
	levels := c.Levels()

	// A valid topological order: every gate's level strictly
	// exceeds the level of its combinational producers.
	gateLevel := make(map[int]int)
	for l, level := range levels {
		for _, idx := range level {
			gateLevel[idx] = l
		}
	}
	require.Equal(t, len(c.Gates), len(gateLevel))

	for idx, g := range c.Gates {
		for _, in := range g.Inputs {
			prev := c.driver[in.ID()]
			if prev < 0 || c.Gates[prev].Op == DFF {
				continue
			}
			require.Greater(t, gateLevel[idx], gateLevel[prev])
		}
	}

	// t1, t2 at level 0; sum, t3 at level 1; cout at level 2.
	require.Equal(t, 3, len(levels))
	require.Equal(t, 2, len(levels[0]))
	require.Equal(t, 2, len(levels[1]))
	require.Equal(t, 1, len(levels[2]))
}

func TestLevelsIdempotent(t *testing.T) {
	c := adderCircuit(t)
	require.Equal(t, c.Levels(), c.Levels())

	// An identical circuit levelizes identically.
	require.Equal(t, c.Levels(), adderCircuit(t).Levels())
}

func TestLevelsRegistered(t *testing.T) {
	// The registered wire resolves at level 0: its consumer does
	// not wait for the gate that computes the next-state value.
	b := NewBuilder()
	b.Input("a")
	b.Output("y")
	b.Gate(AND, "d", "a", "q")
	b.Gate(DFF, "q", "d")
	b.Gate(XOR, "y", "a", "q")

	c, err := b.Build()
	require.NoError(t, err)

	levels := c.Levels()
	require.Equal(t, 2, len(levels))

	gateLevel := make(map[int]int)
	for l, level := range levels {
		for _, idx := range level {
			gateLevel[idx] = l
		}
	}
	// AND and XOR read only level-0 wires; DFF waits for its D
	// input from the AND gate.
	require.Equal(t, 0, gateLevel[0])
	require.Equal(t, 1, gateLevel[1])
	require.Equal(t, 0, gateLevel[2])
}

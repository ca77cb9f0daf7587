//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	b.Input("a", "b")
	b.Output("y")
	b.Gate(AND, "y", "a", "b")

	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, len(c.Gates))
	require.Equal(t, 3, c.NumWires())
	require.Equal(t, 1, c.Stats[AND])

	w, ok := c.Wire("a")
	require.True(t, ok)
	require.True(t, c.IsInput(w))

	w, ok = c.Wire("y")
	require.True(t, ok)
	require.False(t, c.IsInput(w))
	require.False(t, c.IsRegistered(w))
}

func TestBuildUndrivenWire(t *testing.T) {
	b := NewBuilder()
	b.Input("a")
	b.Output("y")
	b.Gate(AND, "y", "a", "b")

	_, err := b.Build()
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "b", serr.Wire)
}

func TestBuildMultipleDrivers(t *testing.T) {
	b := NewBuilder()
	b.Input("a", "b")
	b.Output("y")
	b.Gate(AND, "y", "a", "b")
	b.Gate(OR, "y", "a", "b")

	_, err := b.Build()
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "y", serr.Wire)
}

func TestBuildDrivenInput(t *testing.T) {
	b := NewBuilder()
	b.Input("a", "b")
	b.Output("b")
	b.Gate(NOT, "b", "a")

	_, err := b.Build()
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
}

func TestBuildCombinationalCycle(t *testing.T) {
	// Gate feeding back into its own input with no intervening
	// register must be rejected at build time.
	b := NewBuilder()
	b.Input("a")
	b.Output("y")
	b.Gate(AND, "y", "a", "y")

	_, err := b.Build()
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	require.Contains(t, serr.Msg, "cycle")
}

func TestBuildLongerCycle(t *testing.T) {
	b := NewBuilder()
	b.Input("a")
	b.Output("y")
	b.Gate(AND, "x", "a", "y")
	b.Gate(NOT, "y", "x")

	_, err := b.Build()
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
}

func TestBuildRegisteredCycle(t *testing.T) {
	// The same feedback loop through a DFF is valid: the registered
	// edge is delayed by a cycle.
	b := NewBuilder()
	b.Output("q")
	b.Gate(NOT, "d", "q")
	b.Gate(DFF, "q", "d")

	c, err := b.Build()
	require.NoError(t, err)

	q, ok := c.Wire("q")
	require.True(t, ok)
	require.True(t, c.IsRegistered(q))
	require.Equal(t, []Wire{q}, c.Registered())
}

func TestBuildArity(t *testing.T) {
	b := NewBuilder()
	b.Input("a")
	b.Output("y")
	b.Gate(AND, "y", "a")

	_, err := b.Build()
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
}

func TestParse(t *testing.T) {
	data := `
# Full adder.
INPUT a b cin
OUTPUT sum cout
XOR t1 a b
XOR sum t1 cin
AND t2 a b
AND t3 t1 cin
OR cout t2 t3
`
	c, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 5, len(c.Gates))
	require.Equal(t, 2, c.Stats[XOR])
	require.Equal(t, 2, c.Stats[AND])
	require.Equal(t, 1, c.Stats[OR])
	require.Equal(t, 3, len(c.Inputs))
	require.Equal(t, 2, len(c.Outputs))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("FROB y a b\n"))
	require.Error(t, err)

	_, err = Parse(strings.NewReader("INPUT a\nOUTPUT y\nAND y a\n"))
	require.Error(t, err)

	// Undriven wire is caught by validation.
	_, err = Parse(strings.NewReader("INPUT a\nOUTPUT y\nAND y a b\n"))
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
}

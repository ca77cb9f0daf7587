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

	"github.com/markkurossi/fhesim/ptxt"
)

func TestReadWireFile(t *testing.T) {
	data := `a,1
b,0
c,true
`
	values, err := ReadWireFile(strings.NewReader(data), ptxt.Bool)
	require.NoError(t, err)
	require.Equal(t, 3, len(values))
	require.True(t, values["a"].Bit())
	require.False(t, values["b"].Bit())
	require.True(t, values["c"].Bit())
}

func TestReadWireFileArithmetic(t *testing.T) {
	data := `a,200
b,100
`
	values, err := ReadWireFile(strings.NewReader(data), ptxt.U8)
	require.NoError(t, err)
	require.Equal(t, uint64(200), values["a"].Uint64())
	require.Equal(t, uint64(100), values["b"].Uint64())
}

func TestReadWireFileLenient(t *testing.T) {
	// A malformed value token falls back to the type's zero instead
	// of aborting the run.
	values, err := ReadWireFile(strings.NewReader("a,maybe\nb,1\n"),
		ptxt.Bool)
	require.NoError(t, err)
	require.False(t, values["a"].Bit())
	require.True(t, values["b"].Bit())

	values, err = ReadWireFile(strings.NewReader("a,12bad\nb,7\n"), ptxt.U8)
	require.NoError(t, err)
	require.Equal(t, uint64(0), values["a"].Uint64())
	require.Equal(t, uint64(7), values["b"].Uint64())
}

func TestParseWirePairs(t *testing.T) {
	values, err := ParseWirePairs([]string{"a=1", "b=false"}, ptxt.Bool)
	require.NoError(t, err)
	require.True(t, values["a"].Bit())
	require.False(t, values["b"].Bit())

	_, err = ParseWirePairs([]string{"a"}, ptxt.Bool)
	require.Error(t, err)
}

func TestWriteWireFile(t *testing.T) {
	var sb strings.Builder
	err := WriteWireFile(&sb, map[string]ptxt.Value{
		"b":   ptxt.New(ptxt.U8, 44),
		"a":   ptxt.New(ptxt.U8, 7),
		"out": ptxt.New(ptxt.U8, 255),
	})
	require.NoError(t, err)
	require.Equal(t, "a,7\nb,44\nout,255\n", sb.String())
}

func TestWireFileRoundTrip(t *testing.T) {
	values := map[string]ptxt.Value{
		"x": ptxt.New(ptxt.U16, 0xffff),
		"y": ptxt.New(ptxt.U16, 0),
	}
	var sb strings.Builder
	require.NoError(t, WriteWireFile(&sb, values))

	parsed, err := ReadWireFile(strings.NewReader(sb.String()), ptxt.U16)
	require.NoError(t, err)
	require.Equal(t, 2, len(parsed))
	for name, v := range values {
		require.True(t, v.Equal(parsed[name]), "wire %s", name)
	}
}

func TestInputValues(t *testing.T) {
	c := andCircuit(t)

	_, err := c.InputValues(map[string]ptxt.Value{
		"nosuch": ptxt.NewBool(true),
	}, ptxt.Bool)
	require.Error(t, err)

	// Internal wires cannot be driven from the input map.
	_, err = c.InputValues(map[string]ptxt.Value{
		"y": ptxt.NewBool(true),
	}, ptxt.Bool)
	require.Error(t, err)
}

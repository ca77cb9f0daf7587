//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package ptxt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for name, typ := range map[string]Type{
		"bool": Bool,
		"u8":   U8,
		"u16":  U16,
		"u32":  U32,
		"u64":  U64,
		"u128": U128,
	} {
		parsed, err := ParseType(name)
		require.NoError(t, err)
		require.Equal(t, typ, parsed)
	}
	_, err := ParseType("i32")
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	for _, token := range []string{"1", "t", "true"} {
		v, err := Parse(Bool, token)
		require.NoError(t, err)
		require.True(t, v.Bit())
	}
	for _, token := range []string{"0", "f", "false"} {
		v, err := Parse(Bool, token)
		require.NoError(t, err)
		require.False(t, v.Bit())
	}
	_, err := Parse(Bool, "yes")
	require.Error(t, err)

	v, err := Parse(U8, "200")
	require.NoError(t, err)
	require.Equal(t, uint64(200), v.Uint64())

	v, err = Parse(U16, "0xffff")
	require.NoError(t, err)
	require.Equal(t, uint64(0xffff), v.Uint64())

	// No implicit truncation.
	_, err = Parse(U8, "256")
	require.Error(t, err)
	_, err = Parse(U8, "-1")
	require.Error(t, err)

	v, err = Parse(U128, "340282366920938463463374607431768211455")
	require.NoError(t, err)
	require.Equal(t, 128, v.Int.BitLen())
}

func TestLogic(t *testing.T) {
	tt := NewBool(true)
	ff := NewBool(false)

	tests := []struct {
		op       func(a, b Value) (Value, error)
		expected [4]bool
	}{
		{Value.And, [4]bool{false, false, false, true}},
		{Value.Or, [4]bool{false, true, true, true}},
		{Value.Xor, [4]bool{false, true, true, false}},
		{Value.Nand, [4]bool{true, true, true, false}},
		{Value.Nor, [4]bool{true, false, false, false}},
		{Value.Xnor, [4]bool{true, false, false, true}},
	}
	operands := [4][2]Value{{ff, ff}, {ff, tt}, {tt, ff}, {tt, tt}}

	for _, test := range tests {
		for idx, ops := range operands {
			r, err := test.op(ops[0], ops[1])
			require.NoError(t, err)
			require.Equal(t, test.expected[idx], r.Bit())
		}
	}

	r, err := tt.Not()
	require.NoError(t, err)
	require.False(t, r.Bit())

	r, err = ff.Buf()
	require.NoError(t, err)
	require.False(t, r.Bit())
}

func TestLogicBoolOnly(t *testing.T) {
	// Logic gates are boolean-mode only in both backends; arithmetic
	// widths reach logic through bit-level boolean subcircuits.
	a := New(U8, 0b11001100)
	b := New(U8, 0b10101010)

	_, err := a.And(b)
	require.Error(t, err)
	_, err = a.Or(b)
	require.Error(t, err)
	_, err = a.Xor(b)
	require.Error(t, err)
	_, err = a.Not()
	require.Error(t, err)

	// Buf passes any type through.
	r, err := a.Buf()
	require.NoError(t, err)
	require.Equal(t, uint64(0b11001100), r.Uint64())
}

func TestArithmetic(t *testing.T) {
	// Unsigned 8-bit wraparound.
	r, err := New(U8, 200).Add(New(U8, 100))
	require.NoError(t, err)
	require.Equal(t, uint64(44), r.Uint64())

	r, err = New(U8, 5).Sub(New(U8, 10))
	require.NoError(t, err)
	require.Equal(t, uint64(251), r.Uint64())

	r, err = New(U8, 16).Mul(New(U8, 17))
	require.NoError(t, err)
	require.Equal(t, uint64(16), r.Uint64())

	r, err = New(U64, 1<<63).Add(New(U64, 1<<63))
	require.NoError(t, err)
	require.Equal(t, uint64(0), r.Uint64())

	// Arithmetic needs an integer type.
	_, err = NewBool(true).Add(NewBool(true))
	require.Error(t, err)
}

func TestMux(t *testing.T) {
	a := New(U8, 11)
	b := New(U8, 22)

	r, err := New(U8, 1).Mux(a, b)
	require.NoError(t, err)
	require.Equal(t, uint64(11), r.Uint64())

	r, err = New(U8, 0).Mux(a, b)
	require.NoError(t, err)
	require.Equal(t, uint64(22), r.Uint64())

	// A selector outside {0, 1} blends the operands as
	// b + sel*(a-b), matching the homomorphic evaluation.
	r, err = New(U8, 2).Mux(a, b)
	require.NoError(t, err)
	require.Equal(t, uint64(0), r.Uint64())

	sel, err := NewBool(true).Mux(NewBool(false), NewBool(true))
	require.NoError(t, err)
	require.False(t, sel.Bit())
}

func TestFaults(t *testing.T) {
	var none Value
	require.True(t, none.IsNone())

	_, err := none.And(NewBool(true))
	require.ErrorIs(t, err, ErrNone)
	_, err = NewBool(true).Xor(none)
	require.ErrorIs(t, err, ErrNone)
	_, err = none.Not()
	require.ErrorIs(t, err, ErrNone)

	_, err = New(U8, 1).Add(New(U16, 1))
	require.Error(t, err)
	_, err = NewBool(true).And(New(U8, 1))
	require.Error(t, err)
}

//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

// Package ptxt implements the plaintext side of the dual-mode value
// abstraction: a closed set of value variants (boolean and unsigned
// integers of fixed widths) with logic and arithmetic operations whose
// semantics match their homomorphic counterparts exactly.
package ptxt

import (
	"fmt"
	"math/big"
)

// Type specifies the value type of a run. The type is fixed for the
// whole run; mixing types in one operation is a fault.
type Type byte

// Value types.
const (
	Bool Type = iota
	U8
	U16
	U32
	U64
	U128
	None
)

var types = map[string]Type{
	"bool": Bool,
	"u8":   U8,
	"u16":  U16,
	"u32":  U32,
	"u64":  U64,
	"u128": U128,
}

// ParseType parses the type name.
func ParseType(name string) (Type, error) {
	t, ok := types[name]
	if !ok {
		return None, fmt.Errorf("unknown value type: %s", name)
	}
	return t, nil
}

func (t Type) String() string {
	switch t {
	case Bool:
		return "bool"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case U128:
		return "u128"
	case None:
		return "none"
	default:
		return fmt.Sprintf("{Type %d}", t)
	}
}

// Bits returns the width of the type in bits.
func (t Type) Bits() int {
	switch t {
	case Bool:
		return 1
	case U8:
		return 8
	case U16:
		return 16
	case U32:
		return 32
	case U64:
		return 64
	case U128:
		return 128
	default:
		return 0
	}
}

var masks = func() [None]*big.Int {
	var m [None]*big.Int
	for t := Bool; t < None; t++ {
		mask := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits()))
		m[t] = mask.Sub(mask, big.NewInt(1))
	}
	return m
}()

// Value is a plaintext scalar of the run's value type. The zero value
// is the None variant: it marks a wire that has not been assigned yet,
// and every operation on it is a fault.
type Value struct {
	Typ Type
	Int *big.Int
}

// ErrNone is returned when an operation is applied to an
// uninitialized (None) value.
var ErrNone = fmt.Errorf("operation on None value")

// NewBool creates a boolean value.
func NewBool(v bool) Value {
	i := big.NewInt(0)
	if v {
		i.SetInt64(1)
	}
	return Value{
		Typ: Bool,
		Int: i,
	}
}

// New creates a value of type t from v, reduced modulo 2^bits.
func New(t Type, v uint64) Value {
	return FromBig(t, new(big.Int).SetUint64(v))
}

// FromBig creates a value of type t from i, reduced modulo 2^bits.
// The argument is not retained.
func FromBig(t Type, i *big.Int) Value {
	if t == None {
		return Value{}
	}
	return Value{
		Typ: t,
		Int: new(big.Int).And(i, masks[t]),
	}
}

// Zero returns the zero (false) value of type t.
func Zero(t Type) Value {
	return New(t, 0)
}

// One returns the one (true) value of type t.
func One(t Type) Value {
	return New(t, 1)
}

// Parse parses the textual token as a value of type t. Boolean values
// accept 0/1/f/t/false/true; integer values accept unsigned literals
// in any base the Go syntax supports. A literal wider than the type is
// an error: no implicit truncation is done.
func Parse(t Type, token string) (Value, error) {
	if t == Bool {
		switch token {
		case "0", "f", "false":
			return NewBool(false), nil
		case "1", "t", "true":
			return NewBool(true), nil
		default:
			return Value{}, fmt.Errorf("invalid bool constant: %s", token)
		}
	}
	i := new(big.Int)
	if _, ok := i.SetString(token, 0); !ok {
		return Value{}, fmt.Errorf("invalid %s constant: %s", t, token)
	}
	if i.Sign() < 0 || i.BitLen() > t.Bits() {
		return Value{}, fmt.Errorf("constant %s out of range for %s", token, t)
	}
	return Value{
		Typ: t,
		Int: i,
	}, nil
}

// IsNone tests if the value is uninitialized.
func (v Value) IsNone() bool {
	return v.Typ == None || v.Int == nil
}

// Bit returns the value as a boolean.
func (v Value) Bit() bool {
	return !v.IsNone() && v.Int.Sign() != 0
}

// Uint64 returns the value as an uint64. The result is undefined for
// values wider than 64 bits.
func (v Value) Uint64() uint64 {
	if v.IsNone() {
		return 0
	}
	return v.Int.Uint64()
}

// Equal tests if the values are equal.
func (v Value) Equal(o Value) bool {
	if v.IsNone() || o.IsNone() {
		return v.IsNone() && o.IsNone()
	}
	return v.Typ == o.Typ && v.Int.Cmp(o.Int) == 0
}

func (v Value) String() string {
	if v.IsNone() {
		return "None"
	}
	return v.Int.String()
}

func (v Value) check(o Value) error {
	if v.IsNone() || o.IsNone() {
		return ErrNone
	}
	if v.Typ != o.Typ {
		return fmt.Errorf("type mismatch: %s vs. %s", v.Typ, o.Typ)
	}
	return nil
}

//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package ptxt

import (
	"fmt"
	"math/big"
)

// Logic operations are defined for boolean values only, like their
// homomorphic counterparts. Arithmetic-mode circuits reach logic
// through bit-level boolean subcircuits.

func (v Value) checkLogic(o Value) error {
	if err := v.check(o); err != nil {
		return err
	}
	if v.Typ != Bool {
		return fmt.Errorf("logic operation on %s value", v.Typ)
	}
	return nil
}

// And computes v AND o.
func (v Value) And(o Value) (Value, error) {
	if err := v.checkLogic(o); err != nil {
		return Value{}, err
	}
	return FromBig(v.Typ, new(big.Int).And(v.Int, o.Int)), nil
}

// Or computes v OR o.
func (v Value) Or(o Value) (Value, error) {
	if err := v.checkLogic(o); err != nil {
		return Value{}, err
	}
	return FromBig(v.Typ, new(big.Int).Or(v.Int, o.Int)), nil
}

// Xor computes v XOR o.
func (v Value) Xor(o Value) (Value, error) {
	if err := v.checkLogic(o); err != nil {
		return Value{}, err
	}
	return FromBig(v.Typ, new(big.Int).Xor(v.Int, o.Int)), nil
}

// Not computes NOT v.
func (v Value) Not() (Value, error) {
	if v.IsNone() {
		return Value{}, ErrNone
	}
	if v.Typ != Bool {
		return Value{}, fmt.Errorf("logic operation on %s value", v.Typ)
	}
	return FromBig(v.Typ, new(big.Int).Not(v.Int)), nil
}

// Nand computes v NAND o.
func (v Value) Nand(o Value) (Value, error) {
	r, err := v.And(o)
	if err != nil {
		return Value{}, err
	}
	return r.Not()
}

// Nor computes v NOR o.
func (v Value) Nor(o Value) (Value, error) {
	r, err := v.Or(o)
	if err != nil {
		return Value{}, err
	}
	return r.Not()
}

// Xnor computes v XNOR o.
func (v Value) Xnor(o Value) (Value, error) {
	r, err := v.Xor(o)
	if err != nil {
		return Value{}, err
	}
	return r.Not()
}

// Buf passes v through unchanged.
func (v Value) Buf() (Value, error) {
	if v.IsNone() {
		return Value{}, ErrNone
	}
	return v, nil
}

// Mux computes b + v*(a-b), selecting a when v is one and b when v
// is zero. A wider selector blends the operands the same way the
// homomorphic backend does.
func (v Value) Mux(a, b Value) (Value, error) {
	if err := v.check(a); err != nil {
		return Value{}, err
	}
	if err := a.check(b); err != nil {
		return Value{}, err
	}
	r := new(big.Int).Sub(a.Int, b.Int)
	r.Mul(v.Int, r)
	r.Add(r, b.Int)
	return FromBig(v.Typ, r), nil
}

func (v Value) checkArith(o Value) error {
	if err := v.check(o); err != nil {
		return err
	}
	if v.Typ == Bool {
		return fmt.Errorf("arithmetic operation on %s value", v.Typ)
	}
	return nil
}

// Arithmetic operations wrap modulo 2^bits, matching unsigned machine
// arithmetic of the value's width.

// Add computes v + o.
func (v Value) Add(o Value) (Value, error) {
	if err := v.checkArith(o); err != nil {
		return Value{}, err
	}
	return FromBig(v.Typ, new(big.Int).Add(v.Int, o.Int)), nil
}

// Sub computes v - o.
func (v Value) Sub(o Value) (Value, error) {
	if err := v.checkArith(o); err != nil {
		return Value{}, err
	}
	return FromBig(v.Typ, new(big.Int).Sub(v.Int, o.Int)), nil
}

// Mul computes v * o.
func (v Value) Mul(o Value) (Value, error) {
	if err := v.checkArith(o); err != nil {
		return Value{}, err
	}
	return FromBig(v.Typ, new(big.Int).Mul(v.Int, o.Int)), nil
}

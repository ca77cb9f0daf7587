//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"github.com/markkurossi/fhesim/ptxt"
)

// PtxtOps is the plaintext value backend. It runs the evaluator over
// ptxt.Value for shadow evaluation and benchmarking against the
// homomorphic backend.
type PtxtOps struct {
	typ ptxt.Type
}

// NewPtxtOps creates a plaintext backend for the value type.
func NewPtxtOps(typ ptxt.Type) *PtxtOps {
	return &PtxtOps{
		typ: typ,
	}
}

// Fork implements Ops.Fork. The backend is stateless so all workers
// share it.
func (o *PtxtOps) Fork() Ops[ptxt.Value] {
	return o
}

// Zero implements Ops.Zero.
func (o *PtxtOps) Zero() (ptxt.Value, error) {
	return ptxt.Zero(o.typ), nil
}

// One implements Ops.One.
func (o *PtxtOps) One() (ptxt.Value, error) {
	return ptxt.One(o.typ), nil
}

// Not implements Ops.Not.
func (o *PtxtOps) Not(a ptxt.Value) (ptxt.Value, error) {
	return a.Not()
}

// Buf implements Ops.Buf.
func (o *PtxtOps) Buf(a ptxt.Value) (ptxt.Value, error) {
	return a.Buf()
}

// And implements Ops.And.
func (o *PtxtOps) And(a, b ptxt.Value) (ptxt.Value, error) {
	return a.And(b)
}

// Nand implements Ops.Nand.
func (o *PtxtOps) Nand(a, b ptxt.Value) (ptxt.Value, error) {
	return a.Nand(b)
}

// Or implements Ops.Or.
func (o *PtxtOps) Or(a, b ptxt.Value) (ptxt.Value, error) {
	return a.Or(b)
}

// Nor implements Ops.Nor.
func (o *PtxtOps) Nor(a, b ptxt.Value) (ptxt.Value, error) {
	return a.Nor(b)
}

// Xor implements Ops.Xor.
func (o *PtxtOps) Xor(a, b ptxt.Value) (ptxt.Value, error) {
	return a.Xor(b)
}

// Xnor implements Ops.Xnor.
func (o *PtxtOps) Xnor(a, b ptxt.Value) (ptxt.Value, error) {
	return a.Xnor(b)
}

// Mux implements Ops.Mux.
func (o *PtxtOps) Mux(sel, a, b ptxt.Value) (ptxt.Value, error) {
	return sel.Mux(a, b)
}

// Add implements Ops.Add.
func (o *PtxtOps) Add(a, b ptxt.Value) (ptxt.Value, error) {
	return a.Add(b)
}

// Sub implements Ops.Sub.
func (o *PtxtOps) Sub(a, b ptxt.Value) (ptxt.Value, error) {
	return a.Sub(b)
}

// Mul implements Ops.Mul.
func (o *PtxtOps) Mul(a, b ptxt.Value) (ptxt.Value, error) {
	return a.Mul(b)
}

//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package fhe

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
	"github.com/tuneinsight/lattigo/v5/he/heint"

	"github.com/markkurossi/fhesim/circuit"
	"github.com/markkurossi/fhesim/ptxt"
)

// Evaluator implements the circuit evaluator's value backend over
// ciphertexts. Boolean gates are arithmetized over 0/1 operands
// (AND = a*b, OR = a+b-ab, XOR = a+b-2ab, NOT = 1-a) so every gate
// costs at most one ciphertext multiplication.
//
// The lattigo evaluator, encoder and encryptor carry mutable scratch
// buffers; Fork gives each worker goroutine shallow copies that share
// the read-only key material.
type Evaluator struct {
	typ    ptxt.Type
	params heint.Parameters
	eval   *heint.Evaluator
	ecd    *heint.Encoder
	enc    *rlwe.Encryptor
}

// Evaluator returns the homomorphic gate backend of the context.
func (c *Context) Evaluator() *Evaluator {
	return &Evaluator{
		typ:    c.typ,
		params: c.params,
		eval:   heint.NewEvaluator(c.params, c.evk),
		ecd:    c.ecd,
		enc:    c.enc,
	}
}

// Fork implements circuit.Ops.Fork.
func (e *Evaluator) Fork() circuit.Ops[*Ciphertext] {
	return &Evaluator{
		typ:    e.typ,
		params: e.params,
		eval:   e.eval.ShallowCopy(),
		ecd:    e.ecd.ShallowCopy(),
		enc:    e.enc.ShallowCopy(),
	}
}

func (e *Evaluator) check(values ...*Ciphertext) error {
	for _, v := range values {
		if v == nil || v.ct == nil {
			return ptxt.ErrNone
		}
		if v.typ != e.typ {
			return fmt.Errorf("type mismatch: %s vs. %s", v.typ, e.typ)
		}
	}
	return nil
}

func (e *Evaluator) checkLogic(values ...*Ciphertext) error {
	if e.typ != ptxt.Bool {
		return fmt.Errorf("logic operation on %s value", e.typ)
	}
	return e.check(values...)
}

func (e *Evaluator) checkArith(values ...*Ciphertext) error {
	if e.typ == ptxt.Bool {
		return fmt.Errorf("arithmetic operation on %s value", e.typ)
	}
	return e.check(values...)
}

func (e *Evaluator) wrap(ct *rlwe.Ciphertext, err error) (*Ciphertext, error) {
	if err != nil {
		return nil, err
	}
	return &Ciphertext{
		typ: e.typ,
		ct:  ct,
	}, nil
}

func (e *Evaluator) constant(value uint64) (*Ciphertext, error) {
	pt := heint.NewPlaintext(e.params, e.params.MaxLevel())
	if err := e.ecd.Encode([]uint64{value}, pt); err != nil {
		return nil, err
	}
	return e.wrap(e.enc.EncryptNew(pt))
}

// Zero implements circuit.Ops.Zero.
func (e *Evaluator) Zero() (*Ciphertext, error) {
	return e.constant(0)
}

// One implements circuit.Ops.One.
func (e *Evaluator) One() (*Ciphertext, error) {
	return e.constant(1)
}

// Buf implements circuit.Ops.Buf.
func (e *Evaluator) Buf(a *Ciphertext) (*Ciphertext, error) {
	if err := e.check(a); err != nil {
		return nil, err
	}
	return &Ciphertext{
		typ: e.typ,
		ct:  a.ct.CopyNew(),
	}, nil
}

// Not implements circuit.Ops.Not: 1-a.
func (e *Evaluator) Not(a *Ciphertext) (*Ciphertext, error) {
	if err := e.checkLogic(a); err != nil {
		return nil, err
	}
	return e.not(a)
}

func (e *Evaluator) not(a *Ciphertext) (*Ciphertext, error) {
	neg, err := e.eval.MulNew(a.ct, -1)
	if err != nil {
		return nil, err
	}
	return e.wrap(e.eval.AddNew(neg, 1))
}

// And implements circuit.Ops.And: a*b.
func (e *Evaluator) And(a, b *Ciphertext) (*Ciphertext, error) {
	if err := e.checkLogic(a, b); err != nil {
		return nil, err
	}
	return e.wrap(e.eval.MulRelinNew(a.ct, b.ct))
}

// Nand implements circuit.Ops.Nand.
func (e *Evaluator) Nand(a, b *Ciphertext) (*Ciphertext, error) {
	and, err := e.And(a, b)
	if err != nil {
		return nil, err
	}
	return e.not(and)
}

// Or implements circuit.Ops.Or: a+b-ab.
func (e *Evaluator) Or(a, b *Ciphertext) (*Ciphertext, error) {
	if err := e.checkLogic(a, b); err != nil {
		return nil, err
	}
	return e.or(a, b)
}

func (e *Evaluator) or(a, b *Ciphertext) (*Ciphertext, error) {
	ab, err := e.eval.MulRelinNew(a.ct, b.ct)
	if err != nil {
		return nil, err
	}
	sum, err := e.eval.AddNew(a.ct, b.ct)
	if err != nil {
		return nil, err
	}
	return e.wrap(e.eval.SubNew(sum, ab))
}

// Nor implements circuit.Ops.Nor.
func (e *Evaluator) Nor(a, b *Ciphertext) (*Ciphertext, error) {
	or, err := e.Or(a, b)
	if err != nil {
		return nil, err
	}
	return e.not(or)
}

// Xor implements circuit.Ops.Xor: a+b-2ab.
func (e *Evaluator) Xor(a, b *Ciphertext) (*Ciphertext, error) {
	if err := e.checkLogic(a, b); err != nil {
		return nil, err
	}
	return e.xor(a, b)
}

func (e *Evaluator) xor(a, b *Ciphertext) (*Ciphertext, error) {
	ab, err := e.eval.MulRelinNew(a.ct, b.ct)
	if err != nil {
		return nil, err
	}
	ab2, err := e.eval.MulNew(ab, 2)
	if err != nil {
		return nil, err
	}
	sum, err := e.eval.AddNew(a.ct, b.ct)
	if err != nil {
		return nil, err
	}
	return e.wrap(e.eval.SubNew(sum, ab2))
}

// Xnor implements circuit.Ops.Xnor.
func (e *Evaluator) Xnor(a, b *Ciphertext) (*Ciphertext, error) {
	xor, err := e.Xor(a, b)
	if err != nil {
		return nil, err
	}
	return e.not(xor)
}

// Mux implements circuit.Ops.Mux: b + sel*(a-b), selecting a when
// sel is one and b when sel is zero.
func (e *Evaluator) Mux(sel, a, b *Ciphertext) (*Ciphertext, error) {
	if err := e.check(sel, a, b); err != nil {
		return nil, err
	}
	diff, err := e.eval.SubNew(a.ct, b.ct)
	if err != nil {
		return nil, err
	}
	sd, err := e.eval.MulRelinNew(sel.ct, diff)
	if err != nil {
		return nil, err
	}
	return e.wrap(e.eval.AddNew(sd, b.ct))
}

// Add implements circuit.Ops.Add.
func (e *Evaluator) Add(a, b *Ciphertext) (*Ciphertext, error) {
	if err := e.checkArith(a, b); err != nil {
		return nil, err
	}
	return e.wrap(e.eval.AddNew(a.ct, b.ct))
}

// Sub implements circuit.Ops.Sub.
func (e *Evaluator) Sub(a, b *Ciphertext) (*Ciphertext, error) {
	if err := e.checkArith(a, b); err != nil {
		return nil, err
	}
	return e.wrap(e.eval.SubNew(a.ct, b.ct))
}

// Mul implements circuit.Ops.Mul.
func (e *Evaluator) Mul(a, b *Ciphertext) (*Ciphertext, error) {
	if err := e.checkArith(a, b); err != nil {
		return nil, err
	}
	return e.wrap(e.eval.MulRelinNew(a.ct, b.ct))
}

//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

// Package fhe implements the encrypted side of the dual-mode value
// abstraction on top of the lattigo BGV scheme: key material,
// encryption and decryption of wire values, and the homomorphic gate
// operations the circuit evaluator runs.
package fhe

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v5/core/rlwe"
	"github.com/tuneinsight/lattigo/v5/he/heint"

	"github.com/markkurossi/fhesim/ptxt"
)

// Ciphertext is an encrypted wire value. A nil Ciphertext is the None
// variant; operating on it or decrypting it is an uninitialized-value
// fault.
type Ciphertext struct {
	typ ptxt.Type
	ct  *rlwe.Ciphertext
}

// Type returns the value type of the ciphertext.
func (ct *Ciphertext) Type() ptxt.Type {
	if ct == nil {
		return ptxt.None
	}
	return ct.typ
}

// Context holds the encryption context of one run: the scheme
// parameters and keys shared read-only by every gate evaluation.
type Context struct {
	typ    ptxt.Type
	params heint.Parameters
	sk     *rlwe.SecretKey
	ecd    *heint.Encoder
	enc    *rlwe.Encryptor
	dec    *rlwe.Decryptor
	evk    rlwe.EvaluationKeySet
}

// NewContext generates an encryption context for the value type: the
// scheme parameters of the type's preset, a fresh key pair and the
// relinearization key. Key or parameter generation errors are fatal;
// a corrupted context would invalidate every downstream ciphertext.
func NewContext(typ ptxt.Type) (*Context, error) {
	params, err := paramsFor(typ)
	if err != nil {
		return nil, err
	}

	kgen := heint.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPairNew()
	rlk := kgen.GenRelinearizationKeyNew(sk)

	return &Context{
		typ:    typ,
		params: params,
		sk:     sk,
		ecd:    heint.NewEncoder(params),
		enc:    heint.NewEncryptor(params, pk),
		dec:    heint.NewDecryptor(params, sk),
		evk:    rlwe.NewMemEvaluationKeySet(rlk),
	}, nil
}

// Type returns the value type of the context.
func (c *Context) Type() ptxt.Type {
	return c.typ
}

// Encrypt encrypts the plaintext value.
func (c *Context) Encrypt(v ptxt.Value) (*Ciphertext, error) {
	if v.IsNone() {
		return nil, ptxt.ErrNone
	}
	if v.Typ != c.typ {
		return nil, fmt.Errorf("type mismatch: %s vs. %s", v.Typ, c.typ)
	}

	pt := heint.NewPlaintext(c.params, c.params.MaxLevel())
	if err := c.ecd.Encode([]uint64{v.Uint64()}, pt); err != nil {
		return nil, err
	}
	ct, err := c.enc.EncryptNew(pt)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{
		typ: c.typ,
		ct:  ct,
	}, nil
}

// EncryptMap encrypts a wire-value map.
func (c *Context) EncryptMap(values map[string]ptxt.Value) (
	map[string]*Ciphertext, error) {

	result := make(map[string]*Ciphertext)
	for name, v := range values {
		ct, err := c.Encrypt(v)
		if err != nil {
			return nil, fmt.Errorf("wire %s: %w", name, err)
		}
		result[name] = ct
	}
	return result, nil
}

// Decrypt decrypts the ciphertext back to a plaintext value. The raw
// result is lifted to the centered interval and reduced modulo the
// type's width so wrapped subtraction matches plaintext semantics.
func (c *Context) Decrypt(ct *Ciphertext) (ptxt.Value, error) {
	if ct == nil || ct.ct == nil {
		return ptxt.Value{}, ptxt.ErrNone
	}
	if ct.typ != c.typ {
		return ptxt.Value{}, fmt.Errorf("type mismatch: %s vs. %s",
			ct.typ, c.typ)
	}

	pt := c.dec.DecryptNew(ct.ct)
	values := make([]uint64, c.params.MaxSlots())
	if err := c.ecd.Decode(pt, values); err != nil {
		return ptxt.Value{}, err
	}

	t := c.params.PlaintextModulus()
	v := new(big.Int).SetUint64(values[0])
	if values[0] > t/2 {
		v.Sub(v, new(big.Int).SetUint64(t))
	}
	return ptxt.FromBig(c.typ, v), nil
}

// DecryptMap decrypts a wire-value map.
func (c *Context) DecryptMap(values map[string]*Ciphertext) (
	map[string]ptxt.Value, error) {

	result := make(map[string]ptxt.Value)
	for name, ct := range values {
		v, err := c.Decrypt(ct)
		if err != nil {
			return nil, fmt.Errorf("wire %s: %w", name, err)
		}
		result[name] = v
	}
	return result, nil
}

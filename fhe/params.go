//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package fhe

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v5/he/heint"

	"github.com/markkurossi/fhesim/ptxt"
)

// ErrUnsupportedType is returned when no parameter preset covers the
// requested value type. Plaintext evaluation still supports the wide
// types; no practical BGV plaintext modulus bounds 64-bit
// intermediates.
var ErrUnsupportedType = fmt.Errorf("value type not supported under encryption")

// Parameter presets per value type. The plaintext modulus is the
// exactness bound of the scheme: results are correct as long as the
// unreduced integer magnitudes of the circuit stay below it, and
// decryption reduces modulo the type's width. Boolean gates keep
// their operands at 0/1 so the boolean preset is bound only by the
// multiplicative depth of the modulus chain.
var presets = map[ptxt.Type]heint.ParametersLiteral{
	ptxt.Bool: {
		LogN:             14,
		LogQ:             []int{50, 40, 40, 40, 40, 40, 40, 40},
		LogP:             []int{60},
		PlaintextModulus: 0x10001,
	},
	ptxt.U8: {
		LogN:             14,
		LogQ:             []int{50, 40, 40, 40, 40, 40, 40, 40},
		LogP:             []int{60},
		PlaintextModulus: 0x10001,
	},
	ptxt.U16: {
		LogN:             14,
		LogQ:             []int{55, 45, 45, 45, 45, 45, 45, 45},
		LogP:             []int{60},
		PlaintextModulus: 0x10000140001,
	},
	ptxt.U32: {
		LogN:             14,
		LogQ:             []int{55, 45, 45, 45, 45, 45, 45, 45},
		LogP:             []int{60},
		PlaintextModulus: 0x10000140001,
	},
}

func paramsFor(typ ptxt.Type) (heint.Parameters, error) {
	lit, ok := presets[typ]
	if !ok {
		return heint.Parameters{}, fmt.Errorf("%s: %w", typ,
			ErrUnsupportedType)
	}
	return heint.NewParametersFromLiteral(lit)
}

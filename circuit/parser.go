//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var reParts = regexp.MustCompilePOSIX("[[:space:]]+")

// Parse reads a circuit from the gate-list netlist format. The format
// is the exchange form the external HDL frontend emits: one statement
// per line, `INPUT` and `OUTPUT` declaring the primary wires and
// every other statement naming an operation, its output wire and its
// input wires:
//
//	INPUT a b
//	OUTPUT sum
//	XOR sum a b
//
// Empty lines and lines starting with '#' are ignored. The parsed
// circuit is validated like any built circuit.
func Parse(in io.Reader) (*Circuit, error) {
	b := NewBuilder()

	r := bufio.NewReader(in)
	for lineno := 1; ; lineno++ {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		parts := splitLine(line)
		if len(parts) > 0 {
			if perr := parseLine(b, parts); perr != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, perr)
			}
		}
		if err == io.EOF {
			break
		}
	}

	return b.Build()
}

func parseLine(b *Builder, parts []string) error {
	switch parts[0] {
	case "INPUT":
		b.Input(parts[1:]...)

	case "OUTPUT":
		b.Output(parts[1:]...)

	default:
		op, err := ParseOperation(parts[0])
		if err != nil {
			return err
		}
		if len(parts) != 2+op.Arity() {
			return fmt.Errorf("%s gate with %d arguments, expected %d",
				op, len(parts)-1, 1+op.Arity())
		}
		b.Gate(op, parts[1], parts[2:]...)
	}
	return nil
}

func splitLine(line string) []string {
	line = strings.TrimSpace(line)
	if len(line) == 0 || line[0] == '#' {
		return nil
	}
	return reParts.Split(line, -1)
}

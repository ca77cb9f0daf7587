//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/markkurossi/fhesim/logger"
	"github.com/markkurossi/fhesim/ptxt"
)

// Wire input and output maps cross the evaluation boundary as
// two-column (name, value) records. Values are parsed per the run's
// value type. A malformed value is reported and falls back to the
// type's zero so one bad entry does not abort the whole run; primary
// inputs absent from the map default to zero the same way.

// ReadWireFile reads a wire-value map from the two-column CSV input.
func ReadWireFile(in io.Reader, typ ptxt.Type) (map[string]ptxt.Value, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = 2
	r.TrimLeadingSpace = true

	result := make(map[string]ptxt.Value)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(record[0])
		result[name] = parseWireValue(typ, name, record[1])
	}
	return result, nil
}

// ParseWirePairs parses explicit name=value wire assignments.
func ParseWirePairs(pairs []string, typ ptxt.Type) (
	map[string]ptxt.Value, error) {

	result := make(map[string]ptxt.Value)
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid wire assignment: %s", pair)
		}
		result[name] = parseWireValue(typ, name, value)
	}
	return result, nil
}

func parseWireValue(typ ptxt.Type, name, token string) ptxt.Value {
	v, err := ptxt.Parse(typ, strings.TrimSpace(token))
	if err != nil {
		log := logger.Logger()
		log.Warn().Str("wire", name).Err(err).
			Msgf("invalid input value, defaulting to %s", ptxt.Zero(typ))
		return ptxt.Zero(typ)
	}
	return v
}

// WriteWireFile writes a wire-value map as two-column CSV records,
// sorted by wire name.
func WriteWireFile(out io.Writer, values map[string]ptxt.Value) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(out)
	for _, name := range names {
		if err := w.Write([]string{name, values[name].String()}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// InputValues resolves the circuit's primary inputs from the wire
// map: supplied wires take their parsed values and the rest default
// to the type's zero.
func (c *Circuit) InputValues(values map[string]ptxt.Value, typ ptxt.Type) (
	map[string]ptxt.Value, error) {

	for name := range values {
		w, ok := c.Wire(name)
		if !ok || !c.IsInput(w) {
			return nil, fmt.Errorf("wire %s is not a primary input", name)
		}
	}

	result := make(map[string]ptxt.Value)
	for _, w := range c.Inputs {
		name := c.Name(w)
		v, ok := values[name]
		if !ok {
			v = ptxt.Zero(typ)
		}
		result[name] = v
	}
	return result, nil
}

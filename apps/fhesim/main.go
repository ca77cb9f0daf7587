//
// main.go
//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/markkurossi/fhesim/circuit"
	"github.com/markkurossi/fhesim/fhe"
	"github.com/markkurossi/fhesim/logger"
	"github.com/markkurossi/fhesim/ptxt"
)

type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	var wires listFlag

	circFile := flag.String("c", "", "netlist file to evaluate")
	inputFile := flag.String("i", "", "CSV file with input wire values (wire, value)")
	outputFile := flag.String("o", "", "CSV file for output wire values (wire, value)")
	arithmetic := flag.String("a", "bool", "value type (bool, u8, u16, u32, u64, u128)")
	cycles := flag.Int("cycles", 1, "number of cycles for sequential circuits")
	plain := flag.Bool("ptxt", false, "evaluate in plaintext (no encryption)")
	verbose := flag.Bool("v", false, "verbose output")
	flag.Var(&wires, "w", "input wire value (name=value), can be repeated")
	flag.Parse()

	log := logger.Logger()

	if len(*circFile) == 0 {
		fmt.Fprintf(os.Stderr, "no netlist file specified\n")
		os.Exit(1)
	}
	typ, err := ptxt.ParseType(*arithmetic)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid value type")
	}

	timing := circuit.NewTiming()

	f, err := os.Open(*circFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open netlist")
	}
	c, err := circuit.Parse(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid netlist")
	}
	levels := c.Levels()
	timing.Sample("Parse", []string{fmt.Sprintf("%d gates", len(c.Gates))})

	log.Info().Msgf("circuit %s, %d levels", c, len(levels))
	if *verbose {
		for idx, level := range levels {
			log.Info().Msgf("level %d: %d gates", idx, len(level))
		}
	}

	var supplied map[string]ptxt.Value
	if len(*inputFile) > 0 {
		f, err := os.Open(*inputFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open input wires")
		}
		supplied, err = circuit.ReadWireFile(f, typ)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("invalid input wire file")
		}
	} else if len(wires) > 0 {
		supplied, err = circuit.ParseWirePairs(wires, typ)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid input wires")
		}
	} else {
		log.Info().Msg("no input wires specified, initializing to false")
	}
	inputs, err := c.InputValues(supplied, typ)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid input wires")
	}

	var outputs []map[string]ptxt.Value
	if *plain {
		outputs, err = evalPlain(c, typ, inputs, *cycles, timing)
	} else {
		outputs, err = evalEncrypted(c, typ, inputs, *cycles, timing)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}

	if *verbose {
		timing.Print(os.Stdout)
		for cycle, values := range outputs {
			log.Info().Msgf("cycle %d outputs:", cycle)
			for name, v := range values {
				log.Info().Msgf("  %s = %s", name, v)
			}
		}
	}

	out := os.Stdout
	if len(*outputFile) > 0 {
		out, err = os.Create(*outputFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create output file")
		}
		defer out.Close()
	}
	err = circuit.WriteWireFile(out, outputs[len(outputs)-1])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write output wires")
	}
}

func evalPlain(c *circuit.Circuit, typ ptxt.Type,
	inputs map[string]ptxt.Value, cycles int, timing *circuit.Timing) (
	[]map[string]ptxt.Value, error) {

	runner, err := circuit.NewRunner[ptxt.Value](c, circuit.NewPtxtOps(typ))
	if err != nil {
		return nil, err
	}
	runner.SetInputs(inputs)

	outputs, err := runner.Run(cycles)
	if err != nil {
		return nil, err
	}
	timing.Sample("Eval", []string{fmt.Sprintf("%d cycles", cycles)})
	return outputs, nil
}

func evalEncrypted(c *circuit.Circuit, typ ptxt.Type,
	inputs map[string]ptxt.Value, cycles int, timing *circuit.Timing) (
	[]map[string]ptxt.Value, error) {

	ctx, err := fhe.NewContext(typ)
	if err != nil {
		return nil, err
	}
	timing.Sample("KeyGen", nil)

	encrypted, err := ctx.EncryptMap(inputs)
	if err != nil {
		return nil, err
	}
	timing.Sample("Encrypt", []string{fmt.Sprintf("%d wires", len(inputs))})

	runner, err := circuit.NewRunner[*fhe.Ciphertext](c, ctx.Evaluator())
	if err != nil {
		return nil, err
	}
	runner.SetInputs(encrypted)

	outputs, err := runner.Run(cycles)
	if err != nil {
		return nil, err
	}
	timing.Sample("Eval", []string{fmt.Sprintf("%d cycles", cycles)})

	var result []map[string]ptxt.Value
	var done []time.Time
	for _, values := range outputs {
		decrypted, err := ctx.DecryptMap(values)
		if err != nil {
			return nil, err
		}
		result = append(result, decrypted)
		done = append(done, time.Now())
	}
	sample := timing.Sample("Decrypt", nil)
	if len(done) > 1 {
		for cycle, end := range done {
			sample.SubSample(fmt.Sprintf("cycle %d", cycle), end)
		}
	}

	return result, nil
}

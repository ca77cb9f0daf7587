//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

// Levels partitions the gates into dependency levels: a gate's level
// is one greater than the maximum level of the gates producing its
// combinational inputs. Primary inputs and registered wires resolve at
// level 0 since their values are available before the pass starts.
// Gates within one level share no dependencies and may be evaluated
// concurrently.
//
// The partition is computed once per circuit and cached; the circuit
// was validated at build time so no cycle can be encountered here.
func (c *Circuit) Levels() [][]int {
	if c.levels != nil {
		return c.levels
	}

	// gateLevel[idx] is the level of gate idx, -1 when not yet
	// resolved.
	gateLevel := make([]int, len(c.Gates))
	for i := range gateLevel {
		gateLevel[i] = -1
	}

	var resolve func(idx int) int
	resolve = func(idx int) int {
		if gateLevel[idx] >= 0 {
			return gateLevel[idx]
		}
		level := 0
		for _, in := range c.Gates[idx].Inputs {
			prev := c.driver[in.ID()]
			if prev < 0 || c.Gates[prev].Op == DFF {
				// Primary input or registered wire: carried
				// into the pass, no dependency.
				continue
			}
			if l := resolve(prev) + 1; l > level {
				level = l
			}
		}
		gateLevel[idx] = level
		return level
	}

	var count int
	for idx := range c.Gates {
		if l := resolve(idx); l+1 > count {
			count = l + 1
		}
	}

	levels := make([][]int, count)
	for idx, l := range gateLevel {
		levels[l] = append(levels[l], idx)
	}
	c.levels = levels

	return levels
}

// Command gentranscript generates raw transcript fixtures for manual
// replay and chunk-splitting tests.
//
// Usage:
//
//	gentranscript [idle|combat|short] [seed] > transcript.bin
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AshFrancis/chickenz/internal/codec"
	"github.com/AshFrancis/chickenz/internal/mapdef"
	"github.com/AshFrancis/chickenz/internal/sim"
)

func main() {
	mode := "idle"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}
	seed := uint32(42)
	if len(os.Args) > 2 {
		if v, err := strconv.ParseUint(os.Args[2], 10, 32); err == nil {
			seed = uint32(v)
		}
	}

	mapPath := os.Getenv("MAP_PATH")
	if mapPath == "" {
		mapPath = "maps/proving-grounds.yaml"
	}
	m, err := mapdef.LoadSimMap(mapPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gentranscript: load map:", err)
		os.Exit(1)
	}

	cfg := sim.MatchConfig{Seed: seed, Map: m}
	duration := cfg.MatchDurationTicks
	if duration == 0 {
		duration = sim.DefaultMatchDuration
	}

	var inputs [][2]sim.Input
	switch mode {
	case "idle":
		inputs = make([][2]sim.Input, duration)
	case "short":
		n := int32(100)
		if n > duration {
			n = duration
		}
		inputs = make([][2]sim.Input, n)
	case "combat":
		inputs = make([][2]sim.Input, duration)
		for tick := range inputs {
			buttons := sim.ButtonShoot
			if tick < 200 {
				buttons |= sim.ButtonRight
			}
			inputs[tick][0] = sim.Input{Buttons: buttons, AimX: 1, AimY: 0}
		}
	default:
		fmt.Fprintf(os.Stderr, "gentranscript: unknown mode %q (use idle, combat, or short)\n", mode)
		os.Exit(1)
	}

	// Verify by replaying, same as a reference generator would before
	// emitting a fixture nobody has checked.
	s := sim.NewState(cfg)
	for _, in := range inputs {
		sim.Step(s, in, m)
		if s.MatchOver {
			break
		}
	}
	fmt.Fprintf(os.Stderr, "=== sim result (%s mode, seed %d) ===\n", mode, seed)
	fmt.Fprintf(os.Stderr, "final tick: %d\n", s.Tick)
	fmt.Fprintf(os.Stderr, "match over: %v\n", s.MatchOver)
	fmt.Fprintf(os.Stderr, "winner: %d\n", s.Winner)
	fmt.Fprintf(os.Stderr, "scores: p0=%d p1=%d\n", s.Score[0], s.Score[1])

	transcript := codec.EncodeTranscript(seed, inputs)
	if _, err := os.Stdout.Write(transcript); err != nil {
		fmt.Fprintln(os.Stderr, "gentranscript: write transcript:", err)
		os.Exit(1)
	}
}

// Command guest is the monolithic proving guest: it reads a raw
// transcript from stdin, replays it end to end against a map fixture,
// and writes the resulting 76-byte final journal to stdout. This is
// the non-chunked path — see cmd/chunkguest and cmd/composer for the
// chunked alternative described for the same commitment protocol.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/AshFrancis/chickenz/internal/chunk"
	"github.com/AshFrancis/chickenz/internal/mapdef"
	"github.com/AshFrancis/chickenz/internal/runner"
	"github.com/AshFrancis/chickenz/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "guest:", err)
		os.Exit(1)
	}
}

func run() error {
	mapPath := os.Getenv("MAP_PATH")
	if mapPath == "" {
		mapPath = "maps/proving-grounds.yaml"
	}
	m, err := mapdef.LoadSimMap(mapPath)
	if err != nil {
		return fmt.Errorf("load map: %w", err)
	}

	transcript, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read transcript from stdin: %w", err)
	}

	result, err := runner.Run(transcript, sim.MatchConfig{Map: m}, m)
	if err != nil {
		return fmt.Errorf("run transcript: %w", err)
	}

	fj := chunk.FinalJournal{
		Winner:         result.FinalState.Winner,
		Scores:         result.FinalState.Score,
		TranscriptHash: result.TranscriptHash,
		SeedCommit:     result.SeedCommit,
	}
	encoded := fj.Encode()
	if _, err := os.Stdout.Write(encoded[:]); err != nil {
		return fmt.Errorf("write final journal: %w", err)
	}
	return nil
}

// Command composer verifies a chain of chunk journals and emits a
// 76-byte final journal in the same layout the monolithic guest
// produces. Winner, scores and seed commitment match the monolithic
// run of the equivalent transcript; transcript_hash is the hash of the
// chunk input hashes and so differs from the monolithic one. Its input
// wire format is
// [seed:4 LE][num_chunks:4 LE], 8 LE u32 words of chunk image id, then
// num_chunks*30 LE u32 words of chunk journals.
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/AshFrancis/chickenz/internal/chunk"
	"github.com/AshFrancis/chickenz/internal/mapdef"
	"github.com/AshFrancis/chickenz/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "composer:", err)
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

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read composer input: %w", err)
	}
	if len(input) < 8 {
		return fmt.Errorf("composer input too short: %d bytes", len(input))
	}

	seed := binary.LittleEndian.Uint32(input[0:4])
	numChunks := int(binary.LittleEndian.Uint32(input[4:8]))

	offset := 8
	const imageIDWords = 8
	const imageIDBytes = imageIDWords * 4
	if len(input) < offset+imageIDBytes {
		return fmt.Errorf("composer input truncated in image id section")
	}
	var imageID [32]byte
	copy(imageID[:], input[offset:offset+imageIDBytes])
	offset += imageIDBytes

	const journalWords = 30
	journalBytes := journalWords * 4
	want := offset + numChunks*journalBytes
	if len(input) < want {
		return fmt.Errorf("composer input truncated: want %d bytes, got %d", want, len(input))
	}

	journals := make([]chunk.Journal, numChunks)
	for i := 0; i < numChunks; i++ {
		start := offset + i*journalBytes
		j, err := chunk.DecodeJournal(input[start : start+journalBytes])
		if err != nil {
			return fmt.Errorf("decode chunk journal %d: %w", i, err)
		}
		journals[i] = j
	}

	verifier := chunk.AcceptAllVerifier{}
	finalJournal, err := chunk.Compose(seed, imageID, journals, sim.MatchConfig{}, m, verifier)
	if err != nil {
		return fmt.Errorf("compose chunk journals: %w", err)
	}

	encoded := finalJournal.Encode()
	if _, err := os.Stdout.Write(encoded[:]); err != nil {
		return fmt.Errorf("write final journal: %w", err)
	}
	return nil
}

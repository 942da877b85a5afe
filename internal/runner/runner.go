// Package runner implements the single-pass streaming replay of a raw
// input transcript: parse, hash, and simulate in one loop so no
// intermediate representation of the transcript needs to live on the
// heap any longer than one tick's worth of bytes.
package runner

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/AshFrancis/chickenz/internal/codec"
	"github.com/AshFrancis/chickenz/internal/sim"
)

// Result is what a full transcript replay commits to.
type Result struct {
	FinalState      *sim.State
	TranscriptHash  [32]byte
	SeedCommit      [32]byte
}

// Run parses a raw transcript ([seed:4 LE][tick_count:4 LE][tick×6]),
// replays it tick by tick against m, and returns the final state plus
// the transcript hash and seed commitment. The transcript hash covers
// every submitted tick even if the match ends early — replay length
// must never change what the transcript hashes to.
func Run(transcript []byte, cfg sim.MatchConfig, m *sim.Map) (Result, error) {
	if len(transcript) < 8 {
		return Result{}, fmt.Errorf("transcript too short: %d bytes", len(transcript))
	}
	seed := binary.LittleEndian.Uint32(transcript[0:4])
	tickCount := binary.LittleEndian.Uint32(transcript[4:8])
	want := 8 + int(tickCount)*codec.TickByteLen
	if len(transcript) < want {
		return Result{}, fmt.Errorf("transcript truncated: want %d bytes, got %d", want, len(transcript))
	}

	cfg.Seed = seed
	cfg.Map = m
	s := sim.NewState(cfg)

	hasher := sha256.New()
	body := transcript[8:want]
	hasher.Write(body)

	for i := 0; i < int(tickCount); i++ {
		off := i * codec.TickByteLen
		inputs := codec.DecodeTick(body[off : off+codec.TickByteLen])
		sim.Step(s, inputs, m)
	}

	var seedBytes [4]byte
	binary.LittleEndian.PutUint32(seedBytes[:], seed)

	return Result{
		FinalState:     s,
		TranscriptHash: [32]byte(hasher.Sum(nil)),
		SeedCommit:     sha256.Sum256(seedBytes[:]),
	}, nil
}

// RunInputs replays an already-decoded input slice, used by callers
// (tests) that built inputs programmatically rather than from a raw
// transcript. The transcript hash is computed over
// the canonical 6-byte-per-tick re-encoding, which is identical to the
// hash Run would produce for the equivalent raw transcript.
func RunInputs(seed uint32, inputs [][2]sim.Input, cfg sim.MatchConfig, m *sim.Map) Result {
	cfg.Seed = seed
	cfg.Map = m
	s := sim.NewState(cfg)

	hasher := sha256.New()
	for _, in := range inputs {
		tick := codec.EncodeTick(in)
		hasher.Write(tick[:])
		sim.Step(s, in, m)
	}

	var seedBytes [4]byte
	binary.LittleEndian.PutUint32(seedBytes[:], seed)

	return Result{
		FinalState:     s,
		TranscriptHash: [32]byte(hasher.Sum(nil)),
		SeedCommit:     sha256.Sum256(seedBytes[:]),
	}
}

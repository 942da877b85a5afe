package chunk

import (
	"crypto/sha256"

	"github.com/AshFrancis/chickenz/internal/codec"
	"github.com/AshFrancis/chickenz/internal/sim"
)

// RunChunk replays inputs against state (already positioned at the
// chunk's starting tick) and returns the Journal a chunk guest would
// commit: the state hash before and after the slice, the hash of this
// slice's tick bytes, and the tick range. state is mutated in place,
// mirroring Step's contract, so the caller holds the advanced state.
func RunChunk(state *sim.State, inputs [][2]sim.Input, m *sim.Map) Journal {
	hashIn := codec.HashState(state)
	tickStart := state.Tick

	hasher := sha256.New()
	for _, in := range inputs {
		tick := codec.EncodeTick(in)
		hasher.Write(tick[:])
		sim.Step(state, in, m)
	}

	return Journal{
		StateHashIn:  hashIn,
		StateHashOut: codec.HashState(state),
		InputHash:    [32]byte(hasher.Sum(nil)),
		TickStart:    tickStart,
		TickEnd:      state.Tick,
		Scores:       state.Score,
		MatchOver:    state.MatchOver,
		Winner:       state.Winner,
	}
}

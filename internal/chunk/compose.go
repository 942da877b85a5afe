package chunk

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/AshFrancis/chickenz/internal/codec"
	"github.com/AshFrancis/chickenz/internal/sim"
)

// Verifier abstracts "this journal was produced by running the chunk
// program, compiled to imageID, over some input" — the actual proof
// check is an external collaborator (the zkVM verifier); the composer
// only needs this one method to drive the chain check.
type Verifier interface {
	VerifyChunk(imageID [32]byte, journal [JournalSize]byte) error
}

// ChainMismatchError reports a broken hash chain between two chunks.
type ChainMismatchError struct {
	ChunkIndex int
	Expected   [32]byte
	Got        [32]byte
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("chunk %d: state_hash_in %x does not match previous state_hash_out %x",
		e.ChunkIndex, e.Got, e.Expected)
}

// Compose verifies num_chunks journals in order, checks that each one's
// state_hash_in ties to the previous chunk's state_hash_out (and that
// the first ties to the deterministic initial state for seed/cfg/m),
// accumulates the input hashes into the composer's own transcript hash,
// and emits the final 76-byte journal.
//
// The composer's transcript_hash is SHA-256 of the concatenation of
// chunk input_hashes — by construction this differs from the monolithic
// runner's transcript_hash (SHA-256 over raw tick bytes) for any number
// of chunks, a single chunk included, since each input_hash is itself a
// digest that is hashed again here; see DESIGN.md for why that
// divergence is kept rather than papered over.
func Compose(seed uint32, imageID [32]byte, journals []Journal, cfg sim.MatchConfig, m *sim.Map, v Verifier) (FinalJournal, error) {
	cfg.Seed = seed
	cfg.Map = m
	initial := sim.NewState(cfg)
	expectedHash := codec.HashState(initial)

	hasher := sha256.New()
	var scores [2]uint32
	var winner int32 = -1

	for i, j := range journals {
		encoded := j.Encode()
		if err := v.VerifyChunk(imageID, encoded); err != nil {
			return FinalJournal{}, fmt.Errorf("chunk %d verification failed: %w", i, err)
		}
		if j.StateHashIn != expectedHash {
			return FinalJournal{}, &ChainMismatchError{ChunkIndex: i, Expected: expectedHash, Got: j.StateHashIn}
		}
		expectedHash = j.StateHashOut
		hasher.Write(j.InputHash[:])

		scores = j.Scores
		winner = j.Winner
	}

	var seedBytes [4]byte
	binary.LittleEndian.PutUint32(seedBytes[:], seed)

	return FinalJournal{
		Winner:         winner,
		Scores:         scores,
		TranscriptHash: [32]byte(hasher.Sum(nil)),
		SeedCommit:     sha256.Sum256(seedBytes[:]),
	}, nil
}

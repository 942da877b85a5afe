// Package chunk implements the chunked-proving commitment protocol: the
// fixed 120-byte per-chunk journal record and the composer that verifies
// a chain of chunk journals and emits the single 76-byte final journal a
// settlement contract consumes.
package chunk

import (
	"encoding/binary"
	"fmt"
)

// JournalSize is the encoded size of a single chunk's proof journal.
const JournalSize = 120

// Journal is one chunk's public output: the state hash it started from,
// the state hash it ended on, the hash of its own slice of tick inputs,
// its tick range, and the running scoreboard/outcome as of its last tick.
type Journal struct {
	StateHashIn  [32]byte
	StateHashOut [32]byte
	InputHash    [32]byte
	TickStart    int32
	TickEnd      int32
	Scores       [2]uint32
	MatchOver    bool
	Winner       int32
}

// Encode writes the canonical 120-byte layout documented for the chunk
// proof record.
func (j Journal) Encode() [JournalSize]byte {
	var out [JournalSize]byte
	copy(out[0:32], j.StateHashIn[:])
	copy(out[32:64], j.StateHashOut[:])
	copy(out[64:96], j.InputHash[:])
	binary.LittleEndian.PutUint32(out[96:100], uint32(j.TickStart))
	binary.LittleEndian.PutUint32(out[100:104], uint32(j.TickEnd))
	binary.LittleEndian.PutUint32(out[104:108], j.Scores[0])
	binary.LittleEndian.PutUint32(out[108:112], j.Scores[1])
	if j.MatchOver {
		binary.LittleEndian.PutUint32(out[112:116], 1)
	}
	binary.LittleEndian.PutUint32(out[116:120], uint32(j.Winner))
	return out
}

// DecodeJournal parses a 120-byte chunk proof record.
func DecodeJournal(b []byte) (Journal, error) {
	if len(b) != JournalSize {
		return Journal{}, fmt.Errorf("chunk journal must be %d bytes, got %d", JournalSize, len(b))
	}
	var j Journal
	copy(j.StateHashIn[:], b[0:32])
	copy(j.StateHashOut[:], b[32:64])
	copy(j.InputHash[:], b[64:96])
	j.TickStart = int32(binary.LittleEndian.Uint32(b[96:100]))
	j.TickEnd = int32(binary.LittleEndian.Uint32(b[100:104]))
	j.Scores[0] = binary.LittleEndian.Uint32(b[104:108])
	j.Scores[1] = binary.LittleEndian.Uint32(b[108:112])
	j.MatchOver = binary.LittleEndian.Uint32(b[112:116]) != 0
	j.Winner = int32(binary.LittleEndian.Uint32(b[116:120]))
	return j, nil
}

// FinalJournalSize is the encoded size of the composer's (and the
// monolithic guest's) public output.
const FinalJournalSize = 76

// FinalJournal is the 76-byte value a settlement contract consumes:
// winner, both scores, the transcript hash, and the seed commitment.
type FinalJournal struct {
	Winner         int32
	Scores         [2]uint32
	TranscriptHash [32]byte
	SeedCommit     [32]byte
}

// Encode writes the canonical 76-byte layout: winner(4), score0(4),
// score1(4), transcript_hash(32), seed_commit(32).
func (f FinalJournal) Encode() [FinalJournalSize]byte {
	var out [FinalJournalSize]byte
	binary.LittleEndian.PutUint32(out[0:4], uint32(f.Winner))
	binary.LittleEndian.PutUint32(out[4:8], f.Scores[0])
	binary.LittleEndian.PutUint32(out[8:12], f.Scores[1])
	copy(out[12:44], f.TranscriptHash[:])
	copy(out[44:76], f.SeedCommit[:])
	return out
}

// DecodeFinalJournal parses a 76-byte final journal.
func DecodeFinalJournal(b []byte) (FinalJournal, error) {
	if len(b) != FinalJournalSize {
		return FinalJournal{}, fmt.Errorf("final journal must be %d bytes, got %d", FinalJournalSize, len(b))
	}
	var f FinalJournal
	f.Winner = int32(binary.LittleEndian.Uint32(b[0:4]))
	f.Scores[0] = binary.LittleEndian.Uint32(b[4:8])
	f.Scores[1] = binary.LittleEndian.Uint32(b[8:12])
	copy(f.TranscriptHash[:], b[12:44])
	copy(f.SeedCommit[:], b[44:76])
	return f, nil
}

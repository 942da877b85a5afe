package chunk

import (
	"errors"
	"testing"

	"github.com/AshFrancis/chickenz/internal/fp"
	"github.com/AshFrancis/chickenz/internal/runner"
	"github.com/AshFrancis/chickenz/internal/sim"
)

var errVerifyFailed = errors.New("verification failed")

func testMap() *sim.Map {
	return sim.NewMap(fp.FromInt(800), fp.FromInt(600),
		[]sim.Platform{{X: fp.FromInt(100), Y: fp.FromInt(400), Width: fp.FromInt(200), Height: fp.FromInt(20)}},
		[]sim.SpawnPoint{{X: fp.FromInt(50), Y: fp.FromInt(0)}, {X: fp.FromInt(700), Y: fp.FromInt(0)}},
		[]sim.SpawnPoint{{X: fp.FromInt(400), Y: fp.FromInt(300)}},
	)
}

type acceptAllVerifier struct{}

func (acceptAllVerifier) VerifyChunk(imageID [32]byte, journal [JournalSize]byte) error {
	return nil
}

func TestJournalEncodeDecodeRoundTrip(t *testing.T) {
	j := Journal{
		StateHashIn:  [32]byte{1, 2, 3},
		StateHashOut: [32]byte{4, 5, 6},
		InputHash:    [32]byte{7, 8, 9},
		TickStart:    10,
		TickEnd:      20,
		Scores:       [2]uint32{3, 1},
		MatchOver:    true,
		Winner:       0,
	}
	encoded := j.Encode()
	decoded, err := DecodeJournal(encoded[:])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != j {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, j)
	}
}

func TestFinalJournalEncodeDecodeRoundTrip(t *testing.T) {
	f := FinalJournal{
		Winner:         1,
		Scores:         [2]uint32{2, 5},
		TranscriptHash: [32]byte{0xAA},
		SeedCommit:     [32]byte{0xBB},
	}
	encoded := f.Encode()
	decoded, err := DecodeFinalJournal(encoded[:])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != f {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, f)
	}
}

func TestComposeTwoChunksMatchesMonolithicRun(t *testing.T) {
	const seed = 42
	const totalTicks = 720
	const splitAt = 360

	inputs := make([][2]sim.Input, totalTicks)
	for i := range inputs {
		inputs[i] = [2]sim.Input{{Buttons: sim.ButtonRight, AimX: 1}, {Buttons: sim.ButtonLeft, AimX: -1}}
	}

	mono := runner.RunInputs(seed, inputs, sim.MatchConfig{}, testMap())

	state := sim.NewState(sim.MatchConfig{Seed: seed, Map: testMap()})
	j0 := RunChunk(state, inputs[:splitAt], testMap())
	j1 := RunChunk(state, inputs[splitAt:], testMap())

	if j0.StateHashOut != j1.StateHashIn {
		t.Fatal("chunk boundary state hashes do not chain")
	}

	final, err := Compose(seed, [32]byte{1}, []Journal{j0, j1}, sim.MatchConfig{}, testMap(), acceptAllVerifier{})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if final.Winner != mono.FinalState.Winner {
		t.Fatalf("composer winner %d != monolithic winner %d", final.Winner, mono.FinalState.Winner)
	}
	if final.Scores != mono.FinalState.Score {
		t.Fatalf("composer scores %v != monolithic scores %v", final.Scores, mono.FinalState.Score)
	}
}

func TestComposeRejectsBrokenChain(t *testing.T) {
	state := sim.NewState(sim.MatchConfig{Seed: 1, Map: testMap()})
	inputs := make([][2]sim.Input, 10)
	j0 := RunChunk(state, inputs, testMap())
	j0.StateHashOut = [32]byte{0xFF} // corrupt the boundary

	j1 := RunChunk(state, inputs, testMap())

	_, err := Compose(1, [32]byte{1}, []Journal{j0, j1}, sim.MatchConfig{}, testMap(), acceptAllVerifier{})
	if err == nil {
		t.Fatal("expected chain mismatch error")
	}
}

type rejectingVerifier struct{}

func (rejectingVerifier) VerifyChunk(imageID [32]byte, journal [JournalSize]byte) error {
	return errVerifyFailed
}

func TestComposePropagatesVerifierFailure(t *testing.T) {
	state := sim.NewState(sim.MatchConfig{Seed: 1, Map: testMap()})
	inputs := make([][2]sim.Input, 10)
	j0 := RunChunk(state, inputs, testMap())

	_, err := Compose(1, [32]byte{1}, []Journal{j0}, sim.MatchConfig{}, testMap(), rejectingVerifier{})
	if err == nil {
		t.Fatal("expected verifier failure to propagate")
	}
}

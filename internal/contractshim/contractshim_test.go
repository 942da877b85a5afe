package contractshim

import (
	"crypto/sha256"
	"testing"

	"github.com/AshFrancis/chickenz/internal/chunk"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

type memStore struct {
	matches map[string]Match
}

func newMemStore() *memStore { return &memStore{matches: map[string]Match{}} }

func (s *memStore) Get(sessionID string) (Match, bool, error) {
	m, ok := s.matches[sessionID]
	return m, ok, nil
}

func (s *memStore) Put(m Match) error {
	s.matches[m.SessionID] = m
	return nil
}

type fakeVerifier struct{ fail bool }

func (f fakeVerifier) Verify(seal []byte, imageID [32]byte, digest [32]byte) error {
	if f.fail {
		return errVerifyFailed
	}
	return nil
}

type recordingHub struct {
	started []string
	ended   []string
}

func (h *recordingHub) NotifyMatchStarted(sessionID, p1, p2 string, lives int32) {
	h.started = append(h.started, sessionID)
}
func (h *recordingHub) NotifyMatchEnded(sessionID string, winner int32, scores [2]uint32) {
	h.ended = append(h.ended, sessionID)
}

func newTestContract(t *testing.T, verifyFails bool) (*Contract, *secp256k1.PrivateKey, *recordingHub) {
	t.Helper()
	priv, err := DeriveDevAdminKey([]byte("test-seed-0123456789012345678901"), 0)
	if err != nil {
		t.Fatalf("derive admin key: %v", err)
	}
	hub := &recordingHub{}
	c := New(newMemStore(), fakeVerifier{fail: verifyFails}, hub)
	if err := c.Initialize(priv.PubKey().SerializeCompressed(), [32]byte{9}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return c, priv, hub
}

func sign(priv *secp256k1.PrivateKey, payload []byte) []byte {
	return SignAdminPayload(priv, payload)
}

func TestInitializeTwiceFails(t *testing.T) {
	c, _, _ := newTestContract(t, false)
	if err := c.Initialize(nil, [32]byte{}); err != ErrAlreadyInitialized {
		t.Fatalf("got %v, want ErrAlreadyInitialized", err)
	}
}

func TestStartMatchRequiresAdminSignature(t *testing.T) {
	c, _, _ := newTestContract(t, false)
	err := c.StartMatch([]byte("garbage"), []byte("payload"), "sess1", "p1", "p2", [32]byte{1}, 1)
	if err != ErrUnauthorized {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestStartMatchThenDuplicateFails(t *testing.T) {
	c, priv, hub := newTestContract(t, false)
	payload := []byte("start:sess1")
	sig := sign(priv, payload)

	if err := c.StartMatch(sig, payload, "sess1", "p1", "p2", [32]byte{1}, 1); err != nil {
		t.Fatalf("start match: %v", err)
	}
	if len(hub.started) != 1 {
		t.Fatalf("expected 1 hub notification, got %d", len(hub.started))
	}
	if err := c.StartMatch(sig, payload, "sess1", "p1", "p2", [32]byte{1}, 1); err != ErrMatchAlreadyExists {
		t.Fatalf("got %v, want ErrMatchAlreadyExists", err)
	}
}

func TestSettleMatchFullFlow(t *testing.T) {
	c, priv, hub := newTestContract(t, false)
	payload := []byte("start:sess1")
	sig := sign(priv, payload)
	seedCommit := sha256.Sum256([]byte{1, 2, 3, 4})

	if err := c.StartMatch(sig, payload, "sess1", "p1", "p2", seedCommit, 1); err != nil {
		t.Fatalf("start match: %v", err)
	}

	fj := chunk.FinalJournal{
		Winner:         0,
		Scores:         [2]uint32{3, 1},
		TranscriptHash: [32]byte{5},
		SeedCommit:     seedCommit,
	}
	journal := fj.Encode()
	if err := c.SettleMatch("sess1", []byte("seal"), journal[:]); err != nil {
		t.Fatalf("settle match: %v", err)
	}
	if len(hub.ended) != 1 {
		t.Fatalf("expected 1 end notification, got %d", len(hub.ended))
	}

	m, err := c.GetMatch("sess1")
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if m.Status != StatusSettled || m.Winner != 0 {
		t.Fatalf("unexpected match state: %+v", m)
	}

	if err := c.SettleMatch("sess1", []byte("seal"), journal[:]); err != ErrMatchAlreadySettled {
		t.Fatalf("got %v, want ErrMatchAlreadySettled", err)
	}
}

func TestSettleMatchRejectsSeedMismatch(t *testing.T) {
	c, priv, _ := newTestContract(t, false)
	payload := []byte("start:sess1")
	sig := sign(priv, payload)

	if err := c.StartMatch(sig, payload, "sess1", "p1", "p2", [32]byte{1}, 1); err != nil {
		t.Fatalf("start match: %v", err)
	}

	fj := chunk.FinalJournal{Winner: 0, SeedCommit: [32]byte{0xFF}}
	journal := fj.Encode()
	if err := c.SettleMatch("sess1", []byte("seal"), journal[:]); err != ErrSeedMismatch {
		t.Fatalf("got %v, want ErrSeedMismatch", err)
	}
}

func TestSettleMatchRejectsInvalidWinner(t *testing.T) {
	c, priv, _ := newTestContract(t, false)
	payload := []byte("start:sess1")
	sig := sign(priv, payload)
	seedCommit := [32]byte{1}

	if err := c.StartMatch(sig, payload, "sess1", "p1", "p2", seedCommit, 1); err != nil {
		t.Fatalf("start match: %v", err)
	}

	fj := chunk.FinalJournal{Winner: 2, SeedCommit: seedCommit}
	journal := fj.Encode()
	if err := c.SettleMatch("sess1", []byte("seal"), journal[:]); err != ErrInvalidWinner {
		t.Fatalf("got %v, want ErrInvalidWinner", err)
	}
}

func TestSettleMatchRejectsVerifierFailureWithoutMutatingState(t *testing.T) {
	c, priv, hub := newTestContract(t, true)
	payload := []byte("start:sess1")
	sig := sign(priv, payload)
	seedCommit := [32]byte{1}

	if err := c.StartMatch(sig, payload, "sess1", "p1", "p2", seedCommit, 1); err != nil {
		t.Fatalf("start match: %v", err)
	}

	fj := chunk.FinalJournal{Winner: 0, SeedCommit: seedCommit}
	journal := fj.Encode()
	if err := c.SettleMatch("sess1", []byte("seal"), journal[:]); err == nil {
		t.Fatal("expected verifier failure to propagate")
	}
	if len(hub.ended) != 0 {
		t.Fatal("hub must not be notified when the verifier rejects the proof")
	}

	m, err := c.GetMatch("sess1")
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if m.Status != StatusActive {
		t.Fatal("match record must remain active after a failed verification")
	}
}

func TestSettleMatchRejectsWrongSizeJournal(t *testing.T) {
	c, priv, _ := newTestContract(t, false)
	payload := []byte("start:sess1")
	sig := sign(priv, payload)
	if err := c.StartMatch(sig, payload, "sess1", "p1", "p2", [32]byte{1}, 1); err != nil {
		t.Fatalf("start match: %v", err)
	}
	if err := c.SettleMatch("sess1", []byte("seal"), []byte("too short")); err != ErrInvalidJournal {
		t.Fatalf("got %v, want ErrInvalidJournal", err)
	}
}

var errVerifyFailed = verifyFailedError{}

type verifyFailedError struct{}

func (verifyFailedError) Error() string { return "verification failed" }

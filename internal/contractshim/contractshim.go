// Package contractshim is a Go-native reference implementation of the
// on-chain settlement contract's external surface: match lifecycle over
// a zkVM journal, admin authorization, and the stable error taxonomy a
// real chain contract would expose as distinct revert codes. It exists
// so the rest of this repo can be exercised end to end without a live
// chain, and so the journal/seed-commit contract has one place it is
// checked against a concrete state machine.
package contractshim

import (
	"crypto/sha256"
	"fmt"

	"github.com/AshFrancis/chickenz/internal/chunk"
)

// SettlementError is the stable, numerically-coded error taxonomy a
// settlement contract exposes to callers.
type SettlementError int

const (
	ErrNotInitialized SettlementError = iota + 1
	ErrAlreadyInitialized
	ErrUnauthorized
	ErrMatchNotFound
	ErrMatchAlreadySettled
	ErrMatchAlreadyExists
	ErrInvalidJournal
	ErrSeedMismatch
	ErrInvalidWinner
)

func (e SettlementError) Error() string {
	switch e {
	case ErrNotInitialized:
		return "contract not initialized"
	case ErrAlreadyInitialized:
		return "contract already initialized"
	case ErrUnauthorized:
		return "caller is not authorized"
	case ErrMatchNotFound:
		return "match not found"
	case ErrMatchAlreadySettled:
		return "match already settled"
	case ErrMatchAlreadyExists:
		return "match already exists"
	case ErrInvalidJournal:
		return "invalid journal"
	case ErrSeedMismatch:
		return "seed commit mismatch"
	case ErrInvalidWinner:
		return "invalid winner"
	default:
		return fmt.Sprintf("unknown settlement error %d", int(e))
	}
}

// MatchStatus is the lifecycle state of a match record.
type MatchStatus int

const (
	StatusActive MatchStatus = iota
	StatusSettled
)

// Match is the persisted record of a single settlement session.
type Match struct {
	SessionID  string
	Player1    string
	Player2    string
	SeedCommit [32]byte
	Status     MatchStatus
	Winner     int32
	Scores     [2]uint32
}

// MatchStore is the persistence collaborator for match records. A
// real deployment backs this with modernc.org/sqlite (see
// internal/store); tests can use an in-memory implementation.
type MatchStore interface {
	Get(sessionID string) (Match, bool, error)
	Put(m Match) error
}

// Verifier is the external zkVM proof verifier collaborator. seal is
// opaque proof bytes; digest is SHA-256(journal).
type Verifier interface {
	Verify(seal []byte, imageID [32]byte, digest [32]byte) error
}

// HubNotifier receives lifecycle notifications a real contract would
// emit to a hub/matchmaking collaborator.
type HubNotifier interface {
	NotifyMatchStarted(sessionID, player1, player2 string, initialLives int32)
	NotifyMatchEnded(sessionID string, winner int32, scores [2]uint32)
}

// Contract is the stateful shim. It is not safe for concurrent use
// without external synchronization, mirroring a single-threaded
// contract execution model.
type Contract struct {
	admin       []byte // secp256k1 compressed public key of the admin
	initialized bool
	imageID     [32]byte

	store    MatchStore
	verifier Verifier
	hub      HubNotifier
}

// New constructs an uninitialized Contract wired to its collaborators.
func New(store MatchStore, verifier Verifier, hub HubNotifier) *Contract {
	return &Contract{store: store, verifier: verifier, hub: hub}
}

// Initialize sets the admin key and pins the initial guest image id.
// May be called exactly once.
func (c *Contract) Initialize(adminPubKey []byte, imageID [32]byte) error {
	if c.initialized {
		return ErrAlreadyInitialized
	}
	c.admin = append([]byte(nil), adminPubKey...)
	c.imageID = imageID
	c.initialized = true
	return nil
}

// SetImageID repins the accepted guest image id. Admin-authorized.
func (c *Contract) SetImageID(signature, payload []byte, newImageID [32]byte) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if err := c.requireAdmin(signature, payload); err != nil {
		return err
	}
	c.imageID = newImageID
	return nil
}

// StartMatch creates a new match record, keyed by sessionID, and
// notifies the hub of the starting lives. Admin-authorized.
func (c *Contract) StartMatch(signature, payload []byte, sessionID, player1, player2 string, seedCommit [32]byte, initialLives int32) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if err := c.requireAdmin(signature, payload); err != nil {
		return err
	}
	if _, ok, err := c.store.Get(sessionID); err != nil {
		return fmt.Errorf("store lookup: %w", err)
	} else if ok {
		return ErrMatchAlreadyExists
	}

	m := Match{
		SessionID:  sessionID,
		Player1:    player1,
		Player2:    player2,
		SeedCommit: seedCommit,
		Status:     StatusActive,
		Winner:     -1,
	}
	if err := c.store.Put(m); err != nil {
		return fmt.Errorf("store put: %w", err)
	}
	c.hub.NotifyMatchStarted(sessionID, player1, player2, initialLives)
	return nil
}

// SettleMatch validates and applies a final journal against a proof
// seal. Every state mutation happens only after the verifier call
// succeeds, so a failed verification leaves the match record untouched.
func (c *Contract) SettleMatch(sessionID string, seal []byte, journal []byte) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if len(journal) != chunk.FinalJournalSize {
		return ErrInvalidJournal
	}

	m, ok, err := c.store.Get(sessionID)
	if err != nil {
		return fmt.Errorf("store lookup: %w", err)
	}
	if !ok {
		return ErrMatchNotFound
	}
	if m.Status == StatusSettled {
		return ErrMatchAlreadySettled
	}

	digest := sha256.Sum256(journal)
	if err := c.verifier.Verify(seal, c.imageID, digest); err != nil {
		return fmt.Errorf("verifier rejected proof: %w", err)
	}

	fj, err := chunk.DecodeFinalJournal(journal)
	if err != nil {
		return ErrInvalidJournal
	}
	if fj.SeedCommit != m.SeedCommit {
		return ErrSeedMismatch
	}
	if fj.Winner != 0 && fj.Winner != 1 {
		return ErrInvalidWinner
	}

	m.Status = StatusSettled
	m.Winner = fj.Winner
	m.Scores = fj.Scores
	if err := c.store.Put(m); err != nil {
		return fmt.Errorf("store put: %w", err)
	}
	c.hub.NotifyMatchEnded(sessionID, fj.Winner, fj.Scores)
	return nil
}

// GetMatch returns the current record for sessionID.
func (c *Contract) GetMatch(sessionID string) (Match, error) {
	m, ok, err := c.store.Get(sessionID)
	if err != nil {
		return Match{}, fmt.Errorf("store lookup: %w", err)
	}
	if !ok {
		return Match{}, ErrMatchNotFound
	}
	return m, nil
}

func (c *Contract) requireAdmin(signature, payload []byte) error {
	ok, err := verifyAdminSignature(c.admin, signature, payload)
	if err != nil {
		return fmt.Errorf("signature check: %w", err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

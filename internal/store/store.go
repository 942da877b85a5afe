// Package store is the persistent backing for match settlement records,
// using the pure-Go modernc.org/sqlite driver so the binary stays
// cgo-free.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/AshFrancis/chickenz/internal/contractshim"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	session_id   TEXT PRIMARY KEY,
	player1      TEXT NOT NULL,
	player2      TEXT NOT NULL,
	seed_commit  BLOB NOT NULL,
	status       INTEGER NOT NULL,
	winner       INTEGER NOT NULL,
	score0       INTEGER NOT NULL,
	score1       INTEGER NOT NULL
);
`

// MatchStore is a sqlite-backed contractshim.MatchStore.
type MatchStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) a sqlite database at path and
// ensures the matches table exists.
func Open(path string) (*MatchStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &MatchStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *MatchStore) Close() error { return s.db.Close() }

// Get implements contractshim.MatchStore.
func (s *MatchStore) Get(sessionID string) (contractshim.Match, bool, error) {
	row := s.db.QueryRow(`SELECT player1, player2, seed_commit, status, winner, score0, score1
		FROM matches WHERE session_id = ?`, sessionID)

	var m contractshim.Match
	m.SessionID = sessionID
	var seedCommit []byte
	var status, winner int64
	var score0, score1 int64

	err := row.Scan(&m.Player1, &m.Player2, &seedCommit, &status, &winner, &score0, &score1)
	if errors.Is(err, sql.ErrNoRows) {
		return contractshim.Match{}, false, nil
	}
	if err != nil {
		return contractshim.Match{}, false, fmt.Errorf("query match %s: %w", sessionID, err)
	}

	copy(m.SeedCommit[:], seedCommit)
	m.Status = contractshim.MatchStatus(status)
	m.Winner = int32(winner)
	m.Scores = [2]uint32{uint32(score0), uint32(score1)}
	return m, true, nil
}

// Put implements contractshim.MatchStore.
func (s *MatchStore) Put(m contractshim.Match) error {
	_, err := s.db.Exec(`INSERT INTO matches (session_id, player1, player2, seed_commit, status, winner, score0, score1)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			player1=excluded.player1, player2=excluded.player2, seed_commit=excluded.seed_commit,
			status=excluded.status, winner=excluded.winner, score0=excluded.score0, score1=excluded.score1`,
		m.SessionID, m.Player1, m.Player2, m.SeedCommit[:], int64(m.Status), int64(m.Winner),
		int64(m.Scores[0]), int64(m.Scores[1]))
	if err != nil {
		return fmt.Errorf("upsert match %s: %w", m.SessionID, err)
	}
	return nil
}

var _ contractshim.MatchStore = (*MatchStore)(nil)

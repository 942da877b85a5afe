package hostapi

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AshFrancis/chickenz/internal/contractshim"
	"github.com/AshFrancis/chickenz/internal/runner"
	"github.com/AshFrancis/chickenz/internal/sim"
)

var errInvalidLength = errors.New("decoded value has the wrong length")

// ContractInterface is the minimal settlement-shim surface the HTTP
// layer calls. Keeping it this small lets tests supply a fake contract
// without wiring a real store, verifier, or hub.
type ContractInterface interface {
	StartMatch(signature, payload []byte, sessionID, player1, player2 string, seedCommit [32]byte, initialLives int32) error
	SettleMatch(sessionID string, seal []byte, journal []byte) error
	GetMatch(sessionID string) (contractshim.Match, error)
}

type routeHandlers struct {
	contract   ContractInterface
	simMap     *sim.Map
	spectate   *SpectateHub
	matchRules sim.MatchConfig
}

type startMatchRequest struct {
	SessionID    string `json:"session_id"`
	Player1      string `json:"player1"`
	Player2      string `json:"player2"`
	SeedCommit   string `json:"seed_commit_hex"`
	InitialLives int32  `json:"initial_lives"`
	SignatureHex string `json:"signature_hex"`
	PayloadHex   string `json:"payload_hex"`
}

func (h *routeHandlers) handleStartMatch(w http.ResponseWriter, r *http.Request) {
	var req startMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	seedCommit, err := decodeHex32(req.SeedCommit)
	if err != nil {
		writeError(w, "invalid seed_commit_hex", http.StatusBadRequest)
		return
	}
	signature, err := hex.DecodeString(req.SignatureHex)
	if err != nil {
		writeError(w, "invalid signature_hex", http.StatusBadRequest)
		return
	}
	payload, err := hex.DecodeString(req.PayloadHex)
	if err != nil {
		writeError(w, "invalid payload_hex", http.StatusBadRequest)
		return
	}

	if err := h.contract.StartMatch(signature, payload, req.SessionID, req.Player1, req.Player2, seedCommit, req.InitialLives); err != nil {
		RecordSettleRejected("start_" + err.Error())
		writeError(w, err.Error(), statusForSettlementError(err))
		return
	}
	RecordMatchStarted()
	writeJSON(w, map[string]string{"status": "started"})
}

type settleMatchRequest struct {
	SealHex    string `json:"seal_hex"`
	JournalHex string `json:"journal_hex"`
}

func (h *routeHandlers) handleSettleMatch(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req settleMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	seal, err := hex.DecodeString(req.SealHex)
	if err != nil {
		writeError(w, "invalid seal_hex", http.StatusBadRequest)
		return
	}
	journal, err := hex.DecodeString(req.JournalHex)
	if err != nil {
		writeError(w, "invalid journal_hex", http.StatusBadRequest)
		return
	}

	if err := h.contract.SettleMatch(sessionID, seal, journal); err != nil {
		RecordSettleRejected(err.Error())
		writeError(w, err.Error(), statusForSettlementError(err))
		return
	}
	RecordMatchSettled()
	writeJSON(w, map[string]string{"status": "settled"})
}

func (h *routeHandlers) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	m, err := h.contract.GetMatch(sessionID)
	if err != nil {
		writeError(w, err.Error(), statusForSettlementError(err))
		return
	}
	writeJSON(w, map[string]interface{}{
		"session_id":  m.SessionID,
		"player1":     m.Player1,
		"player2":     m.Player2,
		"seed_commit": hex.EncodeToString(m.SeedCommit[:]),
		"status":      m.Status,
		"winner":      m.Winner,
		"scores":      m.Scores,
	})
}

// runTranscriptRequest lets an operator dry-run a raw transcript
// against the simulation core without going through a chunked proof,
// useful for local debugging before submitting to a prover.
type runTranscriptRequest struct {
	TranscriptHex string `json:"transcript_hex"`
}

func (h *routeHandlers) handleRunTranscript(w http.ResponseWriter, r *http.Request) {
	var req runTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	transcript, err := hex.DecodeString(req.TranscriptHex)
	if err != nil {
		writeError(w, "invalid transcript_hex", http.StatusBadRequest)
		return
	}

	cfg := h.matchRules
	cfg.Map = h.simMap
	result, err := runner.Run(transcript, cfg, h.simMap)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]interface{}{
		"transcript_hash": hex.EncodeToString(result.TranscriptHash[:]),
		"seed_commit":     hex.EncodeToString(result.SeedCommit[:]),
		"final_tick":      result.FinalState.Tick,
		"match_over":      result.FinalState.MatchOver,
		"winner":          result.FinalState.Winner,
		"scores":          result.FinalState.Score,
	})
}

func (h *routeHandlers) handleGetWeapons(w http.ResponseWriter, r *http.Request) {
	weapons := make(map[string]sim.WeaponStats, sim.NumWeaponKinds)
	for _, kind := range sim.WeaponRotation {
		weapons[weaponKindName(kind)] = sim.Stats(kind)
	}
	writeJSON(w, weapons)
}

func weaponKindName(k sim.WeaponKind) string {
	switch k {
	case sim.WeaponPistol:
		return "pistol"
	case sim.WeaponShotgun:
		return "shotgun"
	case sim.WeaponSniper:
		return "sniper"
	case sim.WeaponRocket:
		return "rocket"
	case sim.WeaponSMG:
		return "smg"
	default:
		return "unknown"
	}
}

func decodeHex32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, errInvalidLength
	}
	copy(out[:], b)
	return out, nil
}

func statusForSettlementError(err error) int {
	switch err {
	case contractshim.ErrUnauthorized:
		return http.StatusForbidden
	case contractshim.ErrMatchNotFound:
		return http.StatusNotFound
	case contractshim.ErrMatchAlreadyExists, contractshim.ErrMatchAlreadySettled:
		return http.StatusConflict
	case contractshim.ErrInvalidJournal, contractshim.ErrSeedMismatch, contractshim.ErrInvalidWinner:
		return http.StatusBadRequest
	case contractshim.ErrNotInitialized:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

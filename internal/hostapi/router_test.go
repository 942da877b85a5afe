package hostapi

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AshFrancis/chickenz/internal/contractshim"
	"github.com/AshFrancis/chickenz/internal/fp"
	"github.com/AshFrancis/chickenz/internal/sim"
)

type fakeContract struct {
	startErr  error
	settleErr error
	match     contractshim.Match
	getErr    error
}

func (f *fakeContract) StartMatch(signature, payload []byte, sessionID, player1, player2 string, seedCommit [32]byte, initialLives int32) error {
	return f.startErr
}

func (f *fakeContract) SettleMatch(sessionID string, seal []byte, journal []byte) error {
	return f.settleErr
}

func (f *fakeContract) GetMatch(sessionID string) (contractshim.Match, error) {
	return f.match, f.getErr
}

func testSimMap() *sim.Map {
	platforms := []sim.Platform{{X: 0, Y: fp.FromInt(400), Width: fp.FromInt(800), Height: fp.FromInt(32)}}
	spawns := []sim.SpawnPoint{{X: fp.FromInt(100), Y: fp.FromInt(100)}, {X: fp.FromInt(700), Y: fp.FromInt(100)}}
	weaponSpawns := []sim.SpawnPoint{{X: fp.FromInt(400), Y: fp.FromInt(300)}}
	return sim.NewMap(fp.FromInt(800), fp.FromInt(600), platforms, spawns, weaponSpawns)
}

func testRouter(t *testing.T, contract ContractInterface) http.Handler {
	t.Helper()
	cfg := RouterConfig{
		Contract: contract,
		SimMap:   testSimMap(),
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			CleanupInterval:   time.Hour,
		},
		DisableLogging: true,
	}
	return NewRouter(cfg)
}

func TestNewRouterReturnsRouter(t *testing.T) {
	r := testRouter(t, &fakeContract{})
	if r == nil {
		t.Fatal("router should not be nil")
	}
}

func TestHandleGetWeaponsReturnsAllKinds(t *testing.T) {
	r := testRouter(t, &fakeContract{})
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/weapons")
	if err != nil {
		t.Fatalf("get weapons: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var weapons map[string]sim.WeaponStats
	if err := json.NewDecoder(resp.Body).Decode(&weapons); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(weapons) != sim.NumWeaponKinds {
		t.Fatalf("got %d weapons, want %d", len(weapons), sim.NumWeaponKinds)
	}
}

func TestHandleStartMatchRejectsUnauthorized(t *testing.T) {
	r := testRouter(t, &fakeContract{startErr: contractshim.ErrUnauthorized})
	ts := httptest.NewServer(r)
	defer ts.Close()

	body, _ := json.Marshal(startMatchRequest{
		SessionID:    "sess1",
		SeedCommit:   hex.EncodeToString(make([]byte, 32)),
		SignatureHex: "aa",
		PayloadHex:   "bb",
	})
	resp, err := http.Post(ts.URL+"/api/matches", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestHandleGetMatchNotFound(t *testing.T) {
	r := testRouter(t, &fakeContract{getErr: contractshim.ErrMatchNotFound})
	ts := httptest.NewServer(r)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/matches/missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleRunTranscriptRejectsGarbage(t *testing.T) {
	r := testRouter(t, &fakeContract{})
	ts := httptest.NewServer(r)
	defer ts.Close()

	body, _ := json.Marshal(runTranscriptRequest{TranscriptHex: "zz"})
	resp, err := http.Post(ts.URL+"/api/transcripts/run", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

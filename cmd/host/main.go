package main

import (
	"context"
	"encoding/hex"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/AshFrancis/chickenz/internal/config"
	"github.com/AshFrancis/chickenz/internal/contractshim"
	"github.com/AshFrancis/chickenz/internal/hostapi"
	"github.com/AshFrancis/chickenz/internal/mapdef"
	"github.com/AshFrancis/chickenz/internal/sim"
	"github.com/AshFrancis/chickenz/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	log.Println("====================================")
	log.Println(" chickenz settlement host")
	log.Println("====================================")

	cfg := config.Load()

	simMap, err := mapdef.LoadSimMap(cfg.Server.MapPath)
	if err != nil {
		log.Fatalf("load map %s: %v", cfg.Server.MapPath, err)
	}

	db, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("open match store: %v", err)
	}
	defer db.Close()

	adminPubKey, err := hex.DecodeString(cfg.Verifier.AdminPubKeyHex)
	if err != nil {
		log.Fatalf("invalid ADMIN_PUBKEY_HEX: %v", err)
	}

	var imageID [32]byte
	if cfg.Verifier.GuestImageIDHex != "" {
		decoded, err := hex.DecodeString(cfg.Verifier.GuestImageIDHex)
		if err != nil || len(decoded) != 32 {
			log.Fatalf("invalid GUEST_IMAGE_ID_HEX")
		}
		copy(imageID[:], decoded)
	}

	hub := &noopHub{}
	verifier := contractshim.AcceptAllVerifier{}
	if !cfg.Verifier.UseDevVerifier {
		log.Println("warning: no production zkVM verifier wired, falling back to AcceptAllVerifier")
	}

	contract := contractshim.New(db, verifier, hub)
	if err := contract.Initialize(adminPubKey, imageID); err != nil {
		log.Fatalf("initialize settlement contract: %v", err)
	}

	var tokenIssuer *hostapi.TokenIssuer
	if cfg.Admin.Enabled {
		tokenIssuer = hostapi.NewTokenIssuer([]byte(cfg.Admin.JWTSecret), cfg.Admin.TokenTTL)
		log.Println("admin HTTP auth ENABLED")
	} else {
		log.Println("admin HTTP auth DISABLED (set ADMIN_AUTH_ENABLED=true to enable)")
	}

	spectate := hostapi.NewSpectateHub()
	server := hostapi.NewServer(hostapi.RouterConfig{
		Contract: contract,
		SimMap:   simMap,
		Spectate: spectate,
		MatchRules: sim.MatchConfig{
			InitialLives:         cfg.Match.InitialLives,
			MatchDurationTicks:   cfg.Match.MatchDurationTicks,
			SuddenDeathStartTick: cfg.Match.SuddenDeathStartTick,
		},
		TokenIssuer: tokenIssuer,
	}, hostapi.DefaultDebugConfig())

	go func() {
		addr := ":" + cfg.Server.Port
		log.Printf("host API listening on http://localhost%s", addr)
		if err := server.Start(addr); err != nil {
			log.Fatalf("host server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	server.Stop(context.Background())
	log.Println("goodbye")
}

type noopHub struct{}

func (noopHub) NotifyMatchStarted(sessionID, player1, player2 string, initialLives int32) {}
func (noopHub) NotifyMatchEnded(sessionID string, winner int32, scores [2]uint32)          {}

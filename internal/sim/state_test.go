package sim

import (
	"testing"

	"github.com/AshFrancis/chickenz/internal/fp"
)

func testMap() *Map {
	return NewMap(fp.FromInt(960), fp.FromInt(540),
		[]Platform{{X: fp.FromInt(0), Y: fp.FromInt(500), Width: fp.FromInt(960), Height: fp.FromInt(40)}},
		[]SpawnPoint{{X: fp.FromInt(120), Y: fp.FromInt(300)}, {X: fp.FromInt(800), Y: fp.FromInt(300)}},
		[]SpawnPoint{{X: fp.FromInt(440), Y: fp.FromInt(200)}},
	)
}

func TestNewStatePlacesPlayersAtSpawns(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})

	if s.Players[0].X != m.Spawns[0].X || s.Players[0].Y != m.Spawns[0].Y {
		t.Fatalf("player 0 at (%d,%d), want spawn (%d,%d)", s.Players[0].X, s.Players[0].Y, m.Spawns[0].X, m.Spawns[0].Y)
	}
	if s.Players[1].X != m.Spawns[1].X || s.Players[1].Y != m.Spawns[1].Y {
		t.Fatalf("player 1 at (%d,%d), want spawn (%d,%d)", s.Players[1].X, s.Players[1].Y, m.Spawns[1].X, m.Spawns[1].Y)
	}
	if s.Players[0].Facing != FacingRight || s.Players[1].Facing != FacingLeft {
		t.Fatalf("initial facings = %d, %d, want right/left", s.Players[0].Facing, s.Players[1].Facing)
	}
}

func TestNewStateAppliesDefaults(t *testing.T) {
	s := NewState(MatchConfig{Seed: 1, Map: testMap()})
	if s.CfgInitialLives != DefaultInitialLives {
		t.Fatalf("CfgInitialLives = %d, want %d", s.CfgInitialLives, DefaultInitialLives)
	}
	if s.CfgMatchDuration != DefaultMatchDuration {
		t.Fatalf("CfgMatchDuration = %d, want %d", s.CfgMatchDuration, DefaultMatchDuration)
	}
	if s.CfgSuddenDeathStart != DefaultSuddenDeath {
		t.Fatalf("CfgSuddenDeathStart = %d, want %d", s.CfgSuddenDeathStart, DefaultSuddenDeath)
	}
}

func TestNewStateHonorsExplicitConfig(t *testing.T) {
	s := NewState(MatchConfig{Seed: 1, Map: testMap(), InitialLives: 3, MatchDurationTicks: 600, SuddenDeathStartTick: 400})
	if s.CfgInitialLives != 3 || s.Players[0].Lives != 3 {
		t.Fatalf("CfgInitialLives/player lives = %d/%d, want 3/3", s.CfgInitialLives, s.Players[0].Lives)
	}
	if s.CfgMatchDuration != 600 {
		t.Fatalf("CfgMatchDuration = %d, want 600", s.CfgMatchDuration)
	}
	if s.CfgSuddenDeathStart != 400 {
		t.Fatalf("CfgSuddenDeathStart = %d, want 400", s.CfgSuddenDeathStart)
	}
}

func TestNewStatePopulatesPickupsFromMap(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})
	if int(s.PickupCount) != 1 {
		t.Fatalf("PickupCount = %d, want 1", s.PickupCount)
	}
	if s.Pickups[0].X != m.WeaponSpawns[0].X || s.Pickups[0].Weapon != WeaponPistol {
		t.Fatalf("pickup 0 = %+v, want at weapon spawn 0 with WeaponPistol", s.Pickups[0])
	}
}

func TestNewStatePlayersStartAliveAndUnarmed(t *testing.T) {
	s := NewState(MatchConfig{Seed: 1, Map: testMap()})
	for i, p := range s.Players {
		if !p.Alive() {
			t.Fatalf("player %d not alive at match start", i)
		}
		if p.Weapon != WeaponNone {
			t.Fatalf("player %d weapon = %d, want WeaponNone", i, p.Weapon)
		}
		if p.Health != MaxHealth {
			t.Fatalf("player %d health = %d, want %d", i, p.Health, MaxHealth)
		}
	}
	if s.Winner != -1 {
		t.Fatalf("Winner = %d, want -1 before any match conclusion", s.Winner)
	}
}

package sim

import (
	"testing"

	"github.com/AshFrancis/chickenz/internal/fp"
)

func noInput() [2]Input { return [2]Input{} }

func TestIdleMatchEndsByZoneDamageBeforeDuration(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 7, Map: m})

	const safetyCap = 3000
	ticks := 0
	for !s.MatchOver && ticks < safetyCap {
		Step(s, noInput(), m)
		ticks++
	}

	if !s.MatchOver {
		t.Fatalf("match never ended within %d ticks", safetyCap)
	}
	if s.Tick >= s.CfgMatchDuration {
		t.Fatalf("match ran to tick %d, want termination before duration %d (zone should have closed it)", s.Tick, s.CfgMatchDuration)
	}
	if s.Winner != 0 && s.Winner != 1 {
		t.Fatalf("Winner = %d, want 0 or 1 once the match is over", s.Winner)
	}
}

func TestPlayerMovesRightUnderHeldInput(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})
	startX := s.Players[0].X

	in := [2]Input{{Buttons: ButtonRight, AimX: 1}, {}}
	for i := 0; i < 20; i++ {
		Step(s, in, m)
	}

	if s.Players[0].X <= startX {
		t.Fatalf("player X = %d after holding right, want > start %d", s.Players[0].X, startX)
	}
	if s.Players[0].Facing != FacingRight {
		t.Fatalf("Facing = %d, want FacingRight", s.Players[0].Facing)
	}
}

func TestArmedPistolFiresOneProjectile(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})
	s.Players[0].Weapon = WeaponPistol
	s.Players[0].Ammo = Stats(WeaponPistol).Ammo

	in := [2]Input{{Buttons: ButtonShoot, AimX: 1}, {}}
	Step(s, in, m)

	if s.ProjCount != 1 {
		t.Fatalf("ProjCount = %d, want 1", s.ProjCount)
	}
	if s.Projectiles[0].Weapon != WeaponPistol {
		t.Fatalf("projectile weapon = %d, want WeaponPistol", s.Projectiles[0].Weapon)
	}
	if s.Players[0].Ammo != Stats(WeaponPistol).Ammo-1 {
		t.Fatalf("ammo = %d, want %d", s.Players[0].Ammo, Stats(WeaponPistol).Ammo-1)
	}
}

func TestArmedShotgunFiresFivePellets(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})
	s.Players[0].Weapon = WeaponShotgun
	s.Players[0].Ammo = Stats(WeaponShotgun).Ammo

	in := [2]Input{{Buttons: ButtonShoot, AimX: 1}, {}}
	Step(s, in, m)

	if s.ProjCount != 5 {
		t.Fatalf("ProjCount = %d, want 5", s.ProjCount)
	}
	if s.Players[0].Ammo != Stats(WeaponShotgun).Ammo-1 {
		t.Fatalf("ammo = %d, want %d (one shell consumes all five pellets)", s.Players[0].Ammo, Stats(WeaponShotgun).Ammo-1)
	}
}

func TestWeaponPickupArmsOverlappingPlayer(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})
	pk := s.Pickups[0]
	s.Players[0].X = pk.X
	s.Players[0].Y = pk.Y

	Step(s, noInput(), m)

	if s.Players[0].Weapon != pk.Weapon {
		t.Fatalf("player weapon = %d after overlapping pickup, want %d", s.Players[0].Weapon, pk.Weapon)
	}
	if s.Players[0].Ammo != Stats(pk.Weapon).Ammo {
		t.Fatalf("player ammo = %d, want %d", s.Players[0].Ammo, Stats(pk.Weapon).Ammo)
	}
	if s.Pickups[0].RespawnTimer != WeaponPickupRespawnTicks {
		t.Fatalf("pickup respawn timer = %d, want %d", s.Pickups[0].RespawnTimer, WeaponPickupRespawnTicks)
	}
}

func TestMatchOverFreezesStateDuringTaunt(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})
	s.MatchOver = true
	s.Winner = 0
	s.Score = [2]uint32{3, 1}

	Step(s, noInput(), m)

	if s.Score != [2]uint32{3, 1} {
		t.Fatalf("score changed after match over: %+v", s.Score)
	}
	if s.Winner != 0 {
		t.Fatalf("winner changed after match over: %d", s.Winner)
	}
}

func TestTauntMovesUnderHeldInputAfterMatchOver(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})
	s.MatchOver = true
	s.Winner = 0
	startX := s.Players[0].X

	in := [2]Input{{Buttons: ButtonRight, AimX: 1}, {}}
	Step(s, in, m)

	if s.Players[0].X <= startX {
		t.Fatalf("player X = %d after taunting right post match-over, want > start %d", s.Players[0].X, startX)
	}
}

func TestTauntMovesUnderHeldInputDuringDeathLinger(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})
	s.DeathLingerTimer = DeathLingerTicks
	startX := s.Players[0].X

	in := [2]Input{{Buttons: ButtonRight, AimX: 1}, {}}
	Step(s, in, m)

	if s.Players[0].X <= startX {
		t.Fatalf("player X = %d after taunting right during death linger, want > start %d", s.Players[0].X, startX)
	}
}

func TestStompCooldownOnlyDecrementsWhenNotBeingStomped(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})

	rider := &s.Players[0]
	victim := &s.Players[1]
	rider.StompingOn = victim.ID
	victim.StompedBy = rider.ID
	rider.StompCooldown = 5
	victim.StompCooldown = 5

	Step(s, noInput(), m)

	if rider.StompCooldown != 4 {
		t.Fatalf("rider (not being stomped) StompCooldown = %d, want 4", rider.StompCooldown)
	}
	if victim.StompCooldown != 5 {
		t.Fatalf("victim (being stomped) StompCooldown = %d, want unchanged at 5", victim.StompCooldown)
	}
}

func TestStompAutoRunMovesVictimAndCarriesRider(t *testing.T) {
	m := testMap()
	s := NewState(MatchConfig{Seed: 1, Map: m})

	rider := &s.Players[0]
	victim := &s.Players[1]
	rider.StompingOn = victim.ID
	victim.StompedBy = rider.ID
	victim.X = fp.FromInt(400)
	victim.Y = fp.FromInt(300)
	victim.AutoRunDir = 1
	victim.AutoRunTimer = 10

	startX := victim.X
	Step(s, noInput(), m)

	wantVX := fp.Mul(fp.FromInt(victim.AutoRunDir), StompAutoRunSpeed)
	if victim.X != startX+wantVX {
		t.Fatalf("victim X = %d, want %d (start %d + auto-run vx %d)", victim.X, startX+wantVX, startX, wantVX)
	}
	if rider.X != victim.X || rider.Y != victim.Y-PlayerHeight {
		t.Fatalf("rider not carried to victim: rider=(%d,%d), victim=(%d,%d)", rider.X, rider.Y, victim.X, victim.Y)
	}
}

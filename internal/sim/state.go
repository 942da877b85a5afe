package sim

import "github.com/AshFrancis/chickenz/internal/fp"

// NewState constructs a fresh match State from a seed, map, and rule
// config. A new
// State is always required to start a new match; Step never resets one
// back to an initial condition.
func NewState(cfg MatchConfig) *State {
	cfg = cfg.withDefaults()
	m := cfg.Map

	s := &State{
		RNGState:            cfg.Seed,
		NextProjID:          0,
		ArenaLeft:           0,
		ArenaRight:          m.Width,
		Winner:              -1,
		CfgInitialLives:     cfg.InitialLives,
		CfgMatchDuration:    cfg.MatchDurationTicks,
		CfgSuddenDeathStart: cfg.SuddenDeathStartTick,
	}

	for i := range s.Projectiles {
		s.Projectiles[i] = EmptyProjectile
	}
	for i := range s.Pickups {
		s.Pickups[i] = EmptyPickup
	}

	for i := 0; i < 2; i++ {
		sp := m.Spawns[i%len(m.Spawns)]
		s.Players[i] = Player{
			ID:            int32(i),
			X:             sp.X,
			Y:             sp.Y,
			Facing:        FacingRight,
			Health:        MaxHealth,
			Lives:         cfg.InitialLives,
			StateFlags:    FlagAlive,
			Weapon:        WeaponNone,
			JumpsLeft:     MaxJumps,
			StompedBy:     -1,
			StompingOn:    -1,
			WallDir:       0,
		}
		if i == 1 {
			s.Players[i].Facing = FacingLeft
		}
	}

	s.PickupCount = uint8(len(m.WeaponSpawns))
	if s.PickupCount > NumWeaponSpawns {
		s.PickupCount = NumWeaponSpawns
	}
	for i := 0; i < int(s.PickupCount); i++ {
		sp := m.WeaponSpawns[i]
		s.Pickups[i] = WeaponPickup{
			ID:           int32(i),
			X:            sp.X,
			Y:            sp.Y,
			Weapon:       WeaponRotation[i%NumWeaponKinds],
			RespawnTimer: 0,
		}
	}

	return s
}

// NewMap constructs a Map from platform/spawn slices, clamping to the
// fixed capacities (platforms ≤ 8, spawns/weapon
// spawns == 4).
func NewMap(width, height fp.Fp, platforms []Platform, spawns, weaponSpawns []SpawnPoint) *Map {
	m := &Map{Width: width, Height: height}
	n := len(platforms)
	if n > MaxPlatforms {
		n = MaxPlatforms
	}
	for i := 0; i < n; i++ {
		m.Platforms[i] = platforms[i]
	}
	m.PlatformCount = uint8(n)

	for i := 0; i < NumSpawns && i < len(spawns); i++ {
		m.Spawns[i] = spawns[i]
	}
	for i := 0; i < NumWeaponSpawns && i < len(weaponSpawns); i++ {
		m.WeaponSpawns[i] = weaponSpawns[i]
	}
	return m
}

// Package sim implements the deterministic platform-shooter simulation
// core: the fixed-point data model, the weapon table, and the per-tick
// transition function. Every exported mutation is a pure function of
// (State, inputs, Map) with zero heap allocation in steady state, so the
// same code produces bit-identical results in a browser build, a native
// prover host, and a zkVM guest.
package sim

import "github.com/AshFrancis/chickenz/internal/fp"

// Button bitmask values for Input.Buttons.
const (
	ButtonLeft  uint8 = 1
	ButtonRight uint8 = 2
	ButtonJump  uint8 = 4
	ButtonShoot uint8 = 8
)

// Input is one player's per-tick control state: an 8-bit button mask plus
// a signed aim vector in {-1,0,+1} per axis.
type Input struct {
	Buttons uint8
	AimX    int8
	AimY    int8
}

func (in Input) pressed(mask uint8) bool { return in.Buttons&mask != 0 }

// PlayerStateFlag bitmask values for Player.StateFlags.
const (
	FlagAlive       uint32 = 1
	FlagInvincible  uint32 = 2
)

// Facing values.
const (
	FacingLeft  int32 = -1
	FacingRight int32 = 1
)

// Player is one of the two combatants. All fields are part of the
// canonical encoding and must be kept in the documented order
// when adding anything to the wire format.
type Player struct {
	ID  int32
	X, Y   fp.Fp
	VX, VY fp.Fp
	Facing int32
	Health int32
	Lives  int32

	ShootCooldown int32
	Grounded      bool
	StateFlags    uint32
	RespawnTimer  int32

	Weapon WeaponKind // -1 == unarmed
	Ammo   int32

	JumpsLeft   int32
	WallSliding bool
	WallDir     int32 // -1, 0, +1

	// Stomp relation fields.
	StompedBy       int32 // id of the player standing on this one, or -1
	StompingOn      int32 // id of the player this one is standing on, or -1
	ShakeProgress   fp.Fp
	LastShakeDir    int32 // last edge direction seen while shaking free, 0 = none
	AutoRunDir      int32
	AutoRunTimer    int32
	StompCooldown   int32
}

// Alive reports whether the ALIVE flag is set.
func (p *Player) Alive() bool { return p.StateFlags&FlagAlive != 0 }

// Invincible reports whether the INVINCIBLE flag is set.
func (p *Player) Invincible() bool { return p.StateFlags&FlagInvincible != 0 }

func (p *Player) setAlive(v bool) {
	if v {
		p.StateFlags |= FlagAlive
	} else {
		p.StateFlags &^= FlagAlive
	}
}

func (p *Player) setInvincible(v bool) {
	if v {
		p.StateFlags |= FlagInvincible
	} else {
		p.StateFlags &^= FlagInvincible
	}
}

// Projectile is a live shot in flight. The empty sentinel (see
// EmptyProjectile) fills unused capacity slots so the canonical encoding
// never depends on slice length or allocator behavior.
type Projectile struct {
	ID      int32
	OwnerID int32
	X, Y    fp.Fp
	VX, VY  fp.Fp
	Lifetime int32
	Weapon   WeaponKind
}

// EmptyProjectile is the sentinel value for unused projectile slots.
var EmptyProjectile = Projectile{ID: -1, OwnerID: -1, Weapon: -1}

// WeaponPickup is a world pickup point. RespawnTimer==0 means active
// (can be picked up); >0 counts down to respawn.
type WeaponPickup struct {
	ID           int32
	X, Y         fp.Fp
	Weapon       WeaponKind
	RespawnTimer int32
}

// EmptyPickup is the sentinel value for unused pickup slots.
var EmptyPickup = WeaponPickup{ID: -1, Weapon: -1}

// Platform is a static axis-aligned collision rectangle.
type Platform struct {
	X, Y, Width, Height fp.Fp
}

// SpawnPoint is a player or weapon spawn location.
type SpawnPoint struct {
	X, Y fp.Fp
}

const (
	MaxPlatforms  = 8
	NumSpawns     = 4
	NumWeaponSpawns = 4
)

// Map is the immutable per-match arena definition.
type Map struct {
	Width, Height     fp.Fp
	PlatformCount     uint8
	Platforms         [MaxPlatforms]Platform
	Spawns            [NumSpawns]SpawnPoint
	WeaponSpawns      [NumWeaponSpawns]SpawnPoint
}

// MatchConfig groups the inputs to NewState: the seed, the map, and the
// match rule knobs that State stores directly as Cfg* fields.
type MatchConfig struct {
	Seed                uint32
	Map                 *Map
	InitialLives        int32
	MatchDurationTicks  int32
	SuddenDeathStartTick int32
}

// withDefaults fills any zero-valued rule knobs with the platform's
// documented defaults (a single life per player, a 30-second match).
func (c MatchConfig) withDefaults() MatchConfig {
	if c.InitialLives == 0 {
		c.InitialLives = DefaultInitialLives
	}
	if c.MatchDurationTicks == 0 {
		c.MatchDurationTicks = DefaultMatchDuration
	}
	if c.SuddenDeathStartTick == 0 {
		c.SuddenDeathStartTick = DefaultSuddenDeath
	}
	return c
}

// State is the single mutable aggregate the tick transition operates on.
// Field order here mirrors the canonical encoding order; keep them
// in sync when adding fields.
type State struct {
	Tick int32

	Players [2]Player

	Projectiles [MaxProjectiles]Projectile
	ProjCount   uint8

	Pickups     [NumWeaponSpawns]WeaponPickup
	PickupCount uint8

	RNGState uint32
	Score    [2]uint32

	NextProjID int32

	ArenaLeft, ArenaRight fp.Fp

	MatchOver bool
	Winner    int32 // -1, 0, or 1

	DeathLingerTimer int32

	PrevButtons [2]uint8

	CfgInitialLives       int32
	CfgMatchDuration      int32
	CfgSuddenDeathStart   int32
}

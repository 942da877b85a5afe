package sim

import "github.com/AshFrancis/chickenz/internal/fp"

// Physics. Float values (GRAVITY=0.5, PLAYER_SPEED=4.0, ACCELERATION=0.8,
// DECELERATION=0.6, JUMP_VELOCITY=-12.0, MAX_FALL_SPEED=12.0,
// PLAYER_WIDTH=24, PLAYER_HEIGHT=32) converted to Q24.8.
const (
	Gravity        fp.Fp = 128   // 0.5
	PlayerSpeed    fp.Fp = 1024  // 4.0
	Acceleration   fp.Fp = 205   // 0.8 (rounded from 204.8)
	Deceleration   fp.Fp = 154   // 0.6 (rounded from 153.6)
	JumpVelocity   fp.Fp = -3072 // -12.0
	MaxFallSpeed   fp.Fp = 3072  // 12.0
	WallSlideSpeed fp.Fp = 512   // 2.0, capped fall speed while sliding a wall
	WallJumpPushX  fp.Fp = 768   // 3.0, horizontal push away from the wall on a wall jump

	PlayerWidth  fp.Fp = 6144 // 24.0
	PlayerHeight fp.Fp = 8192 // 32.0

	MaxHealth    int32 = 100
	MaxJumps     int32 = 2
	WallSlideBand fp.Fp = 512 // 2.0 fp-pixels: how close to a wall/boundary counts as "sliding"
)

// Match lifecycle.
const (
	InvincibleTicks      int32 = 60
	DeathLingerTicks      int32 = 30
	DefaultInitialLives   int32 = 1
	DefaultMatchDuration  int32 = 1800
	DefaultSuddenDeath    int32 = 1200
	SuddenDeathDuration   int32 = 600 // ticks over which the zone fully closes
	ZoneDamageInterval    int32 = 5
	ZoneDamageBase        int32 = 2 // base burst damage at progress=0, scales with progress
	ZoneDamageMax         int32 = 20
)

// Weapon pickups.
const (
	WeaponPickupRespawnTicks int32 = 300
	PickupRadius             fp.Fp = 4096 // 16.0
)

// Projectiles.
const (
	MaxProjectiles        = 24
	ProjectileOOBMargin   fp.Fp = 12800 // 50.0 fp-pixels outside map bounds
	ProjectileHalfHitbox  fp.Fp = 3072  // 12.0: half-width used for point/AABB hit tests
	DiagonalUnit          fp.Fp = 181   // 181/256 ≈ 1/sqrt(2)
	ShotgunSpreadStep     fp.Fp = 16    // 16/256 per-pellet perpendicular offset step
	ShotgunJitterMin      int32 = -6
	ShotgunJitterMax      int32 = 6
	ShotgunUpwardBiasNum  fp.Fp = 15 // mul(15, speed) subtracted from vy
)

// Stomp mechanics. Tick counts are tuned by feel against a 60-tick-per-
// second cadence rather than measured from a reference implementation.
const (
	StompHeadBand        fp.Fp = 2048 // 8.0 fp-pixels, "just entered head band"
	StompAutoRunMin      int32 = 30
	StompAutoRunMax      int32 = 90
	StompDamageInterval  int32 = 20
	StompDamagePerHit    int32 = 10
	StompShakePerPress   fp.Fp = 30
	StompShakeDecay      fp.Fp = 2
	StompShakeThreshold  fp.Fp = 100
	StompCooldownTicks   int32 = 30
	StompAutoRunSpeed    fp.Fp = 512 // 2.0, horizontal speed imposed on the victim
)

// Wall-slide detection band and AABB resolution; WallSlideBand above.
const (
	OverlapEpsilon fp.Fp = 1
)

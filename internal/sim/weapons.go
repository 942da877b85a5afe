package sim

import "github.com/AshFrancis/chickenz/internal/fp"

// WeaponKind indexes the weapon table. -1 means unarmed.
type WeaponKind int8

const (
	WeaponNone    WeaponKind = -1
	WeaponPistol  WeaponKind = 0
	WeaponShotgun WeaponKind = 1
	WeaponSniper  WeaponKind = 2
	WeaponRocket  WeaponKind = 3
	WeaponSMG     WeaponKind = 4

	NumWeaponKinds = 5
)

// WeaponStats is one row of the weapon table. Speed and
// SplashRadius are fixed-point; everything else is a plain integer.
type WeaponStats struct {
	Damage       int32
	Speed        fp.Fp
	Cooldown     int32
	Lifetime     int32
	Ammo         int32
	Pellets      int32
	SplashRadius fp.Fp
	SplashDamage int32
}

// weaponTable holds the five weapon rows in kind order.
var weaponTable = [NumWeaponKinds]WeaponStats{
	WeaponPistol: {
		Damage: 20, Speed: fp.FromInt(8), Cooldown: 12, Lifetime: 90,
		Ammo: 15, Pellets: 1, SplashRadius: 0, SplashDamage: 0,
	},
	WeaponShotgun: {
		Damage: 12, Speed: fp.FromInt(7), Cooldown: 30, Lifetime: 45,
		Ammo: 6, Pellets: 5, SplashRadius: 0, SplashDamage: 0,
	},
	WeaponSniper: {
		Damage: 80, Speed: fp.FromInt(16), Cooldown: 60, Lifetime: 120,
		Ammo: 3, Pellets: 1, SplashRadius: 0, SplashDamage: 0,
	},
	WeaponRocket: {
		Damage: 50, Speed: fp.FromInt(5), Cooldown: 45, Lifetime: 120,
		Ammo: 4, Pellets: 1, SplashRadius: fp.FromInt(40), SplashDamage: 25,
	},
	WeaponSMG: {
		Damage: 10, Speed: fp.FromInt(9), Cooldown: 5, Lifetime: 60,
		Ammo: 40, Pellets: 1, SplashRadius: 0, SplashDamage: 0,
	},
}

// WeaponRotation is the cycle pickups draw from when respawning.
var WeaponRotation = [NumWeaponKinds]WeaponKind{
	WeaponPistol, WeaponShotgun, WeaponSniper, WeaponRocket, WeaponSMG,
}

// Stats returns the weapon row for kind, falling back to Pistol for any
// out-of-range index.
func Stats(kind WeaponKind) WeaponStats {
	if kind < 0 || int(kind) >= NumWeaponKinds {
		return weaponTable[WeaponPistol]
	}
	return weaponTable[kind]
}

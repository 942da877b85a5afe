package sim

import "testing"

func TestStatsReturnsEachTableRow(t *testing.T) {
	cases := []struct {
		kind   WeaponKind
		pellet int32
	}{
		{WeaponPistol, 1},
		{WeaponShotgun, 5},
		{WeaponSniper, 1},
		{WeaponRocket, 1},
		{WeaponSMG, 1},
	}
	for _, c := range cases {
		st := Stats(c.kind)
		if st.Pellets != c.pellet {
			t.Errorf("Stats(%d).Pellets = %d, want %d", c.kind, st.Pellets, c.pellet)
		}
		if st.Ammo <= 0 {
			t.Errorf("Stats(%d).Ammo = %d, want > 0", c.kind, st.Ammo)
		}
	}
}

func TestStatsFallsBackToPistolForOutOfRangeKind(t *testing.T) {
	want := Stats(WeaponPistol)
	if got := Stats(WeaponNone); got != want {
		t.Fatalf("Stats(WeaponNone) = %+v, want pistol row %+v", got, want)
	}
	if got := Stats(WeaponKind(99)); got != want {
		t.Fatalf("Stats(99) = %+v, want pistol row %+v", got, want)
	}
}

func TestOnlyRocketHasSplashDamage(t *testing.T) {
	for k := WeaponKind(0); int(k) < NumWeaponKinds; k++ {
		st := Stats(k)
		if k == WeaponRocket {
			if st.SplashRadius <= 0 || st.SplashDamage <= 0 {
				t.Errorf("rocket has no splash: %+v", st)
			}
			continue
		}
		if st.SplashRadius != 0 || st.SplashDamage != 0 {
			t.Errorf("weapon %d has unexpected splash: %+v", k, st)
		}
	}
}

func TestWeaponRotationCoversEveryKind(t *testing.T) {
	seen := make(map[WeaponKind]bool)
	for _, k := range WeaponRotation {
		seen[k] = true
	}
	if len(seen) != NumWeaponKinds {
		t.Fatalf("WeaponRotation covers %d kinds, want %d", len(seen), NumWeaponKinds)
	}
}

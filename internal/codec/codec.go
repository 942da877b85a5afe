// Package codec implements the canonical little-endian encoding of a
// simulation State and of the raw input transcript, plus the streaming
// hash variants that must produce byte-identical digests to the buffered
// path. Nothing here branches on map shape or collection length beyond
// the explicit proj_count/pickup_count byte, so the same bytes come out
// of a browser build, a native host, and a zkVM guest.
package codec

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/AshFrancis/chickenz/internal/fp"
	"github.com/AshFrancis/chickenz/internal/sim"
)

// StateByteLen returns the exact encoded length of s, so callers can
// size buffers or padding without a trial encode.
func StateByteLen(s *sim.State) int {
	const perPlayer = 4 + 4*8 + 1 + 4 + 4 + 1 + 4*2 + 1 + 4*8
	const perProjectile = 4*6 + 4 + 1
	const perPickup = 4*3 + 1 + 4
	n := 4 // tick
	n += 2 * perPlayer
	n += 1 + int(s.ProjCount)*perProjectile
	n += 1 + int(s.PickupCount)*perPickup
	n += 4 + 4 + 4 // rng_state, score[0], score[1]
	n += 4         // next_proj_id
	n += 4 + 4     // arena_left, arena_right
	n += 1 + 4     // match_over, winner
	n += 4         // death_linger_timer
	n += 1 + 1     // prev_buttons
	n += 4 + 4 + 4 // cfg_*
	return n
}

// EncodeState produces the canonical byte encoding of s.
func EncodeState(s *sim.State) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, StateByteLen(s)))
	// WriteState never fails against a bytes.Buffer.
	_ = WriteState(buf, s)
	return buf.Bytes()
}

// WriteState streams the canonical encoding of s to w field by field, so
// a caller can pass a hash.Hash directly and never materialize the byte
// buffer.
func WriteState(w io.Writer, s *sim.State) error {
	var scratch [4]byte

	writeI32 := func(v int32) error {
		binary.LittleEndian.PutUint32(scratch[:4], uint32(v))
		_, err := w.Write(scratch[:4])
		return err
	}
	writeFp := func(v fp.Fp) error { return writeI32(int32(v)) }
	writeU32 := func(v uint32) error {
		binary.LittleEndian.PutUint32(scratch[:4], v)
		_, err := w.Write(scratch[:4])
		return err
	}
	writeByte := func(v byte) error {
		scratch[0] = v
		_, err := w.Write(scratch[:1])
		return err
	}
	writeBool := func(v bool) error {
		if v {
			return writeByte(1)
		}
		return writeByte(0)
	}
	writeWeapon := func(k sim.WeaponKind) error { return writeByte(byte(int8(k))) }

	if err := writeI32(s.Tick); err != nil {
		return err
	}

	for i := range s.Players {
		p := &s.Players[i]
		fields := []func() error{
			func() error { return writeI32(p.ID) },
			func() error { return writeFp(p.X) },
			func() error { return writeFp(p.Y) },
			func() error { return writeFp(p.VX) },
			func() error { return writeFp(p.VY) },
			func() error { return writeI32(p.Facing) },
			func() error { return writeI32(p.Health) },
			func() error { return writeI32(p.Lives) },
			func() error { return writeI32(p.ShootCooldown) },
			func() error { return writeBool(p.Grounded) },
			func() error { return writeU32(p.StateFlags) },
			func() error { return writeI32(p.RespawnTimer) },
			func() error { return writeWeapon(p.Weapon) },
			func() error { return writeI32(p.Ammo) },
			func() error { return writeI32(p.JumpsLeft) },
			func() error { return writeBool(p.WallSliding) },
			func() error { return writeI32(p.WallDir) },
			func() error { return writeI32(p.StompedBy) },
			func() error { return writeI32(p.StompingOn) },
			func() error { return writeFp(p.ShakeProgress) },
			func() error { return writeI32(p.LastShakeDir) },
			func() error { return writeI32(p.AutoRunDir) },
			func() error { return writeI32(p.AutoRunTimer) },
			func() error { return writeI32(p.StompCooldown) },
		}
		for _, f := range fields {
			if err := f(); err != nil {
				return err
			}
		}
	}

	if err := writeByte(s.ProjCount); err != nil {
		return err
	}
	for i := 0; i < int(s.ProjCount); i++ {
		pr := &s.Projectiles[i]
		if err := writeI32(pr.ID); err != nil {
			return err
		}
		if err := writeI32(pr.OwnerID); err != nil {
			return err
		}
		if err := writeFp(pr.X); err != nil {
			return err
		}
		if err := writeFp(pr.Y); err != nil {
			return err
		}
		if err := writeFp(pr.VX); err != nil {
			return err
		}
		if err := writeFp(pr.VY); err != nil {
			return err
		}
		if err := writeI32(pr.Lifetime); err != nil {
			return err
		}
		if err := writeWeapon(pr.Weapon); err != nil {
			return err
		}
	}

	if err := writeByte(s.PickupCount); err != nil {
		return err
	}
	for i := 0; i < int(s.PickupCount); i++ {
		pk := &s.Pickups[i]
		if err := writeI32(pk.ID); err != nil {
			return err
		}
		if err := writeFp(pk.X); err != nil {
			return err
		}
		if err := writeFp(pk.Y); err != nil {
			return err
		}
		if err := writeWeapon(pk.Weapon); err != nil {
			return err
		}
		if err := writeI32(pk.RespawnTimer); err != nil {
			return err
		}
	}

	if err := writeU32(s.RNGState); err != nil {
		return err
	}
	if err := writeU32(s.Score[0]); err != nil {
		return err
	}
	if err := writeU32(s.Score[1]); err != nil {
		return err
	}
	if err := writeI32(s.NextProjID); err != nil {
		return err
	}
	if err := writeFp(s.ArenaLeft); err != nil {
		return err
	}
	if err := writeFp(s.ArenaRight); err != nil {
		return err
	}
	if err := writeBool(s.MatchOver); err != nil {
		return err
	}
	if err := writeI32(s.Winner); err != nil {
		return err
	}
	if err := writeI32(s.DeathLingerTimer); err != nil {
		return err
	}
	if err := writeByte(s.PrevButtons[0]); err != nil {
		return err
	}
	if err := writeByte(s.PrevButtons[1]); err != nil {
		return err
	}
	if err := writeI32(s.CfgInitialLives); err != nil {
		return err
	}
	if err := writeI32(s.CfgMatchDuration); err != nil {
		return err
	}
	return writeI32(s.CfgSuddenDeathStart)
}

// HashState returns SHA-256 of the canonical encoding of s, computed via
// the streaming path (WriteState into the hasher directly) so it is
// always consistent with EncodeState by construction.
func HashState(s *sim.State) [32]byte {
	h := sha256.New()
	_ = WriteState(h, s)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DecodeState parses the canonical encoding produced by EncodeState. It
// is the decoder half of the round-trip law: decode(encode(s)) == s for
// every reachable state.
func DecodeState(data []byte) (*sim.State, error) {
	r := bytes.NewReader(data)
	var scratch [4]byte

	readI32 := func() (int32, error) {
		if _, err := io.ReadFull(r, scratch[:4]); err != nil {
			return 0, err
		}
		return int32(binary.LittleEndian.Uint32(scratch[:4])), nil
	}
	readFp := func() (fp.Fp, error) {
		v, err := readI32()
		return fp.Fp(v), err
	}
	readU32 := func() (uint32, error) {
		if _, err := io.ReadFull(r, scratch[:4]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint32(scratch[:4]), nil
	}
	readByte := func() (byte, error) {
		if _, err := io.ReadFull(r, scratch[:1]); err != nil {
			return 0, err
		}
		return scratch[0], nil
	}
	readBool := func() (bool, error) {
		b, err := readByte()
		return b != 0, err
	}
	readWeapon := func() (sim.WeaponKind, error) {
		b, err := readByte()
		return sim.WeaponKind(int8(b)), err
	}

	s := &sim.State{}

	tick, err := readI32()
	if err != nil {
		return nil, fmt.Errorf("decode tick: %w", err)
	}
	s.Tick = tick

	for i := range s.Players {
		p := &s.Players[i]
		var rerr error
		assign := func(dst *int32) { *dst, rerr = readI32() }
		assignFp := func(dst *fp.Fp) { *dst, rerr = readFp() }

		assign(&p.ID)
		assignFp(&p.X)
		assignFp(&p.Y)
		assignFp(&p.VX)
		assignFp(&p.VY)
		assign(&p.Facing)
		assign(&p.Health)
		assign(&p.Lives)
		assign(&p.ShootCooldown)
		if rerr == nil {
			p.Grounded, rerr = readBool()
		}
		if rerr == nil {
			p.StateFlags, rerr = readU32()
		}
		assign(&p.RespawnTimer)
		if rerr == nil {
			p.Weapon, rerr = readWeapon()
		}
		assign(&p.Ammo)
		assign(&p.JumpsLeft)
		if rerr == nil {
			p.WallSliding, rerr = readBool()
		}
		assign(&p.WallDir)
		assign(&p.StompedBy)
		assign(&p.StompingOn)
		assignFp(&p.ShakeProgress)
		assign(&p.LastShakeDir)
		assign(&p.AutoRunDir)
		assign(&p.AutoRunTimer)
		assign(&p.StompCooldown)
		if rerr != nil {
			return nil, fmt.Errorf("decode player %d: %w", i, rerr)
		}
	}

	for i := range s.Projectiles {
		s.Projectiles[i] = sim.EmptyProjectile
	}
	for i := range s.Pickups {
		s.Pickups[i] = sim.EmptyPickup
	}

	projCount, err := readByte()
	if err != nil {
		return nil, fmt.Errorf("decode proj_count: %w", err)
	}
	s.ProjCount = projCount
	for i := 0; i < int(projCount); i++ {
		pr := &s.Projectiles[i]
		var rerr error
		assign := func(dst *int32) { *dst, rerr = readI32() }
		assignFp := func(dst *fp.Fp) { *dst, rerr = readFp() }
		assign(&pr.ID)
		assign(&pr.OwnerID)
		assignFp(&pr.X)
		assignFp(&pr.Y)
		assignFp(&pr.VX)
		assignFp(&pr.VY)
		assign(&pr.Lifetime)
		if rerr == nil {
			pr.Weapon, rerr = readWeapon()
		}
		if rerr != nil {
			return nil, fmt.Errorf("decode projectile %d: %w", i, rerr)
		}
	}

	pickupCount, err := readByte()
	if err != nil {
		return nil, fmt.Errorf("decode pickup_count: %w", err)
	}
	s.PickupCount = pickupCount
	for i := 0; i < int(pickupCount); i++ {
		pk := &s.Pickups[i]
		var rerr error
		assign := func(dst *int32) { *dst, rerr = readI32() }
		assignFp := func(dst *fp.Fp) { *dst, rerr = readFp() }
		assign(&pk.ID)
		assignFp(&pk.X)
		assignFp(&pk.Y)
		if rerr == nil {
			pk.Weapon, rerr = readWeapon()
		}
		assign(&pk.RespawnTimer)
		if rerr != nil {
			return nil, fmt.Errorf("decode pickup %d: %w", i, rerr)
		}
	}

	if s.RNGState, err = readU32(); err != nil {
		return nil, fmt.Errorf("decode rng_state: %w", err)
	}
	if s.Score[0], err = readU32(); err != nil {
		return nil, fmt.Errorf("decode score[0]: %w", err)
	}
	if s.Score[1], err = readU32(); err != nil {
		return nil, fmt.Errorf("decode score[1]: %w", err)
	}
	if s.NextProjID, err = readI32(); err != nil {
		return nil, fmt.Errorf("decode next_proj_id: %w", err)
	}
	if s.ArenaLeft, err = readFp(); err != nil {
		return nil, fmt.Errorf("decode arena_left: %w", err)
	}
	if s.ArenaRight, err = readFp(); err != nil {
		return nil, fmt.Errorf("decode arena_right: %w", err)
	}
	if s.MatchOver, err = readBool(); err != nil {
		return nil, fmt.Errorf("decode match_over: %w", err)
	}
	if s.Winner, err = readI32(); err != nil {
		return nil, fmt.Errorf("decode winner: %w", err)
	}
	if s.DeathLingerTimer, err = readI32(); err != nil {
		return nil, fmt.Errorf("decode death_linger_timer: %w", err)
	}
	if s.PrevButtons[0], err = readByte(); err != nil {
		return nil, fmt.Errorf("decode prev_buttons[0]: %w", err)
	}
	if s.PrevButtons[1], err = readByte(); err != nil {
		return nil, fmt.Errorf("decode prev_buttons[1]: %w", err)
	}
	if s.CfgInitialLives, err = readI32(); err != nil {
		return nil, fmt.Errorf("decode cfg_initial_lives: %w", err)
	}
	if s.CfgMatchDuration, err = readI32(); err != nil {
		return nil, fmt.Errorf("decode cfg_match_duration: %w", err)
	}
	if s.CfgSuddenDeathStart, err = readI32(); err != nil {
		return nil, fmt.Errorf("decode cfg_sudden_death: %w", err)
	}

	return s, nil
}

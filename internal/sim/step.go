package sim

import (
	"github.com/AshFrancis/chickenz/internal/fp"
	"github.com/AshFrancis/chickenz/internal/prng"
)

// prngIntRange draws an inclusive integer in [lo, hi] and threads the RNG
// state forward, per the engine-wide rule that nothing keeps a hidden
// stateful generator.
func prngIntRange(state uint32, lo, hi int32) (int32, uint32) {
	return prng.IntRange(state, lo, hi)
}

// Step advances s by one tick given both players' inputs and the arena
// map. It is the only function that mutates State and never returns an
// error — every input is a defined mutation. Step performs
// zero heap allocations in steady state.
func Step(s *State, inputs [2]Input, m *Map) {
	if s.MatchOver {
		s.Tick++
		tauntPhysics(s, inputs, m)
		snapshotButtons(s, inputs)
		return
	}

	if s.DeathLingerTimer > 0 {
		s.Tick++
		tauntPhysics(s, inputs, m)
		s.DeathLingerTimer--
		if s.DeathLingerTimer == 0 {
			latchMatchOver(s)
		}
		snapshotButtons(s, inputs)
		return
	}

	s.Tick++

	// 2. cooldown / invincibility / stomp-cooldown timers.
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Alive() {
			continue
		}
		if p.ShootCooldown > 0 {
			p.ShootCooldown--
		}
		if p.Invincible() {
			if p.RespawnTimer > 0 {
				p.RespawnTimer--
			}
			if p.RespawnTimer == 0 {
				p.setInvincible(false)
			}
		}
		if p.StompedBy == -1 && p.StompCooldown > 0 {
			p.StompCooldown--
		}
	}

	// 3-5. input, gravity, integration + collision, wall-slide detection.
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Alive() || inStompRelation(p) {
			continue
		}
		applyInput(p, inputs[i], s.PrevButtons[i])
		applyGravity(p)
		integrateAndResolve(p, m)
	}

	// 6. stomp initiation.
	detectStompInitiation(s)

	// 7. stomp processing.
	processStomps(s, inputs, m)

	// 8. weapon pickup resolution.
	resolvePickups(s)

	// 9. shooting.
	processShooting(s, inputs)

	// 10. projectile advance & environmental despawn (+ splash).
	var killCreditKiller [2]int32
	var killCreditCount [2]int32
	var deadThisTick [2]bool
	advanceProjectiles(s, m, &killCreditKiller, &killCreditCount)

	// 11. projectile-player hit resolution (+ splash).
	resolveProjectileHits(s, &killCreditKiller, &killCreditCount, &deadThisTick)

	// stomp fatal kills were already scored directly in processStomps;
	// collect any stomp deaths so step 12 can process them uniformly.
	collectStompDeaths(s, &deadThisTick)

	// 12. death accounting.
	accountDeaths(s, &deadThisTick)

	// 13. sudden-death zone (only if the match didn't just end).
	if s.DeathLingerTimer == 0 {
		applySuddenDeathZone(s, m)
	}

	// 14. time-up.
	if s.DeathLingerTimer == 0 && !s.MatchOver && s.Tick >= s.CfgMatchDuration {
		latchTimeUp(s)
	}

	// 15. credit scores for projectile/splash kills.
	for i := 0; i < 2; i++ {
		s.Score[i] += uint32(killCreditCount[i])
	}

	// 16. pickup respawn timers.
	tickPickupRespawns(s)

	// 17. snapshot prev_buttons — must be the last step.
	snapshotButtons(s, inputs)
}

func snapshotButtons(s *State, inputs [2]Input) {
	s.PrevButtons[0] = inputs[0].Buttons
	s.PrevButtons[1] = inputs[1].Buttons
}

func inStompRelation(p *Player) bool {
	return p.StompingOn != -1 || p.StompedBy != -1
}

// tauntPhysics runs the subset of the main phase that keeps alive players
// moving (and thus visible taunting) during match_over / death-linger,
// without touching combat state, projectiles, or scores.
func tauntPhysics(s *State, inputs [2]Input, m *Map) {
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Alive() {
			continue
		}
		// movement keeps running during linger/over so a defeated player can
		// still hold left/right, turn, and jump while taunting, but nothing
		// here may touch combat state, projectiles, or scores.
		applyInput(p, inputs[i], s.PrevButtons[i])
		applyGravity(p)
		integrateAndResolve(p, m)
	}
}

func latchMatchOver(s *State) {
	s.MatchOver = true
	for i := range s.Projectiles {
		s.Projectiles[i] = EmptyProjectile
	}
	s.ProjCount = 0
	for i := range s.Pickups {
		s.Pickups[i] = EmptyPickup
	}
	s.PickupCount = 0
	for i := range s.Players {
		s.Players[i].Weapon = WeaponNone
		s.Players[i].Ammo = 0
	}
}

// ---- 3. input ---------------------------------------------------------

func applyInput(p *Player, in Input, prevButtons uint8) {
	left := in.pressed(ButtonLeft)
	right := in.pressed(ButtonRight)

	target := fp.Fp(0)
	switch {
	case left && !right:
		target = -PlayerSpeed
	case right && !left:
		target = PlayerSpeed
	}

	accelRate := Acceleration
	if target == 0 {
		accelRate = Deceleration
	}
	p.VX = moveToward(p.VX, target, accelRate)

	if in.AimX > 0 {
		p.Facing = FacingRight
	} else if in.AimX < 0 {
		p.Facing = FacingLeft
	}

	jumpNewlyPressed := in.pressed(ButtonJump) && prevButtons&ButtonJump == 0
	if jumpNewlyPressed && p.JumpsLeft > 0 {
		if p.WallSliding {
			p.VX = fp.Mul(fp.FromInt(-p.WallDir), WallJumpPushX)
			p.WallSliding = false
			p.WallDir = 0
		}
		p.VY = JumpVelocity
		p.JumpsLeft--
	}
}

func moveToward(v, target, rate fp.Fp) fp.Fp {
	if v < target {
		v += rate
		if v > target {
			v = target
		}
	} else if v > target {
		v -= rate
		if v < target {
			v = target
		}
	}
	return v
}

// ---- 4. gravity ---------------------------------------------------------

func applyGravity(p *Player) {
	maxFall := MaxFallSpeed
	if p.WallSliding {
		maxFall = WallSlideSpeed
	}
	p.VY = fp.Min(p.VY+Gravity, maxFall)
}

// ---- 5. integration + AABB collision -----------------------------------

func integrateAndResolve(p *Player, m *Map) {
	p.X += p.VX
	p.Y += p.VY

	p.Grounded = false
	p.WallSliding = false

	for i := 0; i < int(m.PlatformCount); i++ {
		resolvePlatform(p, &m.Platforms[i])
	}

	clampToArenaBoundsX(p, m)
	if p.Y < 0 {
		p.Y = 0
		if p.VY < 0 {
			p.VY = 0
		}
	}
	if p.Y+PlayerHeight >= m.Height {
		p.Y = m.Height - PlayerHeight
		p.VY = 0
		p.Grounded = true
	}

	if p.Grounded {
		p.JumpsLeft = MaxJumps
		p.WallDir = 0
	}

	// Wall-slide detection: airborne, falling, and pressing against a map
	// boundary or platform side band.
	if !p.Grounded && p.VY > 0 {
		wallDir := int32(0)
		if p.X <= WallSlideBand {
			wallDir = -1
		} else if p.X+PlayerWidth >= m.Width-WallSlideBand {
			wallDir = 1
		} else {
			wallDir = platformSideWall(p, m)
		}
		if wallDir != 0 {
			p.WallSliding = true
			p.Facing = -wallDir
			p.VX = 0
			p.WallDir = wallDir
			if p.JumpsLeft == 0 {
				p.JumpsLeft = 1
			}
		}
	}
}

// clampToArenaBoundsX pins p's horizontal position inside the map's width,
// shared by normal integration and by a stomp victim's auto-run, which
// moves horizontally without going through integrateAndResolve.
func clampToArenaBoundsX(p *Player, m *Map) {
	if p.X < 0 {
		p.X = 0
	}
	if p.X+PlayerWidth > m.Width {
		p.X = m.Width - PlayerWidth
	}
}

func platformSideWall(p *Player, m *Map) int32 {
	for i := 0; i < int(m.PlatformCount); i++ {
		pl := &m.Platforms[i]
		verticalOverlap := p.Y < pl.Y+pl.Height && p.Y+PlayerHeight > pl.Y
		if !verticalOverlap {
			continue
		}
		if fp.Abs((p.X+PlayerWidth)-pl.X) <= WallSlideBand {
			return 1
		}
		if fp.Abs(p.X-(pl.X+pl.Width)) <= WallSlideBand {
			return -1
		}
	}
	return 0
}

// resolvePlatform resolves an AABB overlap against one platform by
// minimum-penetration axis, ties broken in (left, right, top, bottom) order.
func resolvePlatform(p *Player, pl *Platform) {
	overlapX := fp.Min(p.X+PlayerWidth, pl.X+pl.Width) - fp.Max(p.X, pl.X)
	overlapY := fp.Min(p.Y+PlayerHeight, pl.Y+pl.Height) - fp.Max(p.Y, pl.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return
	}

	left := (p.X + PlayerWidth) - pl.X     // penetration if pushed left
	right := (pl.X + pl.Width) - p.X       // penetration if pushed right
	top := (p.Y + PlayerHeight) - pl.Y     // penetration if pushed up
	bottom := (pl.Y + pl.Height) - p.Y     // penetration if pushed down

	min := left
	axis := 0
	if right < min {
		min = right
		axis = 1
	}
	if top < min {
		min = top
		axis = 2
	}
	if bottom < min {
		min = bottom
		axis = 3
	}

	switch axis {
	case 0: // left
		p.X = pl.X - PlayerWidth
		if p.VX > 0 {
			p.VX = 0
		}
	case 1: // right
		p.X = pl.X + pl.Width
		if p.VX < 0 {
			p.VX = 0
		}
	case 2: // top: player lands on platform
		p.Y = pl.Y - PlayerHeight
		if p.VY >= 0 {
			p.VY = 0
			p.Grounded = true
		}
	case 3: // bottom: player hits the underside
		p.Y = pl.Y + pl.Height
		if p.VY < 0 {
			p.VY = 0
		}
	}
}

// ---- 6. stomp initiation ------------------------------------------------

func detectStompInitiation(s *State) {
	for ai := 0; ai < 2; ai++ {
		bi := 1 - ai
		a := &s.Players[ai]
		b := &s.Players[bi]
		if !a.Alive() || !b.Alive() {
			continue
		}
		if inStompRelation(a) || inStompRelation(b) {
			continue
		}
		if b.StompCooldown > 0 {
			continue
		}
		if a.VY <= 0 {
			continue
		}
		feetA := a.Y + PlayerHeight
		headB := b.Y
		enteredHeadBand := feetA >= headB && feetA <= headB+StompHeadBand
		horizontalOverlap := a.X < b.X+PlayerWidth && a.X+PlayerWidth > b.X
		if !enteredHeadBand || !horizontalOverlap {
			continue
		}

		a.StompingOn = b.ID
		b.StompedBy = a.ID
		a.X = b.X
		a.Y = b.Y - PlayerHeight
		a.Grounded = true
		a.VY = 0

		dir, next := runDirection(s.RNGState)
		s.RNGState = next
		timer, next2 := runTimer(s.RNGState)
		s.RNGState = next2
		b.AutoRunDir = dir
		b.AutoRunTimer = timer
		b.ShakeProgress = 0
		b.LastShakeDir = 0
	}
}

func runDirection(state uint32) (int32, uint32) {
	v, next := prngIntRange(state, 0, 1)
	if v == 0 {
		return -1, next
	}
	return 1, next
}

func runTimer(state uint32) (int32, uint32) {
	return prngIntRange(state, StompAutoRunMin, StompAutoRunMax)
}

// ---- 7. stomp processing -------------------------------------------------

func processStomps(s *State, inputs [2]Input, m *Map) {
	for ri := 0; ri < 2; ri++ {
		rider := &s.Players[ri]
		if rider.StompingOn == -1 {
			continue
		}
		vi := victimIndex(s, rider.StompingOn)
		if vi < 0 {
			rider.StompingOn = -1
			continue
		}
		victim := &s.Players[vi]

		if s.Tick%StompDamageInterval == 0 {
			victim.Health -= StompDamagePerHit
			if victim.Health <= 0 {
				s.Score[ri]++
				rider.VY = JumpVelocity / 2
				victim.Lives--
				clearStompRelation(rider, victim)
				continue
			}
		}

		victim.AutoRunTimer--
		if victim.AutoRunTimer <= 0 {
			victim.AutoRunDir = -victim.AutoRunDir
			timer, next := runTimer(s.RNGState)
			s.RNGState = next
			victim.AutoRunTimer = timer
		}
		victim.VX = fp.Mul(fp.FromInt(victim.AutoRunDir), StompAutoRunSpeed)
		victim.X += victim.VX
		clampToArenaBoundsX(victim, m)

		in := inputs[vi]
		prev := s.PrevButtons[vi]
		edgeDir := int32(0)
		if in.pressed(ButtonLeft) && prev&ButtonLeft == 0 {
			edgeDir = -1
		} else if in.pressed(ButtonRight) && prev&ButtonRight == 0 {
			edgeDir = 1
		}
		if edgeDir != 0 && edgeDir != victim.LastShakeDir {
			victim.ShakeProgress += StompShakePerPress
			victim.LastShakeDir = edgeDir
		}
		if victim.ShakeProgress > StompShakeDecay {
			victim.ShakeProgress -= StompShakeDecay
		} else {
			victim.ShakeProgress = 0
		}

		if victim.ShakeProgress >= StompShakeThreshold {
			rider.VY = JumpVelocity / 2
			victim.StompCooldown = StompCooldownTicks
			clearStompRelation(rider, victim)
			continue
		}

		rider.X = victim.X
		rider.Y = victim.Y - PlayerHeight
	}
}

func victimIndex(s *State, id int32) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func clearStompRelation(rider, victim *Player) {
	rider.StompingOn = -1
	victim.StompedBy = -1
}

// ---- 8. weapon pickup resolution -----------------------------------------

func resolvePickups(s *State) {
	for pi := 0; pi < int(s.PickupCount); pi++ {
		pk := &s.Pickups[pi]
		if pk.RespawnTimer > 0 {
			continue
		}
		for i := range s.Players {
			p := &s.Players[i]
			if !p.Alive() {
				continue
			}
			if aabbOverlapsRadius(p, pk.X, pk.Y, PickupRadius) {
				p.Weapon = pk.Weapon
				p.Ammo = Stats(pk.Weapon).Ammo
				p.ShootCooldown = 0
				// tickPickupRespawns runs later in this same tick and
				// decrements once, so the timer reads
				// WeaponPickupRespawnTicks at the end of the pickup tick.
				pk.RespawnTimer = WeaponPickupRespawnTicks + 1
				break
			}
		}
	}
}

func aabbOverlapsRadius(p *Player, cx, cy, radius fp.Fp) bool {
	return p.X < cx+radius && p.X+PlayerWidth > cx-radius &&
		p.Y < cy+radius && p.Y+PlayerHeight > cy-radius
}

// ---- 9. shooting ----------------------------------------------------------

func processShooting(s *State, inputs [2]Input) {
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Alive() || p.Weapon == WeaponNone {
			continue
		}
		in := inputs[i]
		if !in.pressed(ButtonShoot) || p.ShootCooldown > 0 || p.Ammo <= 0 {
			continue
		}

		stats := Stats(p.Weapon)
		p.ShootCooldown = stats.Cooldown

		aimX, aimY := in.AimX, in.AimY
		if p.WallSliding {
			aimX, aimY = int8(-p.WallDir), 0
		}
		nx, ny := normalizeAim(aimX, aimY, p.Facing)

		cx := p.X + PlayerWidth/2
		cy := p.Y + PlayerHeight/2
		spawnX := cx + fp.Mul(nx, PlayerWidth/2)
		spawnY := cy + fp.Mul(ny, PlayerHeight/2)

		if stats.Pellets > 1 {
			spawnShotgunSpread(s, p, spawnX, spawnY, nx, ny, stats)
		} else {
			spawnSingleProjectile(s, p, spawnX, spawnY, nx, ny, stats)
		}

		p.Ammo--
		if p.Ammo <= 0 {
			p.Weapon = WeaponNone
		}
	}
}

// normalizeAim resolves the zero-vector / axis-aligned / diagonal aim
// contract for the zero-vector and diagonal aim cases.
func normalizeAim(aimX, aimY int8, facing int32) (nx, ny fp.Fp) {
	switch {
	case aimX == 0 && aimY == 0:
		return fp.FromInt(facing), 0
	case aimX != 0 && aimY != 0:
		sx, sy := fp.Fp(1), fp.Fp(1)
		if aimX < 0 {
			sx = -1
		}
		if aimY < 0 {
			sy = -1
		}
		return sx * DiagonalUnit, sy * DiagonalUnit
	default:
		return fp.FromInt(int32(aimX)), fp.FromInt(int32(aimY))
	}
}

func spawnSingleProjectile(s *State, p *Player, x, y, nx, ny fp.Fp, stats WeaponStats) {
	if s.ProjCount >= MaxProjectiles {
		return
	}
	vx := fp.Mul(nx, stats.Speed)
	vy := fp.Mul(ny, stats.Speed)
	appendProjectile(s, p, x, y, vx, vy, stats)
}

func spawnShotgunSpread(s *State, p *Player, x, y, nx, ny fp.Fp, stats WeaponStats) {
	baseOffsets := [5]fp.Fp{-2 * ShotgunSpreadStep, -1 * ShotgunSpreadStep, 0, ShotgunSpreadStep, 2 * ShotgunSpreadStep}
	perpX, perpY := -ny, nx
	for i := 0; i < int(stats.Pellets) && i < len(baseOffsets); i++ {
		if s.ProjCount >= MaxProjectiles {
			return
		}
		jitter, next := prngIntRange(s.RNGState, ShotgunJitterMin, ShotgunJitterMax)
		s.RNGState = next

		offset := baseOffsets[i] + fp.FromInt(jitter)
		pvx := fp.Mul(nx, stats.Speed) + fp.Mul(perpX, offset)
		pvy := fp.Mul(ny, stats.Speed) + fp.Mul(perpY, offset)
		pvy -= fp.Mul(ShotgunUpwardBiasNum, stats.Speed)
		appendProjectile(s, p, x, y, pvx, pvy, stats)
	}
}

func appendProjectile(s *State, p *Player, x, y, vx, vy fp.Fp, stats WeaponStats) {
	idx := int(s.ProjCount)
	s.Projectiles[idx] = Projectile{
		ID:       s.NextProjID,
		OwnerID:  p.ID,
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Lifetime: stats.Lifetime,
		Weapon:   p.Weapon,
	}
	s.NextProjID++
	s.ProjCount++
}

// ---- 10. projectile advance + environmental despawn ----------------------

func advanceProjectiles(s *State, m *Map, killerOut, countOut *[2]int32) {
	write := 0
	for read := 0; read < int(s.ProjCount); read++ {
		pr := s.Projectiles[read]
		pr.X += pr.VX
		pr.Y += pr.VY
		pr.Lifetime--

		expired := pr.Lifetime <= 0
		outOfBounds := pr.X < -ProjectileOOBMargin || pr.X > m.Width+ProjectileOOBMargin ||
			pr.Y < -ProjectileOOBMargin || pr.Y > m.Height+ProjectileOOBMargin
		hitEnv := outOfBounds || hitsPlatform(pr, m)

		if expired || hitEnv {
			if pr.Weapon == WeaponRocket && hitEnv {
				applySplash(s, pr.X, pr.Y, pr.OwnerID, -1, killerOut, countOut)
			}
			continue
		}

		s.Projectiles[write] = pr
		write++
	}
	for i := write; i < int(s.ProjCount); i++ {
		s.Projectiles[i] = EmptyProjectile
	}
	s.ProjCount = uint8(write)
}

func hitsPlatform(pr Projectile, m *Map) bool {
	for i := 0; i < int(m.PlatformCount); i++ {
		pl := &m.Platforms[i]
		if pr.X >= pl.X && pr.X <= pl.X+pl.Width && pr.Y >= pl.Y && pr.Y <= pl.Y+pl.Height {
			return true
		}
	}
	return false
}

// ---- 11. projectile-player hit resolution ---------------------------------

func resolveProjectileHits(s *State, killerOut, countOut *[2]int32, deadOut *[2]bool) {
	write := 0
	for read := 0; read < int(s.ProjCount); read++ {
		pr := s.Projectiles[read]
		hit := -1
		for i := range s.Players {
			p := &s.Players[i]
			if int32(i) == pr.OwnerID || !p.Alive() || p.Invincible() {
				continue
			}
			if pointInPlayerAABB(pr.X, pr.Y, p) {
				hit = i
				break
			}
		}
		if hit == -1 {
			s.Projectiles[write] = pr
			write++
			continue
		}

		victim := &s.Players[hit]
		stats := Stats(pr.Weapon)
		victim.Health -= stats.Damage
		if victim.Health <= 0 {
			killerIdx := ownerIndex(s, pr.OwnerID)
			if killerIdx >= 0 {
				killerOut[killerIdx]++
				countOut[killerIdx]++
			}
			deadOut[hit] = true
		}

		if pr.Weapon == WeaponRocket {
			applySplash(s, pr.X, pr.Y, pr.OwnerID, int32(hit), killerOut, countOut)
		}
	}
	for i := write; i < int(s.ProjCount); i++ {
		s.Projectiles[i] = EmptyProjectile
	}
	s.ProjCount = uint8(write)
}

func pointInPlayerAABB(x, y fp.Fp, p *Player) bool {
	return x >= p.X-ProjectileHalfHitbox && x <= p.X+PlayerWidth+ProjectileHalfHitbox &&
		y >= p.Y-ProjectileHalfHitbox && y <= p.Y+PlayerHeight+ProjectileHalfHitbox
}

func ownerIndex(s *State, id int32) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// applySplash applies rocket splash damage centered at (cx,cy), skipping
// the owner and, when skipID != -1, the direct-hit victim, to avoid
// double-counting damage on a direct rocket hit.
func applySplash(s *State, cx, cy fp.Fp, ownerID, skipID int32, killerOut, countOut *[2]int32) {
	stats := Stats(WeaponRocket)
	if stats.SplashRadius <= 0 {
		return
	}
	for i := range s.Players {
		p := &s.Players[i]
		if p.ID == ownerID || p.ID == skipID || !p.Alive() || p.Invincible() {
			continue
		}
		px := p.X + PlayerWidth/2
		py := p.Y + PlayerHeight/2
		dist := fp.Abs(cx-px) + fp.Abs(cy-py) // Manhattan distance
		if dist >= stats.SplashRadius {
			continue
		}
		falloff := fp.One - fp.Div(dist, stats.SplashRadius)
		if falloff < 0 {
			falloff = 0
		}
		dmg := fp.ToInt(fp.Mul(fp.FromInt(stats.SplashDamage), falloff))
		if dmg < 0 {
			dmg = 0
		}
		p.Health -= dmg
		if p.Health <= 0 {
			killerIdx := ownerIndex(s, ownerID)
			if killerIdx >= 0 {
				killerOut[killerIdx]++
				countOut[killerIdx]++
			}
		}
	}
}

// ---- stomp death collection -----------------------------------------------

func collectStompDeaths(s *State, deadOut *[2]bool) {
	for i := range s.Players {
		p := &s.Players[i]
		if p.Alive() && p.Health <= 0 {
			deadOut[i] = true
		}
	}
}

// ---- 12. death accounting ---------------------------------------------

func accountDeaths(s *State, dead *[2]bool) {
	anyDead := false
	for i := range s.Players {
		if !dead[i] {
			continue
		}
		anyDead = true
		p := &s.Players[i]
		p.Lives--
		p.VX = 0
		p.VY = 0
		p.Health = 0
		for j := range s.Players {
			other := &s.Players[j]
			if other.StompingOn == p.ID {
				other.StompingOn = -1
			}
			if other.StompedBy == p.ID {
				other.StompedBy = -1
			}
		}
		if p.Lives <= 0 {
			p.setAlive(false)
		} else {
			p.Health = MaxHealth
			p.setInvincible(true)
			p.RespawnTimer = InvincibleTicks
		}
	}
	if !anyDead {
		return
	}
	checkElimination(s)
}

func checkElimination(s *State) {
	survivors := 0
	var lastAlive int
	for i := range s.Players {
		if s.Players[i].Alive() {
			survivors++
			lastAlive = i
		}
	}
	switch survivors {
	case 1:
		startLinger(s, int32(lastAlive))
	case 0:
		startLinger(s, tiebreak(s))
	}
}

func tiebreak(s *State) int32 {
	if s.Score[0] != s.Score[1] {
		if s.Score[0] > s.Score[1] {
			return 0
		}
		return 1
	}
	return 0
}

func startLinger(s *State, winner int32) {
	if s.DeathLingerTimer > 0 || s.MatchOver {
		return
	}
	s.Winner = winner
	s.DeathLingerTimer = DeathLingerTicks
}

// ---- 13. sudden-death zone -----------------------------------------------

func applySuddenDeathZone(s *State, m *Map) {
	if s.Tick < s.CfgSuddenDeathStart {
		s.ArenaLeft = 0
		s.ArenaRight = m.Width
		return
	}
	elapsed := s.Tick - s.CfgSuddenDeathStart
	progress := fp.Div(fp.FromInt(minInt32(elapsed, SuddenDeathDuration)), fp.FromInt(SuddenDeathDuration))
	progress = fp.Clamp(progress, 0, fp.One)

	half := m.Width / 2
	shrink := fp.Mul(progress, half)
	s.ArenaLeft = fp.Clamp(shrink, 0, half)
	s.ArenaRight = fp.Clamp(m.Width-shrink, half, m.Width)

	if s.Tick%ZoneDamageInterval != 0 {
		return
	}

	dmgRange := fp.FromInt(ZoneDamageMax - ZoneDamageBase)
	dmg := ZoneDamageBase + fp.ToInt(fp.Mul(dmgRange, progress))

	var dead [2]bool
	for i := range s.Players {
		p := &s.Players[i]
		if !p.Alive() {
			continue
		}
		cx := p.X + PlayerWidth/2
		if cx >= s.ArenaLeft && cx <= s.ArenaRight {
			continue
		}
		p.Health -= dmg
		if p.Health <= 0 {
			p.Lives--
			p.setAlive(false)
			dead[i] = true
		}
	}
	if dead[0] || dead[1] {
		checkElimination(s)
	}
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// ---- 14. time-up -----------------------------------------------------------

func latchTimeUp(s *State) {
	s.MatchOver = true
	winner := int32(-1)
	p0, p1 := &s.Players[0], &s.Players[1]
	switch {
	case p0.Lives != p1.Lives:
		if p0.Lives > p1.Lives {
			winner = 0
		} else {
			winner = 1
		}
	case p0.Health != p1.Health:
		if p0.Health > p1.Health {
			winner = 0
		} else {
			winner = 1
		}
	default:
		winner = 0
	}
	s.Winner = winner
}

// ---- 16. pickup respawn timers ---------------------------------------------

func tickPickupRespawns(s *State) {
	for pi := 0; pi < int(s.PickupCount); pi++ {
		pk := &s.Pickups[pi]
		if pk.RespawnTimer <= 0 {
			continue
		}
		pk.RespawnTimer--
		if pk.RespawnTimer == 0 {
			idx, next := prngIntRange(s.RNGState, 0, NumWeaponKinds-1)
			s.RNGState = next
			pk.Weapon = WeaponKind(idx)
		}
	}
}

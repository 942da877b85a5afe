// Package prng implements the integer-domain Mulberry32-equivalent PRNG
// used inside the tick transition. Every call is a pure function from one
// state to the next: callers thread the returned state explicitly rather
// than mutating shared package state, so the consumption order — part of
// the determinism contract in spec §4.B/§9 — is always visible at the call
// site instead of hidden inside a stateful generator.
package prng

// Next advances the PRNG one step, returning the drawn value (the upper 16
// bits of the mixed state, per the integer-range variant of spec §4.B) and
// the next state to feed back in.
func Next(state uint32) (value uint32, next uint32) {
	s := state + 0x6D2B79F5 // wrapping add (uint32 overflow wraps)
	next = s
	t := s * (s ^ (s >> 15)) // wrapping multiply, low 32 bits kept
	t = t + t*(t|1)          // wrapping
	value = (t ^ (t >> 14)) >> 16
	return value, next
}

// IntRange draws an integer in [lo, hi] inclusive using the high bits of a
// 64-bit widened multiply, per spec §4.B's
// "lo + ((r*(hi-lo+1)) >> 32)" formula.
func IntRange(state uint32, lo, hi int32) (value int32, next uint32) {
	r, next := Next(state)
	span := uint64(hi-lo) + 1
	offset := (uint64(r) * span) >> 32
	return lo + int32(offset), next
}

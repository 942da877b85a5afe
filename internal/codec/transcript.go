package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/AshFrancis/chickenz/internal/sim"
)

// TickByteLen is the size of one tick's encoded input pair.
const TickByteLen = 6

// EncodeTick packs one tick's two player inputs into the 6-byte wire
// layout: p0.buttons, p0.aim_x, p0.aim_y, p1.buttons, p1.aim_x, p1.aim_y.
func EncodeTick(inputs [2]sim.Input) [TickByteLen]byte {
	var out [TickByteLen]byte
	out[0] = inputs[0].Buttons
	out[1] = byte(inputs[0].AimX)
	out[2] = byte(inputs[0].AimY)
	out[3] = inputs[1].Buttons
	out[4] = byte(inputs[1].AimX)
	out[5] = byte(inputs[1].AimY)
	return out
}

// DecodeTick unpacks one 6-byte tick record.
func DecodeTick(b []byte) [2]sim.Input {
	return [2]sim.Input{
		{Buttons: b[0], AimX: int8(b[1]), AimY: int8(b[2])},
		{Buttons: b[3], AimX: int8(b[4]), AimY: int8(b[5])},
	}
}

// EncodeTranscript produces the raw host→guest transcript format:
// [seed:4 LE][tick_count:4 LE][tick_count × 6 bytes].
func EncodeTranscript(seed uint32, inputs [][2]sim.Input) []byte {
	buf := make([]byte, 8+len(inputs)*TickByteLen)
	binary.LittleEndian.PutUint32(buf[0:4], seed)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(inputs)))
	for i, in := range inputs {
		tick := EncodeTick(in)
		copy(buf[8+i*TickByteLen:], tick[:])
	}
	return buf
}

// DecodeTranscript parses the raw transcript format, returning the seed
// and the per-tick input pairs plus the raw 6-byte-per-tick slice (the
// caller needs the raw bytes to feed a streaming hasher without
// re-encoding).
func DecodeTranscript(data []byte) (seed uint32, ticks []byte, inputs [][2]sim.Input, err error) {
	if len(data) < 8 {
		return 0, nil, nil, fmt.Errorf("transcript too short: %d bytes", len(data))
	}
	seed = binary.LittleEndian.Uint32(data[0:4])
	count := binary.LittleEndian.Uint32(data[4:8])
	want := 8 + int(count)*TickByteLen
	if len(data) < want {
		return 0, nil, nil, fmt.Errorf("transcript truncated: want %d bytes, got %d", want, len(data))
	}
	ticks = data[8:want]
	inputs = make([][2]sim.Input, count)
	for i := 0; i < int(count); i++ {
		inputs[i] = DecodeTick(ticks[i*TickByteLen : i*TickByteLen+TickByteLen])
	}
	return seed, ticks, inputs, nil
}

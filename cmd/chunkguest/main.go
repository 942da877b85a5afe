// Command chunkguest runs one chunk of a match's tick transition and
// emits a 120-byte proof journal. Its input wire format is
// [state_byte_len:4 LE][tick_count:4 LE], the canonical state bytes
// padded to a 4-byte boundary, then tick_count*6 input bytes padded to
// a 4-byte boundary.
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/AshFrancis/chickenz/internal/chunk"
	"github.com/AshFrancis/chickenz/internal/codec"
	"github.com/AshFrancis/chickenz/internal/mapdef"
	"github.com/AshFrancis/chickenz/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chunkguest:", err)
		os.Exit(1)
	}
}

func padTo4(n int) int {
	if rem := n % 4; rem != 0 {
		return n + (4 - rem)
	}
	return n
}

func run() error {
	mapPath := os.Getenv("MAP_PATH")
	if mapPath == "" {
		mapPath = "maps/proving-grounds.yaml"
	}
	m, err := mapdef.LoadSimMap(mapPath)
	if err != nil {
		return fmt.Errorf("load map: %w", err)
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read chunk input: %w", err)
	}
	if len(input) < 8 {
		return fmt.Errorf("chunk input too short: %d bytes", len(input))
	}

	stateByteLen := int(binary.LittleEndian.Uint32(input[0:4]))
	tickCount := int(binary.LittleEndian.Uint32(input[4:8]))

	offset := 8
	paddedStateLen := padTo4(stateByteLen)
	if len(input) < offset+paddedStateLen {
		return fmt.Errorf("chunk input truncated in state section")
	}
	stateBytes := input[offset : offset+stateByteLen]
	offset += paddedStateLen

	tickBytesLen := tickCount * codec.TickByteLen
	paddedTickLen := padTo4(tickBytesLen)
	if len(input) < offset+paddedTickLen {
		return fmt.Errorf("chunk input truncated in tick section")
	}
	tickBytes := input[offset : offset+tickBytesLen]

	state, err := codec.DecodeState(stateBytes)
	if err != nil {
		return fmt.Errorf("decode chunk starting state: %w", err)
	}

	inputs := make([][2]sim.Input, tickCount)
	for i := 0; i < tickCount; i++ {
		off := i * codec.TickByteLen
		inputs[i] = codec.DecodeTick(tickBytes[off : off+codec.TickByteLen])
	}

	journal := chunk.RunChunk(state, inputs, m)
	encoded := journal.Encode()
	if _, err := os.Stdout.Write(encoded[:]); err != nil {
		return fmt.Errorf("write chunk journal: %w", err)
	}
	return nil
}

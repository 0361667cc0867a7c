package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeFields(t *testing.T) {
	in := Decode(0xD7A3)
	assert.Equal(t, uint8(0xD), in.Class)
	assert.Equal(t, uint8(0x7), in.X)
	assert.Equal(t, uint8(0xA), in.Y)
	assert.Equal(t, uint8(0x3), in.N)
	assert.Equal(t, uint8(0xA3), in.NN)
	assert.Equal(t, uint16(0x7A3), in.NNN)
}

func TestInstructionString(t *testing.T) {
	for opcode, want := range map[uint16]string{
		0x00E0: "CLS",
		0x00EE: "RET",
		0x0123: "DW $0123",
		0x1ABC: "JP $ABC",
		0x2204: "CALL $204",
		0x3A12: "SE VA, $12",
		0x4B00: "SNE VB, $00",
		0x5120: "SE V1, V2",
		0x5121: "DW $5121",
		0x6FFF: "LD VF, $FF",
		0x7001: "ADD V0, $01",
		0x8124: "ADD V1, V2",
		0x8126: "SHR V1",
		0x812E: "SHL V1",
		0x8128: "DW $8128",
		0x9340: "SNE V3, V4",
		0xA2F0: "LD I, $2F0",
		0xB123: "JP V0, $123",
		0xC7FF: "RND V7, $FF",
		0xD015: "DRW V0, V1, 5",
		0xE59E: "SKP V5",
		0xE5A1: "SKNP V5",
		0xF20A: "LD V2, K",
		0xF233: "LD B, V2",
		0xF855: "LD [I], V8",
		0xF865: "LD V8, [I]",
		0xF899: "DW $F899",
	} {
		assert.Equal(t, want, Decode(opcode).String())
	}
}

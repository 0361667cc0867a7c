package cpu

import "fmt"

// Instruction is a decoded 16 bit opcode.
type Instruction struct {
	Opcode uint16
	Class  uint8  // high nibble
	X      uint8  // second nibble
	Y      uint8  // third nibble
	N      uint8  // low nibble
	NN     uint8  // low byte
	NNN    uint16 // low 12 bits
}

func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Class:  uint8(opcode >> 12),
		X:      uint8(opcode>>8) & 0x0F,
		Y:      uint8(opcode>>4) & 0x0F,
		N:      uint8(opcode) & 0x0F,
		NN:     uint8(opcode),
		NNN:    opcode & 0x0FFF,
	}
}

// String returns the instruction in conventional assembler notation, or
// "DW" with the raw word when the opcode is not part of the instruction set.
func (in Instruction) String() string {
	x, y := in.X, in.Y
	switch in.Class {
	case 0x0:
		switch in.Opcode {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
	case 0x1:
		return fmt.Sprintf("JP $%03X", in.NNN)
	case 0x2:
		return fmt.Sprintf("CALL $%03X", in.NNN)
	case 0x3:
		return fmt.Sprintf("SE V%X, $%02X", x, in.NN)
	case 0x4:
		return fmt.Sprintf("SNE V%X, $%02X", x, in.NN)
	case 0x5:
		if in.N == 0 {
			return fmt.Sprintf("SE V%X, V%X", x, y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, $%02X", x, in.NN)
	case 0x7:
		return fmt.Sprintf("ADD V%X, $%02X", x, in.NN)
	case 0x8:
		if name, ok := aluNames[in.N]; ok {
			if in.N == 0x6 || in.N == 0xE {
				return fmt.Sprintf("%s V%X", name, x)
			}
			return fmt.Sprintf("%s V%X, V%X", name, x, y)
		}
	case 0x9:
		if in.N == 0 {
			return fmt.Sprintf("SNE V%X, V%X", x, y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, $%03X", in.NNN)
	case 0xB:
		return fmt.Sprintf("JP V0, $%03X", in.NNN)
	case 0xC:
		return fmt.Sprintf("RND V%X, $%02X", x, in.NN)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %d", x, y, in.N)
	case 0xE:
		switch in.NN {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", x)
		}
	case 0xF:
		if format, ok := miscFormats[in.NN]; ok {
			return fmt.Sprintf(format, x)
		}
	}
	return fmt.Sprintf("DW $%04X", in.Opcode)
}

var aluNames = map[uint8]string{
	0x0: "LD",
	0x1: "OR",
	0x2: "AND",
	0x3: "XOR",
	0x4: "ADD",
	0x5: "SUB",
	0x6: "SHR",
	0x7: "SUBN",
	0xE: "SHL",
}

var miscFormats = map[uint8]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}

package cpu

const vf = 0xF // flag register

// execute runs one decoded instruction. PC has already been advanced past it.
// Anything that can fault is checked before state is changed.
func (emu *EMU) execute(in Instruction) error {
	x, y, kk := in.X, in.Y, in.NN

	switch in.Class {
	case 0x0:
		switch in.Opcode {
		case 0x00E0:
			emu.display.Clear()
		case 0x00EE:
			addr, err := emu.stack.Pop()
			if err != nil {
				return err
			}
			emu.pc = addr
		default:
			emu.unknown(in)
		}
	case 0x1:
		emu.pc = in.NNN
	case 0x2:
		if err := emu.stack.Push(emu.pc); err != nil {
			return err
		}
		emu.pc = in.NNN
	case 0x3:
		if emu.V[x] == kk {
			emu.pc += 2
		}
	case 0x4:
		if emu.V[x] != kk {
			emu.pc += 2
		}
	case 0x5:
		if in.N != 0 {
			emu.unknown(in)
			break
		}
		if emu.V[x] == emu.V[y] {
			emu.pc += 2
		}
	case 0x6:
		emu.V[x] = kk
	case 0x7:
		emu.V[x] += kk
	case 0x8:
		emu.alu(in)
	case 0x9:
		if in.N != 0 {
			emu.unknown(in)
			break
		}
		if emu.V[x] != emu.V[y] {
			emu.pc += 2
		}
	case 0xA:
		emu.I = in.NNN
	case 0xB:
		emu.pc = in.NNN + uint16(emu.V[0])
	case 0xC:
		emu.V[x] = uint8(emu.rand.Intn(256)) & kk
	case 0xD:
		return emu.draw(emu.V[x], emu.V[y], in.N)
	case 0xE:
		pressed := emu.keypad.Pressed(emu.V[x])
		switch kk {
		case 0x9E:
			if pressed {
				emu.pc += 2
			}
		case 0xA1:
			if !pressed {
				emu.pc += 2
			}
		default:
			emu.unknown(in)
		}
	case 0xF:
		return emu.misc(in)
	}
	return nil
}

// alu handles the 8xyN register arithmetic family. Writes happen in table
// order, so with x == 0xF the result overwrites the flag.
func (emu *EMU) alu(in Instruction) {
	x, y := in.X, in.Y

	switch in.N {
	case 0x0:
		emu.V[x] = emu.V[y]
	case 0x1:
		emu.V[x] |= emu.V[y]
	case 0x2:
		emu.V[x] &= emu.V[y]
	case 0x3:
		emu.V[x] ^= emu.V[y]
	case 0x4:
		sum := uint16(emu.V[x]) + uint16(emu.V[y])
		emu.V[vf] = flag(sum > 0xFF)
		emu.V[x] = uint8(sum)
	case 0x5:
		emu.V[vf] = flag(emu.V[x] > emu.V[y])
		emu.V[x] -= emu.V[y]
	case 0x6:
		emu.V[vf] = emu.V[x] & 1
		emu.V[x] >>= 1
	case 0x7:
		emu.V[vf] = flag(emu.V[y] > emu.V[x])
		emu.V[x] = emu.V[y] - emu.V[x]
	case 0xE:
		emu.V[vf] = (emu.V[x] >> 7) & 1
		emu.V[x] <<= 1
	default:
		emu.unknown(in)
	}
}

func (emu *EMU) misc(in Instruction) error {
	x := in.X

	switch in.NN {
	case 0x07:
		emu.V[x] = emu.timers.Delay
	case 0x0A:
		emu.waitReg = x
		emu.state = AwaitingKey
	case 0x15:
		emu.timers.Delay = emu.V[x]
	case 0x18:
		emu.timers.Sound = emu.V[x]
	case 0x1E:
		emu.I += uint16(emu.V[x])
	case 0x29:
		emu.I = uint16(emu.V[x]) * fontSize
	case 0x33:
		if err := checkRange(emu.I, 3); err != nil {
			return err
		}
		v := emu.V[x]
		emu.memory[emu.I] = v / 100
		emu.memory[emu.I+1] = v / 10 % 10
		emu.memory[emu.I+2] = v % 10
	case 0x55:
		return emu.memory.Load(emu.I, emu.V[:x+1])
	case 0x65:
		if err := checkRange(emu.I, int(x)+1); err != nil {
			return err
		}
		copy(emu.V[:x+1], emu.memory[emu.I:])
	default:
		emu.unknown(in)
	}
	return nil
}

// draw implements Dxyn. VF is cleared before drawing and set on collision.
func (emu *EMU) draw(x, y, height uint8) error {
	if err := checkRange(emu.I, int(height)); err != nil {
		return err
	}
	sprite := emu.memory[emu.I : emu.I+uint16(height)]
	emu.V[vf] = flag(emu.display.drawSprite(x, y, sprite))
	return nil
}

func (emu *EMU) unknown(in Instruction) {
	emu.reporter.UnknownOpcode(emu.pc-2, in.Opcode)
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

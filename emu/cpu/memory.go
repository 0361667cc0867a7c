package cpu

import "fmt"

const memorySize = 4096

// Memory is the flat 4KB address space. Every access is bounds checked.
type Memory [memorySize]uint8

func checkRange(addr uint16, n int) error {
	if int(addr)+n > memorySize {
		return fmt.Errorf("%w: %#04x+%d", ErrAddressOutOfRange, addr, n)
	}
	return nil
}

// Load copies data into memory starting at addr.
func (m *Memory) Load(addr uint16, data []byte) error {
	if err := checkRange(addr, len(data)); err != nil {
		return err
	}
	copy(m[addr:], data)
	return nil
}

func (m *Memory) Peek(addr uint16) (uint8, error) {
	if err := checkRange(addr, 1); err != nil {
		return 0, err
	}
	return m[addr], nil
}

func (m *Memory) Poke(addr uint16, v uint8) error {
	if err := checkRange(addr, 1); err != nil {
		return err
	}
	m[addr] = v
	return nil
}

// Word returns the big-endian 16 bit value at addr, addr+1.
func (m *Memory) Word(addr uint16) (uint16, error) {
	if err := checkRange(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

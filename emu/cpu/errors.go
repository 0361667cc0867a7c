package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrRomTooLarge       = errors.New("ROM too big")
)

// Fault is a fatal error raised while executing the instruction at PC.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v at %#04x (opcode %04X)", f.Err, f.PC, f.Opcode)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

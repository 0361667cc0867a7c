package cpu

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	programStart = 0x200
	maxRomSize   = memorySize - programStart
	fontSize     = 5
)

// State is the execution state of the machine.
type State int

const (
	Running State = iota
	AwaitingKey
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// RandomSource supplies the values for Cxnn. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Reporter receives diagnostics that do not stop execution.
type Reporter interface {
	UnknownOpcode(pc, opcode uint16)
}

type nopReporter struct{}

func (nopReporter) UnknownOpcode(uint16, uint16) {}

// Keys is the keypad as seen by input collaborators. EMU implements it.
type Keys interface {
	SetKey(key uint8, pressed bool)
}

// Tracer is called with each instruction before it executes.
type Tracer func(pc uint16, in Instruction)

// Option configures an EMU built by NewEMU.
type Option func(*EMU)

// WithRandom replaces the random source used by Cxnn.
func WithRandom(r RandomSource) Option {
	return func(emu *EMU) { emu.rand = r }
}

// WithTracer installs a Tracer.
func WithTracer(t Tracer) Option {
	return func(emu *EMU) { emu.tracer = t }
}

// WithReporter routes non-fatal diagnostics to r.
func WithReporter(r Reporter) Option {
	return func(emu *EMU) { emu.reporter = r }
}

var FontSet = [80]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// EMU is a CHIP-8 machine. It is not safe for concurrent use; a single
// driver owns it and calls Cycle, TickTimers and SetKey in sequence.
type EMU struct {
	memory  Memory
	V       [16]uint8
	I       uint16 //address register
	pc      uint16
	stack   Stack
	display Framebuffer
	timers  Timers
	keypad  Keypad

	state   State
	waitReg uint8 //target register of Fx0A
	fault   error

	rand     RandomSource
	reporter Reporter
	tracer   Tracer
}

// NewEMU returns a machine with the font loaded and PC at the program start.
func NewEMU(opts ...Option) *EMU {
	emu := &EMU{
		pc:       programStart,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(emu)
	}
	emu.loadFont()
	return emu
}

func (emu *EMU) loadFont() {
	copy(emu.memory[:len(FontSet)], FontSet[:])
}

// LoadROM copies a program image to 0x200.
func (emu *EMU) LoadROM(rom []byte) error {
	if len(rom) > maxRomSize {
		return fmt.Errorf("%w: %d bytes, can't cross %d", ErrRomTooLarge, len(rom), maxRomSize)
	}
	return emu.memory.Load(programStart, rom)
}

// Cycle fetches, decodes and executes one instruction. While awaiting a key
// it does nothing. A returned error is a *Fault and halts the machine.
func (emu *EMU) Cycle() error {
	switch emu.state {
	case Halted:
		return emu.fault
	case AwaitingKey:
		return nil
	}

	pc := emu.pc
	opcode, err := emu.memory.Word(pc)
	if err != nil {
		return emu.halt(pc, opcode, err)
	}
	emu.pc += 2

	in := Decode(opcode)
	if emu.tracer != nil {
		emu.tracer(pc, in)
	}
	if err := emu.execute(in); err != nil {
		// restore the fetch baseline so collaborators see the faulting address
		emu.pc = pc
		return emu.halt(pc, opcode, err)
	}
	return nil
}

func (emu *EMU) halt(pc, opcode uint16, err error) error {
	emu.state = Halted
	emu.fault = &Fault{PC: pc, Opcode: opcode, Err: err}
	return emu.fault
}

// SetKey records the state of one hex key. A press edge while awaiting a key
// stores the key in the waiting register and resumes execution.
func (emu *EMU) SetKey(key uint8, pressed bool) {
	if key > 0xF {
		return
	}
	edge := emu.keypad.Set(key, pressed)
	if edge && emu.state == AwaitingKey {
		emu.V[emu.waitReg] = key
		emu.state = Running
	}
}

// TickTimers counts both timers down by one and reports whether the sound
// timer was active during this tick.
func (emu *EMU) TickTimers() bool {
	return emu.timers.Tick()
}

func (emu *EMU) State() State               { return emu.state }
func (emu *EMU) Framebuffer() *Framebuffer { return &emu.display }
func (emu *EMU) Registers() [16]uint8      { return emu.V }
func (emu *EMU) PC() uint16                { return emu.pc }
func (emu *EMU) Index() uint16             { return emu.I }
func (emu *EMU) DelayTimer() uint8         { return emu.timers.Delay }
func (emu *EMU) SoundTimer() uint8         { return emu.timers.Sound }
func (emu *EMU) StackDepth() int           { return emu.stack.Len() }

// KeyPressed reports the recorded state of a hex key.
func (emu *EMU) KeyPressed(key uint8) bool { return emu.keypad.Pressed(key) }

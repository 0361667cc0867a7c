// Package chyp drives a CHIP-8 machine: it schedules instruction cycles,
// 60Hz timer ticks and rendering, and wires the machine to its display,
// keypad and speaker.
package chyp

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/beanboi7/chyp8/emu/cpu"
)

// MaxTickRate keeps the tick period at or above one millisecond.
const MaxTickRate = 1000

type Config struct {
	InstructionsPerTick int
	TickRate            int  // timer and render rate in Hz
	Trace               bool // log every executed instruction at debug level
}

func DefaultConfig() Config {
	return Config{
		InstructionsPerTick: 10,
		TickRate:            60,
	}
}

// Display renders the framebuffer once per tick.
type Display interface {
	Draw(fb *cpu.Framebuffer)
	Closed() bool
}

// Input writes the physical key state to the keypad once per tick.
type Input interface {
	Poll(keys cpu.Keys)
}

// Speaker plays the tone while the sound timer is active.
type Speaker interface {
	SetActive(active bool)
}

// Chyp8 is one emulation session.
type Chyp8 struct {
	emu     *cpu.EMU
	cfg     Config
	display Display
	input   Input
	speaker Speaker
	logger  *log.Logger
	opts    []cpu.Option
	trace   cpu.Tracer
}

func New(logger *log.Logger, cfg Config, display Display, input Input, speaker Speaker, opts ...cpu.Option) (*Chyp8, error) {
	if cfg.InstructionsPerTick < 1 {
		return nil, fmt.Errorf("instructions per tick must be positive, got %d", cfg.InstructionsPerTick)
	}
	if cfg.TickRate < 1 || cfg.TickRate > MaxTickRate {
		return nil, fmt.Errorf("tick rate must be between 1 and %d, got %d", MaxTickRate, cfg.TickRate)
	}
	c := &Chyp8{
		cfg:     cfg,
		display: display,
		input:   input,
		speaker: speaker,
		logger:  logger,
	}
	c.opts = append([]cpu.Option{cpu.WithReporter(reporter{logger})}, opts...)
	if cfg.Trace {
		c.trace = c.logInstruction
		c.opts = append(c.opts, cpu.WithTracer(func(pc uint16, in cpu.Instruction) {
			c.trace(pc, in)
		}))
	}
	c.emu = cpu.NewEMU(c.opts...)
	return c, nil
}

// LoadGame reads a program image from disk.
func LoadGame(filename string) ([]byte, error) {
	rom, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	return rom, nil
}

// Load starts a fresh machine running rom. If rom is rejected the current
// machine is kept.
func (c *Chyp8) Load(rom []byte) error {
	emu := cpu.NewEMU(c.opts...)
	if err := emu.LoadROM(rom); err != nil {
		return err
	}
	c.emu = emu
	c.logger.Debug("ROM loaded", log.Int("size", len(rom)))
	return nil
}

func (c *Chyp8) EMU() *cpu.EMU {
	return c.emu
}

// Frame runs one tick: poll the keypad, execute the configured number of
// instructions, tick the timers and render. A fatal fault stops the frame
// before anything is rendered.
func (c *Chyp8) Frame() error {
	c.input.Poll(c.emu)

	for i := 0; i < c.cfg.InstructionsPerTick; i++ {
		if err := c.emu.Cycle(); err != nil {
			c.speaker.SetActive(false)
			return err
		}
		if c.emu.State() == cpu.AwaitingKey {
			break
		}
	}

	c.speaker.SetActive(c.emu.TickTimers())
	c.display.Draw(c.emu.Framebuffer())
	return nil
}

// Run calls Frame at the tick rate until ctx is done, the display is closed
// or the machine faults. Images received on reload replace the running
// program.
func (c *Chyp8) Run(ctx context.Context, reload <-chan []byte) error {
	ticker := time.NewTicker(time.Second / time.Duration(c.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case rom := <-reload:
			if err := c.Load(rom); err != nil {
				c.logger.Warn("Reload rejected", log.Err(err))
				continue
			}
			c.logger.Info("ROM reloaded")

		case <-ticker.C:
			if err := c.Frame(); err != nil {
				return fmt.Errorf("emulation stopped: %w", err)
			}
			if c.display.Closed() {
				return nil
			}
		}
	}
}

func (c *Chyp8) logInstruction(pc uint16, in cpu.Instruction) {
	c.logger.Debug("Executing",
		hex("pc", pc),
		log.Stringer("instruction", in))
}

type reporter struct {
	logger *log.Logger
}

func (r reporter) UnknownOpcode(pc, opcode uint16) {
	r.logger.Warn("Unknown opcode",
		hex("pc", pc),
		hex("opcode", opcode))
}

func hex(key string, v uint16) log.Field {
	return log.String(key, fmt.Sprintf("0x%04X", v))
}

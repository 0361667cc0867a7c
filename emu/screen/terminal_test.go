package screen

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrogolib/assert"

	"github.com/beanboi7/chyp8/emu/cpu"
)

type keyLog struct {
	events []keyEvent
}

type keyEvent struct {
	key     uint8
	pressed bool
}

func (l *keyLog) SetKey(key uint8, pressed bool) {
	l.events = append(l.events, keyEvent{key, pressed})
}

func newTestTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	term, err := newTerminal(s, Config{
		Foreground: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Background: color.RGBA{B: 0x32, A: 0xFF},
	})
	assert.NoError(t, err)
	t.Cleanup(term.Close)
	return term, s
}

func TestTerminalKeyHold(t *testing.T) {
	term, _ := newTestTerminal(t)
	now := time.Unix(100, 0)
	term.now = func() time.Time { return now }

	var keys keyLog
	term.events <- tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	term.events <- tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)
	term.Poll(&keys)
	assert.Equal(t, []keyEvent{{0x5, true}}, keys.events)

	now = now.Add(keyRepeatDuration / 2)
	term.Poll(&keys)
	assert.Equal(t, 1, len(keys.events))

	now = now.Add(keyRepeatDuration)
	term.Poll(&keys)
	assert.Equal(t, []keyEvent{{0x5, true}, {0x5, false}}, keys.events)
	assert.False(t, term.Closed())

	term.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	term.Poll(&keys)
	assert.True(t, term.Closed())
}

func TestTerminalDraw(t *testing.T) {
	term, s := newTestTerminal(t)

	emu := cpu.NewEMU()
	assert.NoError(t, emu.LoadROM([]byte{0xD0, 0x02})) // DRW V0, V0, 2 with I on the "0" glyph
	assert.NoError(t, emu.Cycle())
	term.Draw(emu.Framebuffer())

	cells, width, _ := s.GetContents()
	cell := cells[0]
	assert.Equal(t, []rune{halfBlock}, cell.Runes)
	fg, bg, _ := cell.Style.Decompose()
	assert.Equal(t, term.on, fg) // row 0 of the glyph is 0xF0
	assert.Equal(t, term.on, bg) // row 1 is 0x90
	_, bg, _ = cells[1].Style.Decompose()
	assert.Equal(t, term.off, bg) // 0x90 leaves column 1 dark

	_, bg, _ = cells[width+8].Style.Decompose()
	assert.Equal(t, term.off, bg)
}

func TestTerminalCloseWithFullEventQueue(t *testing.T) {
	term, s := newTestTerminal(t)
	for len(term.events) < cap(term.events) {
		term.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	}
	s.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)

	term.Close()
	select {
	case <-term.exited:
	case <-time.After(5 * time.Second):
		t.Fatal("event loop still running after Close")
	}
	term.Close()
}

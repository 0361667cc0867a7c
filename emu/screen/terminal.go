package screen

import (
	"image/color"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/beanboi7/chyp8/emu/cpu"
)

// upper half block: foreground paints the top pixel, background the bottom
const halfBlock = '▀'

// Terminal renders the display with two pixel rows per character cell and
// reads the keypad from terminal key events.
type Terminal struct {
	screen tcell.Screen
	on     tcell.Color
	off    tcell.Color

	events chan *tcell.EventKey
	done   chan struct{} // closed by Close
	exited chan struct{} // closed when pollEvents returns
	once   sync.Once
	held   [16]time.Time
	closed bool
	now    func() time.Time
}

func NewTerminal(cfg Config) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(s, cfg)
}

func newTerminal(s tcell.Screen, cfg Config) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	s.Clear()

	t := &Terminal{
		screen: s,
		on:     tcellColor(cfg.Foreground),
		off:    tcellColor(cfg.Background),
		events: make(chan *tcell.EventKey, 64),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		now:    time.Now,
	}
	go t.pollEvents()
	return t, nil
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Terminal) pollEvents() {
	defer close(t.exited)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		k, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		select {
		case t.events <- k:
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) Draw(fb *cpu.Framebuffer) {
	for cy := 0; cy < cpu.Height/2; cy++ {
		for x := 0; x < cpu.Width; x++ {
			style := tcell.StyleDefault.
				Foreground(t.pixelColor(fb.Pixel(x, cy*2))).
				Background(t.pixelColor(fb.Pixel(x, cy*2+1)))
			t.screen.SetContent(x, cy, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

func (t *Terminal) pixelColor(lit bool) tcell.Color {
	if lit {
		return t.on
	}
	return t.off
}

// Poll applies pending key events to keys and releases keys whose hold
// time has passed. Escape or Ctrl-C closes the terminal.
func (t *Terminal) Poll(keys cpu.Keys) {
	now := t.now()
	for drained := false; !drained; {
		select {
		case ev := <-t.events:
			t.handleKey(ev, now, keys)
		default:
			drained = true
		}
	}

	for k, until := range t.held {
		if !until.IsZero() && !now.Before(until) {
			t.held[k] = time.Time{}
			keys.SetKey(uint8(k), false)
		}
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey, now time.Time, keys cpu.Keys) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.closed = true
	case tcell.KeyRune:
		if k, ok := HexKey(ev.Rune()); ok {
			t.held[k] = now.Add(keyRepeatDuration)
			keys.SetKey(k, true)
		}
	}
}

func (t *Terminal) Closed() bool {
	return t.closed
}

// Close restores the terminal. It is safe to call more than once.
func (t *Terminal) Close() {
	t.once.Do(func() {
		close(t.done)
		t.screen.Fini()
	})
}

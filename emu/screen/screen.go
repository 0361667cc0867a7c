package screen

import (
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"

	"github.com/beanboi7/chyp8/emu/cpu"
)

// Window renders the display in an OpenGL window and reads the keypad from
// it. It must be created and used on the thread running pixelgl.Run.
type Window struct {
	*pixelgl.Window
	KeyMap [16]pixelgl.Button

	imd   *imdraw.IMDraw
	scale float64
	cfg   Config
}

var buttons = map[rune]pixelgl.Button{
	'1': pixelgl.Key1, '2': pixelgl.Key2, '3': pixelgl.Key3, '4': pixelgl.Key4,
	'q': pixelgl.KeyQ, 'w': pixelgl.KeyW, 'e': pixelgl.KeyE, 'r': pixelgl.KeyR,
	'a': pixelgl.KeyA, 's': pixelgl.KeyS, 'd': pixelgl.KeyD, 'f': pixelgl.KeyF,
	'z': pixelgl.KeyZ, 'x': pixelgl.KeyX, 'c': pixelgl.KeyC, 'v': pixelgl.KeyV,
}

func NewWindow(cfg Config) (*Window, error) {
	scale := float64(cfg.Scale)
	wcfg := pixelgl.WindowConfig{
		Title:     cfg.Title,
		Bounds:    pixel.R(0, 0, cpu.Width*scale, cpu.Height*scale),
		Resizable: false,
		VSync:     true,
	}

	win, err := pixelgl.NewWindow(wcfg)
	if err != nil {
		return nil, err
	}

	w := &Window{
		Window: win,
		imd:    imdraw.New(nil),
		scale:  scale,
		cfg:    cfg,
	}
	for k, r := range Keymap {
		w.KeyMap[k] = buttons[r]
	}
	return w, nil
}

// Draw paints the framebuffer and swaps buffers, which also polls window
// events for the next Poll.
func (w *Window) Draw(fb *cpu.Framebuffer) {
	w.imd.Clear()
	w.imd.Color = w.cfg.Foreground
	fb.Rows(func(y int, row []uint8) {
		// pixel's origin is bottom left
		top := float64(cpu.Height-y) * w.scale
		for x, p := range row {
			if p == 0 {
				continue
			}
			left := float64(x) * w.scale
			w.imd.Push(pixel.V(left, top-w.scale), pixel.V(left+w.scale, top))
			w.imd.Rectangle(0)
		}
	})

	w.Clear(w.cfg.Background)
	w.imd.Draw(w)
	w.Update()
}

// Poll copies the window's key state to keys. Escape closes the window.
func (w *Window) Poll(keys cpu.Keys) {
	if w.JustPressed(pixelgl.KeyEscape) {
		w.SetClosed(true)
	}
	for k, button := range w.KeyMap {
		keys.SetKey(uint8(k), w.Pressed(button))
	}
}

func (w *Window) Close() {
	w.Destroy()
}

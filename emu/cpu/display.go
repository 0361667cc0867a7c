package cpu

const (
	Width  = 64
	Height = 32
)

// Framebuffer is the 64x32 monochrome display, one byte per pixel, row major.
type Framebuffer struct {
	pixels [Width * Height]uint8
}

func (fb *Framebuffer) Clear() {
	fb.pixels = [Width * Height]uint8{}
}

// Pixel reports whether the pixel at x, y is lit. Coordinates wrap.
func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb.pixels[(y%Height)*Width+x%Width] == 1
}

// Rows calls fn once per row with that row's pixels.
func (fb *Framebuffer) Rows(fn func(y int, row []uint8)) {
	for y := 0; y < Height; y++ {
		fn(y, fb.pixels[y*Width:(y+1)*Width])
	}
}

// drawSprite XORs sprite rows onto the display at x, y, wrapping at the
// edges. It returns true if any set bit landed on a lit pixel.
func (fb *Framebuffer) drawSprite(x, y uint8, sprite []uint8) bool {
	collision := false
	for r, line := range sprite {
		for c := 0; c < 8; c++ {
			if line&(0x80>>c) == 0 {
				continue
			}
			idx := ((int(y)+r)%Height)*Width + (int(x)+c)%Width
			if fb.pixels[idx] == 1 {
				collision = true
			}
			fb.pixels[idx] ^= 1
		}
	}
	return collision
}

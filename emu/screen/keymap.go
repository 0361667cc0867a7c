package screen

import (
	"image/color"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
)

// terminals report no key release, so a key stays down this long after its
// last press event
const keyRepeatDuration = time.Second / 5

// Keymap assigns a physical key to each hex key 0x0-0xF:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
var Keymap = [16]rune{
	'x', '1', '2', '3',
	'q', 'w', 'e', 'a',
	's', 'd', 'z', 'c',
	'4', 'r', 'f', 'v',
}

// HexKey returns the hex key mapped to the physical key r.
func HexKey(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for k, m := range Keymap {
		if m == r {
			return uint8(k), true
		}
	}
	return 0, false
}

// Config holds the presentation settings shared by both backends.
type Config struct {
	Title      string
	Scale      int
	Foreground color.RGBA
	Background color.RGBA
}

// Color resolves an SVG colour name such as "white" or "navy", or a hex
// triplet such as "#000032".
func Color(name string) (color.RGBA, bool) {
	if strings.HasPrefix(name, "#") {
		if len(name) != 7 {
			return color.RGBA{}, false
		}
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, false
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, true
	}
	c, ok := colornames.Map[strings.ToLower(name)]
	return c, ok
}

package cpu

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func litPixels(fb *Framebuffer) int {
	n := 0
	fb.Rows(func(_ int, row []uint8) {
		for _, p := range row {
			n += int(p)
		}
	})
	return n
}

func TestClearScreen(t *testing.T) {
	emu := newTestEMU(t, 0xF029, 0xD005, 0x00E0)
	step(t, emu, 2)
	assert.True(t, litPixels(emu.Framebuffer()) > 0)
	step(t, emu, 1)
	assert.Equal(t, 0, litPixels(emu.Framebuffer()))
}

func TestDrawCollision(t *testing.T) {
	emu := newTestEMU(t,
		0xA300, // LD I, 300
		0xD125, // DRW V1, V2, 5
		0xD125,
	)
	copy(emu.memory[0x300:], []uint8{0xF0, 0x90, 0x90, 0x90, 0xF0})
	emu.V[1] = 10
	emu.V[2] = 4
	emu.V[vf] = 1

	step(t, emu, 2)
	assert.Equal(t, uint8(0), emu.V[vf])
	fb := emu.Framebuffer()
	assert.Equal(t, 14, litPixels(fb))
	assert.True(t, fb.Pixel(10, 4))
	assert.True(t, fb.Pixel(13, 8))
	assert.False(t, fb.Pixel(11, 5))

	step(t, emu, 1)
	assert.Equal(t, uint8(1), emu.V[vf])
	assert.Equal(t, 0, litPixels(fb))
}

func TestDrawPartialOverlap(t *testing.T) {
	var fb Framebuffer
	assert.False(t, fb.drawSprite(0, 0, []uint8{0x80}))
	assert.True(t, fb.drawSprite(0, 0, []uint8{0xC0}))
	assert.False(t, fb.Pixel(0, 0))
	assert.True(t, fb.Pixel(1, 0))
}

func TestDrawWraps(t *testing.T) {
	emu := newTestEMU(t, 0xA300, 0xD121)
	emu.memory[0x300] = 0xFF
	emu.V[1] = 63
	emu.V[2] = 31
	step(t, emu, 2)

	fb := emu.Framebuffer()
	assert.True(t, fb.Pixel(63, 31))
	for x := 0; x < 7; x++ {
		assert.True(t, fb.Pixel(x, 31))
	}
	assert.False(t, fb.Pixel(7, 31))
	assert.Equal(t, 8, litPixels(fb))

	var tall Framebuffer
	tall.drawSprite(0, 30, []uint8{0x80, 0x80, 0x80})
	assert.True(t, tall.Pixel(0, 30))
	assert.True(t, tall.Pixel(0, 31))
	assert.True(t, tall.Pixel(0, 0))
}

func TestDrawCoordinatesBeyondScreen(t *testing.T) {
	var fb Framebuffer
	fb.drawSprite(64+2, 32+1, []uint8{0x80})
	assert.True(t, fb.Pixel(2, 1))
}

package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryAccess(t *testing.T) {
	var m Memory
	assert.NoError(t, m.Poke(0xFFF, 0x12))
	v, err := m.Peek(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x12), v)

	assert.NoError(t, m.Load(0x300, []byte{0xAB, 0xCD}))
	w, err := m.Word(0x300)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), w)

	_, err = m.Peek(0x1000)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	assert.True(t, errors.Is(m.Poke(0x1000, 1), ErrAddressOutOfRange))
	_, err = m.Word(0xFFF)
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
	assert.True(t, errors.Is(m.Load(0xFFF, []byte{1, 2}), ErrAddressOutOfRange))
}

func TestStack(t *testing.T) {
	var s Stack
	_, err := s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	for i := 0; i < stackDepth; i++ {
		assert.NoError(t, s.Push(uint16(0x200+i*2)))
	}
	assert.True(t, errors.Is(s.Push(0x300), ErrStackOverflow))
	assert.Equal(t, stackDepth, s.Len())

	addr, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200+(stackDepth-1)*2), addr)
}

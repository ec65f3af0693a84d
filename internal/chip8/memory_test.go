package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemory_ReadWriteWrap(t *testing.T) {
	var m Memory

	m.Write(0x1005, 0x42)
	assert.Equal(t, byte(0x42), m[0x005])
	assert.Equal(t, byte(0x42), m.Read(0x005))
	assert.Equal(t, byte(0x42), m.Read(0xF005))
}

func TestMemory_Word(t *testing.T) {
	var m Memory
	m[0x300] = 0xAB
	m[0x301] = 0xCD
	m[0xFFF] = 0x12
	m[0x000] = 0x34

	assert.Equal(t, uint16(0xABCD), m.Word(0x300))
	assert.Equal(t, uint16(0x1234), m.Word(0xFFF))
}

func TestMemory_LoadProgramEmpty(t *testing.T) {
	var m Memory
	assert.NoError(t, m.LoadProgram(nil))
	assert.Equal(t, Memory{}, m)
}

func TestGlyphAddress(t *testing.T) {
	tests := []struct {
		digit    byte
		expected uint16
	}{
		{0x0, FontStart},
		{0x1, FontStart + 5},
		{0xF, FontStart + 75},
		{0x1A, FontStart + 50}, // only the low nibble selects the glyph
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, glyphAddress(tt.digit))
	}
}

func TestTimers_Tick(t *testing.T) {
	tests := []struct {
		name     string
		input    Timers
		expected Timers
	}{
		{"both running", Timers{Delay: 5, Sound: 3}, Timers{Delay: 4, Sound: 2}},
		{"delay only", Timers{Delay: 1}, Timers{}},
		{"already zero stays zero", Timers{}, Timers{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timers := tt.input
			timers.Tick()
			assert.Equal(t, tt.expected, timers)
		})
	}
}

func TestKeypad_FirstPressed(t *testing.T) {
	var keys Keypad
	_, ok := keys.FirstPressed()
	assert.False(t, ok)

	keys[0xC] = true
	keys[0x3] = true
	key, ok := keys.FirstPressed()
	assert.True(t, ok)
	assert.Equal(t, byte(0x3), key)

	assert.True(t, keys.Pressed(0x13))
	assert.False(t, keys.Pressed(0x4))
}

func TestRegisters_Stack(t *testing.T) {
	var r Registers

	_, err := r.pop()
	assert.Equal(t, ErrStackUnderflow, err)

	for i := range StackSize {
		assert.NoError(t, r.push(uint16(0x200+i)))
	}
	assert.Equal(t, ErrStackOverflow, r.push(0x300))
	assert.Equal(t, byte(StackSize), r.SP)

	addr, err := r.pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x200+StackSize-1), addr)
}

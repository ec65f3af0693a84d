package chip8

import (
	"github.com/pkg/errors"
)

// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: font glyphs for the hexadecimal digits 0-F
//	0x050-0x1FF: reserved for the interpreter
//	0x200-0xFFF: program space
const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	FontStart    = 0x000

	// GlyphSize is the number of bytes (rows) of one font glyph.
	GlyphSize = 5

	addressMask = MemorySize - 1
)

// ████ (0xF0)
// █  █ (0x90)
// █  █ (0x90)
// █  █ (0x90)
// ████ (0xF0)
var fontset = [16 * GlyphSize]byte{
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

// Memory is the flat 4KB address space of the machine.
// All accesses wrap at MemorySize, so a write past 0xFFF, for example FX55
// with I near the end of memory, lands in the font glyphs at 0x000.
type Memory [MemorySize]byte

// LoadFont copies the built-in glyphs to FontStart.
func (m *Memory) LoadFont() {
	copy(m[FontStart:], fontset[:])
}

// LoadProgram copies the program verbatim to ProgramStart.
// A program that does not fit leaves memory untouched.
func (m *Memory) LoadProgram(program []byte) error {
	if err := checkProgramSize(program); err != nil {
		return &LoadError{Err: err}
	}
	copy(m[ProgramStart:], program)
	return nil
}

func checkProgramSize(program []byte) error {
	if len(program) > MemorySize-ProgramStart {
		return errors.Wrapf(ErrROMTooLarge, "%d bytes (max: %d)", len(program), MemorySize-ProgramStart)
	}
	return nil
}

// Read returns the byte at the wrapped address.
func (m *Memory) Read(addr uint16) byte {
	return m[addr&addressMask]
}

// Write stores a byte at the wrapped address.
func (m *Memory) Write(addr uint16, value byte) {
	m[addr&addressMask] = value
}

// Word returns the big-endian instruction word at addr.
func (m *Memory) Word(addr uint16) uint16 {
	return uint16(m.Read(addr))<<8 | uint16(m.Read(addr+1))
}

// glyphAddress returns the address of the font glyph for a hex digit.
func glyphAddress(digit byte) uint16 {
	return FontStart + uint16(digit&0xF)*GlyphSize
}

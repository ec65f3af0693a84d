package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies a decoded instruction.
type Op uint8

// Instruction set. The comment of each entry shows its bit pattern.
const (
	OpUnknown           Op = iota // unmatched sub-opcode, executed as no-op
	OpSys                         // 0NNN
	OpClear                       // 00E0
	OpReturn                      // 00EE
	OpJump                        // 1NNN
	OpCall                        // 2NNN
	OpSkipEqualImm                // 3XNN
	OpSkipNotEqualImm             // 4XNN
	OpSkipEqualReg                // 5XY0
	OpLoadImm                     // 6XNN
	OpAddImm                      // 7XNN
	OpLoadReg                     // 8XY0
	OpOr                          // 8XY1
	OpAnd                         // 8XY2
	OpXor                         // 8XY3
	OpAddReg                      // 8XY4
	OpSub                         // 8XY5
	OpShiftRight                  // 8XY6
	OpSubReverse                  // 8XY7
	OpShiftLeft                   // 8XYE
	OpSkipNotEqualReg             // 9XY0
	OpLoadIndex                   // ANNN
	OpJumpOffset                  // BNNN
	OpRandom                      // CXNN
	OpDraw                        // DXYN
	OpSkipKeyPressed              // EX9E
	OpSkipKeyNotPressed           // EXA1
	OpLoadDelay                   // FX07
	OpWaitKey                     // FX0A
	OpSetDelay                    // FX15
	OpSetSound                    // FX18
	OpAddIndex                    // FX1E
	OpLoadFont                    // FX29
	OpStoreBCD                    // FX33
	OpStoreRegisters              // FX55
	OpLoadRegisters               // FX65
)

var opNames = [...]string{
	OpUnknown:           "unknown",
	OpSys:               "sys",
	OpClear:             "cls",
	OpReturn:            "ret",
	OpJump:              "jp",
	OpCall:              "call",
	OpSkipEqualImm:      "se",
	OpSkipNotEqualImm:   "sne",
	OpSkipEqualReg:      "se",
	OpLoadImm:           "ld",
	OpAddImm:            "add",
	OpLoadReg:           "ld",
	OpOr:                "or",
	OpAnd:               "and",
	OpXor:               "xor",
	OpAddReg:            "add",
	OpSub:               "sub",
	OpShiftRight:        "shr",
	OpSubReverse:        "subn",
	OpShiftLeft:         "shl",
	OpSkipNotEqualReg:   "sne",
	OpLoadIndex:         "ld",
	OpJumpOffset:        "jp",
	OpRandom:            "rnd",
	OpDraw:              "drw",
	OpSkipKeyPressed:    "skp",
	OpSkipKeyNotPressed: "sknp",
	OpLoadDelay:         "ld",
	OpWaitKey:           "ld",
	OpSetDelay:          "ld",
	OpSetSound:          "ld",
	OpAddIndex:          "add",
	OpLoadFont:          "ld",
	OpStoreBCD:          "ld",
	OpStoreRegisters:    "ld",
	OpLoadRegisters:     "ld",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpUnknown]
}

// Instruction is a decoded two-byte instruction word with its operand fields.
type Instruction struct {
	Word uint16
	Op   Op

	X   byte   // second nibble, register index
	Y   byte   // third nibble, register index
	N   byte   // fourth nibble
	NN  byte   // low byte
	NNN uint16 // low 12 bits, address
}

// Decode splits an instruction word into its fields and identifies the
// instruction. Every word decodes; words with an unmatched sub-opcode get
// OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		X:    byte(word>>8) & 0xF,
		Y:    byte(word>>4) & 0xF,
		N:    byte(word) & 0xF,
		NN:   byte(word),
		NNN:  word & 0x0FFF,
	}
	ins.Op = decodeOp(ins)
	return ins
}

func decodeOp(ins Instruction) Op {
	switch ins.Word >> 12 {
	case 0x0:
		switch ins.Word {
		case 0x00E0:
			return OpClear
		case 0x00EE:
			return OpReturn
		default:
			return OpSys
		}
	case 0x1:
		return OpJump
	case 0x2:
		return OpCall
	case 0x3:
		return OpSkipEqualImm
	case 0x4:
		return OpSkipNotEqualImm
	case 0x5:
		if ins.N == 0 {
			return OpSkipEqualReg
		}
	case 0x6:
		return OpLoadImm
	case 0x7:
		return OpAddImm
	case 0x8:
		return decodeArithmetic(ins.N)
	case 0x9:
		if ins.N == 0 {
			return OpSkipNotEqualReg
		}
	case 0xA:
		return OpLoadIndex
	case 0xB:
		return OpJumpOffset
	case 0xC:
		return OpRandom
	case 0xD:
		return OpDraw
	case 0xE:
		switch ins.NN {
		case 0x9E:
			return OpSkipKeyPressed
		case 0xA1:
			return OpSkipKeyNotPressed
		}
	case 0xF:
		return decodeMisc(ins.NN)
	}
	return OpUnknown
}

func decodeArithmetic(n byte) Op {
	switch n {
	case 0x0:
		return OpLoadReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShiftRight
	case 0x7:
		return OpSubReverse
	case 0xE:
		return OpShiftLeft
	default:
		return OpUnknown
	}
}

func decodeMisc(nn byte) Op {
	switch nn {
	case 0x07:
		return OpLoadDelay
	case 0x0A:
		return OpWaitKey
	case 0x15:
		return OpSetDelay
	case 0x18:
		return OpSetSound
	case 0x1E:
		return OpAddIndex
	case 0x29:
		return OpLoadFont
	case 0x33:
		return OpStoreBCD
	case 0x55:
		return OpStoreRegisters
	case 0x65:
		return OpLoadRegisters
	default:
		return OpUnknown
	}
}

// Name returns the instruction mnemonic as listed in the retrogolib CHIP-8
// opcode table, falling back to the built-in name for entries the table
// does not carry.
func (i Instruction) Name() string {
	if i.Op == OpUnknown {
		return i.Op.String()
	}
	for _, op := range chip8cpu.Opcodes[int(i.Word>>12)] {
		if op.Info.Mask&i.Word == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}
	return i.Op.String()
}

// String returns the instruction in assembly notation, for example
// "ld V1, $05" or "drw V0, V1, $5".
// BNNN is shown with the V0 offset register; Chip8.Disassemble renders the
// compat variant.
func (i Instruction) String() string {
	return i.format(false)
}

func (i Instruction) format(compat bool) string {
	if i.Op == OpUnknown {
		return fmt.Sprintf(".word $%04X", i.Word)
	}
	if params := i.params(compat); params != "" {
		return fmt.Sprintf("%s %s", i.Name(), params)
	}
	return i.Name()
}

func (i Instruction) params(compat bool) string {
	switch i.Op {
	case OpClear, OpReturn:
		return ""
	case OpSys, OpJump, OpCall:
		return fmt.Sprintf("$%03X", i.NNN)
	case OpSkipEqualImm, OpSkipNotEqualImm, OpLoadImm, OpAddImm, OpRandom:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case OpSkipEqualReg, OpSkipNotEqualReg, OpLoadReg, OpOr, OpAnd, OpXor,
		OpAddReg, OpSub, OpSubReverse:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpShiftRight, OpShiftLeft, OpSkipKeyPressed, OpSkipKeyNotPressed:
		return fmt.Sprintf("V%X", i.X)
	case OpLoadIndex:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case OpJumpOffset:
		if compat {
			return fmt.Sprintf("V%X, $%03X", i.X, i.NNN)
		}
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpDraw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case OpLoadDelay:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpWaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case OpSetDelay:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpSetSound:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpAddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLoadFont:
		return fmt.Sprintf("F, V%X", i.X)
	case OpStoreBCD:
		return fmt.Sprintf("B, V%X", i.X)
	case OpStoreRegisters:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLoadRegisters:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}

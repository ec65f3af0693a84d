package chip8

const (
	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is VF, the carry/borrow/collision flag.
	FlagRegister = 0xF

	// StackSize is the maximum call depth.
	StackSize = 16
)

// Registers is the register file of the machine.
type Registers struct {
	V  [RegisterCount]byte
	I  uint16 // index register
	PC uint16 // address of the next instruction to fetch

	Stack [StackSize]uint16
	SP    byte // number of used stack entries
}

func (r *Registers) push(addr uint16) error {
	if int(r.SP) >= StackSize {
		return ErrStackOverflow
	}
	r.Stack[r.SP] = addr
	r.SP++
	return nil
}

func (r *Registers) pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}

// setFlag writes VF as 1 or 0.
func (r *Registers) setFlag(set bool) {
	if set {
		r.V[FlagRegister] = 1
	} else {
		r.V[FlagRegister] = 0
	}
}

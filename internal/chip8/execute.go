package chip8

// CycleResult describes what a Step did and what the host should act on.
type CycleResult struct {
	Instruction Instruction // zero value if no instruction was fetched
	PC          uint16      // address the instruction was fetched from

	Redraw      bool // display changed by a clear or draw instruction
	AwaitingKey bool // core is waiting for a key press
	Unknown     bool // instruction was an unmatched sub-opcode and did nothing
	Halted      bool // core stopped on a fatal fault
}

// Fetched reports whether the cycle fetched and executed an instruction.
func (r CycleResult) Fetched() bool {
	return r.Instruction.Op != OpUnknown || r.Unknown
}

// Step executes one cycle. keys is the keypad snapshot for this cycle,
// nil is treated as no key pressed.
//
// In the Running state the two bytes at PC are fetched, PC advances by 2 and
// the instruction is executed. In the AwaitingKey state no instruction is
// fetched; the lowest pressed key, if any, is stored and the core goes back
// to Running for the next Step. A stack fault halts the core and is returned
// as a *StackError on this and every later Step.
func (c *Chip8) Step(keys *Keypad) (CycleResult, error) {
	if keys == nil {
		keys = &Keypad{}
	}

	switch c.state {
	case Halted:
		return CycleResult{PC: c.Registers.PC, Halted: true}, c.fault

	case AwaitingKey:
		key, ok := keys.FirstPressed()
		if !ok {
			return CycleResult{PC: c.Registers.PC, AwaitingKey: true}, nil
		}
		c.Registers.V[c.waitReg] = key
		c.state = Running
		return CycleResult{PC: c.Registers.PC}, nil
	}

	pc := c.Registers.PC
	ins := Decode(c.Memory.Word(pc))
	c.Registers.PC = (pc + 2) & addressMask

	res := CycleResult{Instruction: ins, PC: pc}
	if err := c.execute(ins, keys, &res); err != nil {
		c.Registers.PC = pc
		c.state = Halted
		c.fault = &StackError{Err: err, PC: pc}
		res.Halted = true
		return res, c.fault
	}
	res.AwaitingKey = c.state == AwaitingKey
	return res, nil
}

// execute applies a decoded instruction. PC already points past it.
func (c *Chip8) execute(ins Instruction, keys *Keypad, res *CycleResult) error {
	r := &c.Registers
	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpSys:
		// 0NNN: SYS addr - machine code routine, ignored by interpreters.

	case OpClear:
		// 00E0: CLS
		c.Display.Clear()
		res.Redraw = true

	case OpReturn:
		// 00EE: RET
		addr, err := r.pop()
		if err != nil {
			return err
		}
		r.PC = addr

	case OpJump:
		// 1NNN: JP addr
		r.PC = ins.NNN

	case OpCall:
		// 2NNN: CALL addr - the return address is the already advanced PC.
		if err := r.push(r.PC); err != nil {
			return err
		}
		r.PC = ins.NNN

	case OpSkipEqualImm:
		// 3XNN: SE Vx, byte
		c.skipIf(r.V[x] == ins.NN)

	case OpSkipNotEqualImm:
		// 4XNN: SNE Vx, byte
		c.skipIf(r.V[x] != ins.NN)

	case OpSkipEqualReg:
		// 5XY0: SE Vx, Vy
		c.skipIf(r.V[x] == r.V[y])

	case OpLoadImm:
		// 6XNN: LD Vx, byte
		r.V[x] = ins.NN

	case OpAddImm:
		// 7XNN: ADD Vx, byte - VF is not affected.
		r.V[x] += ins.NN

	case OpLoadReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpShiftRight, OpSubReverse, OpShiftLeft:
		c.arithmetic(ins)

	case OpSkipNotEqualReg:
		// 9XY0: SNE Vx, Vy
		c.skipIf(r.V[x] != r.V[y])

	case OpLoadIndex:
		// ANNN: LD I, addr
		r.I = ins.NNN

	case OpJumpOffset:
		// BNNN: JP V0, addr. With compat the high nibble of NNN selects the
		// register (BXNN: JP VX, XNN).
		offset := r.V[0]
		if c.compat {
			offset = r.V[x]
		}
		r.PC = (ins.NNN + uint16(offset)) & addressMask

	case OpRandom:
		// CXNN: RND Vx, byte
		r.V[x] = byte(c.rng.Intn(256)) & ins.NN

	case OpDraw:
		// DXYN: DRW Vx, Vy, nibble
		c.drawSprite(r.V[x], r.V[y], ins.N)
		res.Redraw = true

	case OpSkipKeyPressed:
		// EX9E: SKP Vx
		c.skipIf(keys.Pressed(r.V[x]))

	case OpSkipKeyNotPressed:
		// EXA1: SKNP Vx
		c.skipIf(!keys.Pressed(r.V[x]))

	case OpLoadDelay:
		// FX07: LD Vx, DT
		r.V[x] = c.Timers.Delay

	case OpWaitKey:
		// FX0A: LD Vx, K - resolved by the following Steps.
		c.state = AwaitingKey
		c.waitReg = x

	case OpSetDelay:
		// FX15: LD DT, Vx
		c.Timers.Delay = r.V[x]

	case OpSetSound:
		// FX18: LD ST, Vx
		c.Timers.Sound = r.V[x]

	case OpAddIndex:
		// FX1E: ADD I, Vx
		r.I += uint16(r.V[x])

	case OpLoadFont:
		// FX29: LD F, Vx
		r.I = glyphAddress(r.V[x])

	case OpStoreBCD:
		// FX33: LD B, Vx
		c.storeBCD(r.V[x])

	case OpStoreRegisters:
		// FX55: LD [I], Vx
		for i := uint16(0); i <= uint16(x); i++ {
			c.Memory.Write(r.I+i, r.V[i])
		}

	case OpLoadRegisters:
		// FX65: LD Vx, [I]
		for i := uint16(0); i <= uint16(x); i++ {
			r.V[i] = c.Memory.Read(r.I + i)
		}

	default:
		res.Unknown = true
	}
	return nil
}

// arithmetic executes the 8XYN family. VF is written after the result so
// that the flag wins when X is VF.
func (c *Chip8) arithmetic(ins Instruction) {
	r := &c.Registers
	vx, vy := r.V[ins.X], r.V[ins.Y]

	switch ins.Op {
	case OpLoadReg:
		// 8XY0: LD Vx, Vy
		r.V[ins.X] = vy

	case OpOr:
		// 8XY1: OR Vx, Vy
		r.V[ins.X] = vx | vy
		r.setFlag(false)

	case OpAnd:
		// 8XY2: AND Vx, Vy
		r.V[ins.X] = vx & vy
		r.setFlag(false)

	case OpXor:
		// 8XY3: XOR Vx, Vy
		r.V[ins.X] = vx ^ vy
		r.setFlag(false)

	case OpAddReg:
		// 8XY4: ADD Vx, Vy - VF = carry
		r.V[ins.X] = vx + vy
		r.setFlag(uint16(vx)+uint16(vy) > 0xFF)

	case OpSub:
		// 8XY5: SUB Vx, Vy - VF = NOT borrow
		r.V[ins.X] = vx - vy
		r.setFlag(vx >= vy)

	case OpShiftRight:
		// 8XY6: SHR Vx {, Vy} - VF = bit shifted out
		src := vy
		if c.compat {
			src = vx
		}
		r.V[ins.X] = src >> 1
		r.setFlag(src&0x01 != 0)

	case OpSubReverse:
		// 8XY7: SUBN Vx, Vy - VF = NOT borrow
		r.V[ins.X] = vy - vx
		r.setFlag(vy >= vx)

	case OpShiftLeft:
		// 8XYE: SHL Vx {, Vy} - VF = bit shifted out
		src := vy
		if c.compat {
			src = vx
		}
		r.V[ins.X] = src << 1
		r.setFlag(src&0x80 != 0)
	}
}

func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.Registers.PC = (c.Registers.PC + 2) & addressMask
	}
}

// drawSprite XORs an 8 pixel wide, height rows tall sprite read from I onto
// the display at (x, y). VF is cleared once and only ever promoted to 1 when
// a lit pixel is turned off.
func (c *Chip8) drawSprite(x, y, height byte) {
	r := &c.Registers
	r.setFlag(false)

	for row := byte(0); row < height; row++ {
		bits := c.Memory.Read(r.I + uint16(row))
		if c.Display.drawRow(int(x), int(y)+int(row), bits) {
			r.setFlag(true)
		}
	}
}

// maxDigits is the number of decimal digits of the largest byte value.
const maxDigits = 3

// storeBCD writes the decimal digits of value to I, I+1 and I+2, most
// significant first. The digits are right aligned so the ones digit always
// lands at I+2 and unused leading cells are zero.
func (c *Chip8) storeBCD(value byte) {
	var digits [maxDigits]byte
	for i := maxDigits - 1; i >= 0; i-- {
		digits[i] = value % 10
		value /= 10
		if value == 0 {
			break
		}
	}

	for i, d := range digits {
		c.Memory.Write(c.Registers.I+uint16(i), d)
	}
}

// Package chip8 implements the CHIP-8 virtual machine: memory, registers,
// timers, display buffer, keypad snapshot and the fetch-decode-execute core.
//
// The package owns no I/O. A host calls Step once per emulated cycle and
// TickTimers at TimerFrequency, and presents Display.Snapshot when a cycle
// reports Redraw.
//
// A Chip8 has a single writer. Step, TickTimers, Reset and the load functions
// must be called from one goroutine; a host that renders on another goroutine
// has to hand over Display.Snapshot copies at frame boundaries instead of
// reading the live buffer.
package chip8

import (
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
)

// State is the operating state of the core.
type State uint8

const (
	// Running fetches and executes one instruction per Step.
	Running State = iota
	// AwaitingKey re-checks the keypad every Step until a key is pressed.
	AwaitingKey
	// Halted is entered after a fatal stack fault; Step keeps returning the fault.
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	default:
		return "invalid"
	}
}

// Chip8 is the machine state.
type Chip8 struct {
	Memory    Memory
	Registers Registers
	Timers    Timers
	Display   Display

	state   State
	waitReg byte  // register receiving the key while AwaitingKey
	fault   error // set when Halted

	// compat selects the CHIP-48 behaviour of the shift and jump with
	// offset instructions instead of the COSMAC VIP one.
	compat bool

	rng *rand.Rand

	// program image kept for Reset
	rom []byte
}

// Option configures a Chip8 created by New.
type Option func(*Chip8)

// WithCompat enables the CHIP-48 compatibility behaviour:
// 8XY6/8XYE shift VX in place and BXNN jumps to XNN + VX.
func WithCompat(enabled bool) Option {
	return func(c *Chip8) {
		c.compat = enabled
	}
}

// WithRandom sets the source used by the CXNN instruction.
func WithRandom(src rand.Source) Option {
	return func(c *Chip8) {
		c.rng = rand.New(src)
	}
}

// New creates a machine in its power-on state with the font loaded.
func New(opts ...Option) *Chip8 {
	c := &Chip8{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// Reset restores the power-on state. A loaded program is kept in memory.
func (c *Chip8) Reset() {
	c.Memory = Memory{}
	c.Memory.LoadFont()
	copy(c.Memory[ProgramStart:], c.rom)

	c.Registers = Registers{PC: ProgramStart}
	c.Timers = Timers{}
	c.Display.Clear()

	c.state = Running
	c.waitReg = 0
	c.fault = nil
}

// LoadROM places a program at ProgramStart and resets the machine.
// On error nothing is changed.
func (c *Chip8) LoadROM(program []byte) error {
	var scratch Memory
	if err := scratch.LoadProgram(program); err != nil {
		return err
	}
	c.rom = append([]byte(nil), program...)
	c.Reset()
	return nil
}

// LoadFile reads a ROM file and loads it with LoadROM.
func (c *Chip8) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Err: errors.Wrap(err, "reading file")}
	}
	if err := checkProgramSize(data); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	return c.LoadROM(data)
}

// Disassemble returns the instruction in assembly notation as this machine
// executes it. With compat enabled BNNN shows the register it jumps with.
func (c *Chip8) Disassemble(ins Instruction) string {
	return ins.format(c.compat)
}

// State returns the current operating state.
func (c *Chip8) State() State {
	return c.state
}

// Compat returns whether the CHIP-48 compatibility behaviour is enabled.
func (c *Chip8) Compat() bool {
	return c.compat
}

// TickTimers decrements the delay and sound timers. It is driven by the host
// at TimerFrequency and is independent of Step.
func (c *Chip8) TickTimers() {
	c.Timers.Tick()
}

package host

import (
	"context"
	"testing"

	"github.com/koushik255/chip8go/internal/chip8"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fakeFrontend replays scripted events, one per poll, and records frames.
type fakeFrontend struct {
	events []Events
	keys   chip8.Keypad
	polls  int
	frames []chip8.Frame

	onPoll func(polls int) // called after every poll if set
}

func (f *fakeFrontend) Poll(keys *chip8.Keypad) Events {
	*keys = f.keys
	f.polls++
	if f.onPoll != nil {
		f.onPoll(f.polls)
	}
	if len(f.events) == 0 {
		return Events{Quit: true}
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev
}

func (f *fakeFrontend) Present(frame chip8.Frame) {
	f.frames = append(f.frames, frame)
}

func newTestRunner(t *testing.T, cfg Config, words ...uint16) (*Runner, *chip8.Chip8, *fakeFrontend) {
	t.Helper()

	program := make([]byte, 0, 2*len(words))
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	machine := chip8.New()
	assert.NoError(t, machine.LoadROM(program))

	frontend := &fakeFrontend{}
	return New(log.NewTestLogger(t), machine, frontend, cfg), machine, frontend
}

func TestNew_Defaults(t *testing.T) {
	r, _, _ := newTestRunner(t, Config{})
	assert.Equal(t, DefaultConfig(), r.cfg)
}

func TestRunFrame_Cycles(t *testing.T) {
	r, machine, _ := newTestRunner(t, Config{CyclesPerFrame: 10},
		0x7001, // add v0, 1
		0x1200, // jp 200
	)
	machine.Timers.Delay = 3

	assert.NoError(t, r.RunFrame(&chip8.Keypad{}, Events{}))
	assert.Equal(t, byte(5), machine.Registers.V[0])
	assert.Equal(t, byte(2), machine.Timers.Delay)
}

func TestRunFrame_PresentsOnlyOnRedraw(t *testing.T) {
	t.Run("no draw", func(t *testing.T) {
		r, _, frontend := newTestRunner(t, Config{}, 0x1200)
		assert.NoError(t, r.RunFrame(&chip8.Keypad{}, Events{}))
		assert.Len(t, frontend.frames, 0)
	})

	t.Run("draw", func(t *testing.T) {
		r, _, frontend := newTestRunner(t, Config{},
			0xD015, // drw v0, v0, 5 with I at the font
			0x1202, // jp 202
		)
		assert.NoError(t, r.RunFrame(&chip8.Keypad{}, Events{}))
		assert.Len(t, frontend.frames, 1)
		assert.True(t, frontend.frames[0][0][0])
	})
}

func TestRunFrame_SingleStep(t *testing.T) {
	r, machine, _ := newTestRunner(t, Config{SingleStep: true}, 0x7001, 0x7001)
	machine.Timers.Delay = 3

	assert.NoError(t, r.RunFrame(&chip8.Keypad{}, Events{}))
	assert.Equal(t, uint16(chip8.ProgramStart), machine.Registers.PC)
	assert.Equal(t, byte(3), machine.Timers.Delay)

	assert.NoError(t, r.RunFrame(&chip8.Keypad{}, Events{Step: true}))
	assert.Equal(t, uint16(chip8.ProgramStart+2), machine.Registers.PC)
	assert.Equal(t, byte(1), machine.Registers.V[0])
	assert.Equal(t, byte(2), machine.Timers.Delay)
}

func TestRunFrame_Fault(t *testing.T) {
	r, machine, _ := newTestRunner(t, Config{}, 0x00EE)

	err := r.RunFrame(&chip8.Keypad{}, Events{})
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Equal(t, chip8.Halted, machine.State())
}

func TestRunFrame_UnknownContinues(t *testing.T) {
	r, machine, _ := newTestRunner(t, Config{CyclesPerFrame: 2}, 0x8AB9, 0x6042)

	assert.NoError(t, r.RunFrame(&chip8.Keypad{}, Events{}))
	assert.Equal(t, byte(0x42), machine.Registers.V[0])
}

func TestRunFrame_AwaitingKeyKeepsTicking(t *testing.T) {
	r, machine, _ := newTestRunner(t, Config{}, 0xF50A, 0x1202)
	machine.Timers.Delay = 5

	assert.NoError(t, r.RunFrame(&chip8.Keypad{}, Events{}))
	assert.Equal(t, chip8.AwaitingKey, machine.State())
	assert.Equal(t, byte(4), machine.Timers.Delay)

	assert.NoError(t, r.RunFrame(&chip8.Keypad{0xB: true}, Events{}))
	assert.Equal(t, chip8.Running, machine.State())
	assert.Equal(t, byte(0xB), machine.Registers.V[5])
}

func TestRun(t *testing.T) {
	t.Run("quit event stops the loop", func(t *testing.T) {
		r, machine, frontend := newTestRunner(t, Config{FrameRate: 1000}, 0x7001, 0x1200)
		frontend.events = []Events{{}, {}}

		assert.NoError(t, r.Run(context.Background()))
		assert.Equal(t, 3, frontend.polls)
		assert.Equal(t, byte(10), machine.Registers.V[0])
		assert.Len(t, frontend.frames, 1)
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		r, _, frontend := newTestRunner(t, Config{}, 0x1200)
		frontend.events = []Events{{}}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.NoError(t, r.Run(ctx))
		assert.Equal(t, 0, frontend.polls)
	})

	t.Run("quit while awaiting key", func(t *testing.T) {
		r, machine, frontend := newTestRunner(t, Config{FrameRate: 1000}, 0xF00A)
		frontend.events = []Events{{}, {}, {}}

		assert.NoError(t, r.Run(context.Background()))
		assert.Equal(t, 4, frontend.polls)
		assert.Equal(t, chip8.AwaitingKey, machine.State())
	})

	t.Run("cancel while awaiting key", func(t *testing.T) {
		r, machine, frontend := newTestRunner(t, Config{}, 0xF00A)
		frontend.events = make([]Events, 100)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		frontend.onPoll = func(polls int) {
			if polls == 3 {
				cancel()
			}
		}

		assert.NoError(t, r.Run(ctx))
		assert.Equal(t, 3, frontend.polls)
		assert.Equal(t, chip8.AwaitingKey, machine.State())
	})

	t.Run("fault is returned", func(t *testing.T) {
		r, _, frontend := newTestRunner(t, Config{FrameRate: 1000}, 0x00EE)
		frontend.events = []Events{{}}

		var stackErr *chip8.StackError
		err := r.Run(context.Background())
		assert.True(t, errors.As(err, &stackErr))
		assert.Equal(t, uint16(chip8.ProgramStart), stackErr.PC)
	})

	t.Run("frontend keys reach the machine", func(t *testing.T) {
		r, machine, frontend := newTestRunner(t, Config{FrameRate: 1000},
			0xE19E, // skp v1
			0x1200, // jp 200
			0x6077, // ld v0, 77
			0x1204, // jp 204
		)
		frontend.keys[0x0] = true
		frontend.events = []Events{{}}

		assert.NoError(t, r.Run(context.Background()))
		assert.Equal(t, byte(0x77), machine.Registers.V[0])
	})
}

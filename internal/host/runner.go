// Package host drives a chip8 machine: it clocks the cycles and the 60 Hz
// timers, moves keypad input in and frames out through a Frontend.
package host

import (
	"context"
	"time"

	"github.com/koushik255/chip8go/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Events are the host level inputs collected by a Frontend poll.
type Events struct {
	Quit bool // user closed the window or pressed the quit key
	Step bool // execute one instruction in single step mode
}

// Frontend presents frames and collects input.
type Frontend interface {
	// Poll updates keys with the current keypad state and returns the
	// host events since the last poll.
	Poll(keys *chip8.Keypad) Events
	// Present shows a frame. The frame is a copy owned by the frontend.
	Present(frame chip8.Frame)
}

// Config controls the host clock.
type Config struct {
	CyclesPerFrame int  // instructions executed per frame
	FrameRate      int  // frames per second, the timers tick once per frame
	SingleStep     bool // only execute an instruction on a Step event
}

// DefaultConfig returns 10 cycles per frame at 60 frames per second.
func DefaultConfig() Config {
	return Config{
		CyclesPerFrame: 10,
		FrameRate:      chip8.TimerFrequency,
	}
}

// Runner owns the machine while it runs. It is the only caller of Step and
// TickTimers.
type Runner struct {
	logger   *log.Logger
	machine  *chip8.Chip8
	frontend Frontend
	cfg      Config

	keys chip8.Keypad
}

// New returns a runner for the machine. Zero config values are replaced by
// the DefaultConfig ones.
func New(logger *log.Logger, machine *chip8.Chip8, frontend Frontend, cfg Config) *Runner {
	def := DefaultConfig()
	if cfg.CyclesPerFrame <= 0 {
		cfg.CyclesPerFrame = def.CyclesPerFrame
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = def.FrameRate
	}

	return &Runner{
		logger:   logger,
		machine:  machine,
		frontend: frontend,
		cfg:      cfg,
	}
}

// Run executes frames until the frontend reports Quit, the context is
// cancelled or the machine faults. Only a machine fault is returned as error.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.FrameRate))
	defer ticker.Stop()

	r.frontend.Present(r.machine.Display.Snapshot())

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Host loop cancelled")
			return nil
		case <-ticker.C:
		}

		events := r.frontend.Poll(&r.keys)
		if events.Quit {
			r.logger.Debug("Quit requested")
			return nil
		}

		if err := r.RunFrame(&r.keys, events); err != nil {
			return err
		}
	}
}

// RunFrame executes one frame with the given keypad snapshot: the configured
// number of cycles, or a single cycle on a Step event in single step mode,
// followed by one timer tick. The display is presented once if any cycle
// changed it.
func (r *Runner) RunFrame(keys *chip8.Keypad, events Events) error {
	cycles := r.cfg.CyclesPerFrame
	if r.cfg.SingleStep {
		if !events.Step {
			return nil
		}
		cycles = 1
	}

	redraw := false
	for range cycles {
		res, err := r.machine.Step(keys)
		if err != nil {
			r.logger.Debug("Machine halted",
				log.Hex("pc", res.PC),
				log.Err(err))
			return err
		}
		r.trace(res)

		if res.Redraw {
			redraw = true
		}
	}

	r.machine.TickTimers()

	if redraw {
		r.frontend.Present(r.machine.Display.Snapshot())
	}
	return nil
}

func (r *Runner) trace(res chip8.CycleResult) {
	if !res.Fetched() {
		return
	}

	if res.Unknown {
		r.logger.Debug("Unknown instruction",
			log.Hex("pc", res.PC),
			log.Hex("opcode", res.Instruction.Word))
		return
	}

	r.logger.Debug("Executed",
		log.Hex("pc", res.PC),
		log.Hex("opcode", res.Instruction.Word),
		log.String("instr", r.machine.Disassemble(res.Instruction)))
}

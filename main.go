// Package main implements a CHIP-8 emulator with a desktop window and a
// terminal frontend.
package main

import (
	"context"
	"os"

	"github.com/faiface/pixel/pixelgl"
	"github.com/koushik255/chip8go/internal/chip8"
	"github.com/koushik255/chip8go/internal/cli"
	"github.com/koushik255/chip8go/internal/config"
	"github.com/koushik255/chip8go/internal/host"
	"github.com/koushik255/chip8go/internal/options"
	"github.com/koushik255/chip8go/internal/terminal"
	"github.com/koushik255/chip8go/internal/window"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var version = "dev"

func main() {
	opts, err := cli.ParseFlags(os.Args[1:])
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		}
		if err.Error() != "" {
			logger.Error("Invalid arguments", log.Err(err))
		}
		os.Exit(1)
	}

	printBanner(logger, opts)

	machine := chip8.New(chip8.WithCompat(opts.Compat))
	if err := machine.LoadFile(opts.ROM); err != nil {
		logger.Error("Loading ROM failed", log.Err(err))
		os.Exit(1)
	}
	logger.Info("Loaded ROM",
		log.String("file", opts.ROM),
		log.String("frontend", opts.Frontend),
		log.Int("speed", opts.Speed))

	if err := run(app.Context(), logger, machine, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8go", log.String("version", version))
}

func run(ctx context.Context, logger *log.Logger, machine *chip8.Chip8, opts options.Program) error {
	cfg := config.RunnerConfig(opts)

	if opts.Frontend == options.FrontendTerminal {
		term, err := terminal.New()
		if err != nil {
			return errors.Wrap(err, "starting terminal frontend")
		}
		defer term.Close()
		return host.New(logger, machine, term, cfg).Run(ctx)
	}

	// pixelgl needs the main thread, the runner executes inside its callback.
	var runErr error
	pixelgl.Run(func() {
		win, err := window.New(window.Config{Scale: opts.Scale})
		if err != nil {
			runErr = errors.Wrap(err, "starting window frontend")
			return
		}
		defer win.Close()
		runErr = host.New(logger, machine, win, cfg).Run(ctx)
	})
	return runErr
}

// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/koushik255/chip8go/internal/options"
	"github.com/pkg/errors"
)

const (
	defaultScale = 10
	defaultSpeed = 10
)

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(args []string) (options.Program, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		msg := ""
		if !errors.Is(err, flag.ErrHelp) {
			msg = err.Error()
		}
		return opts, &UsageError{flags: flags, msg: msg}
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return opts, &UsageError{flags: flags, msg: "no ROM file given"}
	}
	if len(rest) > 1 {
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s after ROM file, options have to be passed before the ROM file", rest[1]),
		}
	}
	opts.ROM = rest[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(options.Frontends(), opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends(), ", "))
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d, has to be positive", opts.Scale)
	}
	if opts.Speed <= 0 {
		return fmt.Errorf("invalid speed %d, has to be positive", opts.Speed)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Debug, "debug", false, "print debug messages and execute instruction by instruction on Space")
	flags.BoolVar(&opts.Debug, "d", false, "shorthand for -debug")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Compat, "compat", false, "use CHIP-48 behaviour for shift and jump with offset instructions")
	flags.BoolVar(&opts.Compat, "c", false, "shorthand for -compat")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendWindow, "frontend to use (window/terminal)")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "window pixels per display pixel")
	flags.IntVar(&opts.Speed, "speed", defaultSpeed, "instructions executed per frame")
}

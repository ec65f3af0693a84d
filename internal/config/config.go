// Package config handles application configuration and setup
package config

import (
	"github.com/koushik255/chip8go/internal/host"
	"github.com/koushik255/chip8go/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// RunnerConfig returns the host loop settings for the program options.
// Debug mode executes one instruction per Space press.
func RunnerConfig(opts options.Program) host.Config {
	cfg := host.DefaultConfig()
	if opts.Speed > 0 {
		cfg.CyclesPerFrame = opts.Speed
	}
	cfg.SingleStep = opts.Debug
	return cfg
}

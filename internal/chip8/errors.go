package chip8

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrROMTooLarge is returned when a program does not fit between
	// ProgramStart and the end of memory.
	ErrROMTooLarge = errors.New("rom too large")

	// ErrStackOverflow is returned when a call is executed with a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// LoadError reports a ROM that could not be read or placed into memory.
// The machine is never started after a LoadError.
type LoadError struct {
	Path string // empty when loading from a byte slice
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading rom: %v", e.Err)
	}
	return fmt.Sprintf("loading rom '%s': %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// StackError is a fatal call stack fault. PC is the address of the
// offending CALL or RET instruction.
type StackError struct {
	Err error
	PC  uint16
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%v at $%03X", e.Err, e.PC)
}

func (e *StackError) Unwrap() error { return e.Err }

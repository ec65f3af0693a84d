// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
)

// Program options of the emulator.
type Program struct {
	ROM string // path of the ROM file to run

	Debug  bool // debug logging and single stepping
	Quiet  bool
	Compat bool // CHIP-48 shift and jump behaviour

	Frontend string
	Scale    int // window pixels per display pixel
	Speed    int // instructions per frame
}

// Frontends returns the supported frontend names.
func Frontends() []string {
	return []string{FrontendWindow, FrontendTerminal}
}

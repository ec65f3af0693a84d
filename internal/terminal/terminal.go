// Package terminal implements a text mode frontend using tcell.
//
// Each display pixel is drawn as two terminal cells so the image keeps its
// aspect ratio. Terminals only report key presses, so a pressed key is held
// down for a number of frames after its last press or auto repeat event.
package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/koushik255/chip8go/internal/chip8"
	"github.com/koushik255/chip8go/internal/host"
	"github.com/pkg/errors"
)

// DefaultHoldFrames is the number of frames a key stays pressed after a
// key event, long enough to bridge the initial auto repeat delay.
const DefaultHoldFrames = 15

var keyMap = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

const pixelRune = '█'

// Terminal is a host.Frontend drawing into a tcell screen.
type Terminal struct {
	screen     tcell.Screen
	holdFrames int
	held       [chip8.KeyCount]int // remaining frames per key

	style tcell.Style
}

var _ host.Frontend = (*Terminal)(nil)

// New initializes the terminal screen.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "creating screen")
	}
	return NewWithScreen(screen, DefaultHoldFrames)
}

// NewWithScreen uses the given screen, which is initialized by this call.
func NewWithScreen(screen tcell.Screen, holdFrames int) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing screen")
	}
	if holdFrames <= 0 {
		holdFrames = DefaultHoldFrames
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	screen.SetStyle(style)
	screen.HideCursor()
	screen.Clear()

	return &Terminal{
		screen:     screen,
		holdFrames: holdFrames,
		style:      style,
	}, nil
}

// Poll drains the pending terminal events. Escape or Ctrl-C quits, Space
// requests a single step.
func (t *Terminal) Poll(keys *chip8.Keypad) host.Events {
	var events host.Events

	for i := range t.held {
		if t.held[i] > 0 {
			t.held[i]--
		}
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				events.Quit = true
			case tcell.KeyRune:
				t.press(ev.Rune(), &events)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	for i, frames := range t.held {
		keys[i] = frames > 0
	}
	return events
}

func (t *Terminal) press(r rune, events *host.Events) {
	if r == ' ' {
		events.Step = true
		return
	}
	if key, ok := keyMap[unicode.ToLower(r)]; ok {
		t.held[key] = t.holdFrames
	}
}

// Present draws the frame in the top left corner of the screen.
func (t *Terminal) Present(frame chip8.Frame) {
	for y := range chip8.Height {
		for x := range chip8.Width {
			r := ' '
			if frame[y][x] {
				r = pixelRune
			}
			t.screen.SetContent(2*x, y, r, nil, t.style)
			t.screen.SetContent(2*x+1, y, r, nil, t.style)
		}
	}
	t.screen.Show()
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

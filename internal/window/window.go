// Package window implements a desktop frontend using pixelgl.
// All functions have to be called from the function passed to pixelgl.Run.
package window

import (
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"github.com/koushik255/chip8go/internal/chip8"
	"github.com/koushik255/chip8go/internal/host"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// DefaultScale is the size in window pixels of a display pixel.
const DefaultScale = 10

// keyMap maps the left hand side of a QWERTY keyboard onto the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keyMap = map[pixelgl.Button]byte{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// Config of the window.
type Config struct {
	Title string
	Scale int

	Foreground color.Color
	Background color.Color
}

// Window is a host.Frontend rendering into an OpenGL window.
type Window struct {
	win   *pixelgl.Window
	imd   *imdraw.IMDraw
	scale float64

	fg, bg color.Color
}

var _ host.Frontend = (*Window)(nil)

// New opens the window.
func New(cfg Config) (*Window, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	if cfg.Title == "" {
		cfg.Title = "CHIP-8 Emulator"
	}
	if cfg.Foreground == nil {
		cfg.Foreground = colornames.White
	}
	if cfg.Background == nil {
		cfg.Background = colornames.Black
	}

	scale := float64(cfg.Scale)
	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  cfg.Title,
		Bounds: pixel.R(0, 0, chip8.Width*scale, chip8.Height*scale),
		VSync:  true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating window")
	}

	return &Window{
		win:   win,
		imd:   imdraw.New(nil),
		scale: scale,
		fg:    cfg.Foreground,
		bg:    cfg.Background,
	}, nil
}

// Poll reads the keyboard state. Escape or closing the window quits,
// Space requests a single step.
func (w *Window) Poll(keys *chip8.Keypad) host.Events {
	w.win.UpdateInput()

	for button, key := range keyMap {
		keys[key] = w.win.Pressed(button)
	}

	return host.Events{
		Quit: w.win.Closed() || w.win.JustPressed(pixelgl.KeyEscape),
		Step: w.win.JustPressed(pixelgl.KeySpace),
	}
}

// Present draws the frame. The window y axis points up, so rows are flipped.
func (w *Window) Present(frame chip8.Frame) {
	w.win.Clear(w.bg)
	w.imd.Clear()
	w.imd.Color = w.fg

	for y := range chip8.Height {
		for x := range chip8.Width {
			if !frame[y][x] {
				continue
			}
			row := float64(chip8.Height - 1 - y)
			w.imd.Push(
				pixel.V(float64(x)*w.scale, row*w.scale),
				pixel.V(float64(x+1)*w.scale, (row+1)*w.scale),
			)
			w.imd.Rectangle(0)
		}
	}

	w.imd.Draw(w.win)
	w.win.SwapBuffers()
}

// Close destroys the window.
func (w *Window) Close() {
	w.win.Destroy()
}

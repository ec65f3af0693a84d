package chip8

import "strings"

// Display resolution in pixels.
const (
	Width  = 64
	Height = 32
)

// Frame is a copy of the display pixels, indexed [y][x].
type Frame [Height][Width]bool

// Display is the monochrome bit plane. It is only written by the clear and
// draw instructions; presentation reads it through Snapshot.
//
// Sprite coordinates wrap around both edges: every pixel position is
// reduced modulo Width and Height before it is touched.
type Display struct {
	pixels Frame
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.pixels = Frame{}
}

// Pixel returns the state of the pixel at the wrapped position.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, Height)][wrap(x, Width)]
}

// Snapshot returns a copy of the current pixels.
func (d *Display) Snapshot() Frame {
	return d.pixels
}

// drawRow XORs the 8 bits of a sprite row, most significant bit first,
// starting at (x, y). It returns true if any lit pixel was turned off.
func (d *Display) drawRow(x, y int, bits byte) bool {
	collision := false
	row := &d.pixels[wrap(y, Height)]
	for col := 0; col < 8; col++ {
		if bits&(0x80>>col) == 0 {
			continue
		}
		px := wrap(x+col, Width)
		if row[px] {
			collision = true
		}
		row[px] = !row[px]
	}
	return collision
}

// String renders the display as rows of '#' and '.'.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range d.pixels {
		for _, lit := range d.pixels[y] {
			if lit {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

package chip8

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Keypad is a snapshot of the 16 keys, indexed by key value 0x0-0xF.
// true = key pressed. The host refreshes it before handing it to Step.
type Keypad [KeyCount]bool

// Pressed returns whether the key is held. Only the low nibble of key is used.
func (k *Keypad) Pressed(key byte) bool {
	return k[key&0xF]
}

// FirstPressed returns the lowest pressed key.
func (k *Keypad) FirstPressed() (byte, bool) {
	for i, pressed := range k {
		if pressed {
			return byte(i), true
		}
	}
	return 0, false
}

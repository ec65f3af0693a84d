package chip8

// TimerFrequency is the rate in Hz at which hosts are expected to call
// TickTimers, independent of the instruction rate.
const TimerFrequency = 60

// Timers holds the delay and sound countdown counters.
type Timers struct {
	Delay byte
	Sound byte
}

// Tick decrements both counters, stopping at zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive returns whether the sound timer is still counting down.
// Producing a tone is left to the host.
func (t Timers) SoundActive() bool {
	return t.Sound > 0
}

package cpu

// Timers are the delay and sound counters, ticked at 60Hz by the driver.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements each non-zero timer and returns whether the sound timer
// was non-zero before the decrement.
func (t *Timers) Tick() bool {
	if t.Delay > 0 {
		t.Delay--
	}
	active := t.Sound > 0
	if active {
		t.Sound--
	}
	return active
}

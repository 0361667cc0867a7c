package cpu

// Keypad is the state of the 16 hex keys.
type Keypad struct {
	keys [16]bool
}

// Set records a key state and reports a released to pressed edge.
func (k *Keypad) Set(key uint8, pressed bool) bool {
	key &= 0xF
	edge := pressed && !k.keys[key]
	k.keys[key] = pressed
	return edge
}

func (k *Keypad) Pressed(key uint8) bool {
	return k.keys[key&0xF]
}

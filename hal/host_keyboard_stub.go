//go:build !tinygo && !cgo

package hal

type hostKeyboard struct {
	a, b *ButtonPin
	quit bool
}

func newHostKeyboard(a, b *ButtonPin) *hostKeyboard {
	return &hostKeyboard{a: a, b: b}
}

func (k *hostKeyboard) poll() {
	// No keyboard support without the window backend.
}

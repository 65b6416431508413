//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard maps window keys onto the two buttons:
// A or Left holds button A, B or Right holds button B, Space holds both.
type hostKeyboard struct {
	a, b *ButtonPin
	quit bool
}

func newHostKeyboard(a, b *ButtonPin) *hostKeyboard {
	return &hostKeyboard{a: a, b: b}
}

func (k *hostKeyboard) poll() {
	both := ebiten.IsKeyPressed(ebiten.KeySpace)
	hold(k.a, both || ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft))
	hold(k.b, both || ebiten.IsKeyPressed(ebiten.KeyB) || ebiten.IsKeyPressed(ebiten.KeyArrowRight))

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		k.quit = true
	}
}

func hold(p *ButtonPin, down bool) {
	if down == p.Held() {
		return
	}
	if down {
		p.Press()
	} else {
		p.Release()
	}
}

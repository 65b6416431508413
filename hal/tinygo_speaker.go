//go:build tinygo && baremetal && nrf52833

package hal

import (
	"fmt"
	"machine"
	"time"

	"tinygo.org/x/drivers/tone"
)

type tinyGoSpeaker struct {
	spk tone.Speaker
	ok  bool
}

func newTinyGoSpeaker(pin machine.Pin) *tinyGoSpeaker {
	spk, err := tone.New(machine.PWM0, pin)
	if err != nil {
		return &tinyGoSpeaker{}
	}
	return &tinyGoSpeaker{spk: spk, ok: true}
}

func (s *tinyGoSpeaker) PlayNote(n Note, d time.Duration) error {
	if !s.ok {
		return ErrNotImplemented
	}
	if !n.Valid() {
		return fmt.Errorf("speaker: unknown note %d", n)
	}
	s.spk.SetPeriod(uint64(n.Period().Nanoseconds()))
	time.Sleep(d)
	s.spk.Stop()
	return nil
}

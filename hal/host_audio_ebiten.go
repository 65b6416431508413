//go:build !tinygo && cgo

package hal

import (
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	hostSampleRate = 44100
	hostAmplitude  = 6000
)

// hostSpeaker plays notes through Ebiten's audio package.
type hostSpeaker struct {
	once sync.Once
	ctx  *audio.Context
}

func newHostSpeaker() Speaker {
	return &hostSpeaker{}
}

func (s *hostSpeaker) PlayNote(n Note, d time.Duration) error {
	if !n.Valid() {
		return fmt.Errorf("speaker: unknown note %d", n)
	}
	s.once.Do(func() {
		// There can only be one audio context per process.
		s.ctx = audio.CurrentContext()
		if s.ctx == nil {
			s.ctx = audio.NewContext(hostSampleRate)
		}
	})
	if s.ctx.SampleRate() != hostSampleRate {
		return fmt.Errorf("speaker: audio context runs at %dHz", s.ctx.SampleRate())
	}

	p := s.ctx.NewPlayerFromBytes(SquareWave(n, d, hostSampleRate, hostAmplitude))
	p.Play()
	time.Sleep(d)
	return p.Close()
}

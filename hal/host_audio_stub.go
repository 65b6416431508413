//go:build !tinygo && !cgo

package hal

import (
	"fmt"
	"time"
)

// hostSpeaker keeps the note timing when no audio backend is available.
type hostSpeaker struct{}

func newHostSpeaker() Speaker { return hostSpeaker{} }

func (hostSpeaker) PlayNote(n Note, d time.Duration) error {
	if !n.Valid() {
		return fmt.Errorf("speaker: unknown note %d", n)
	}
	time.Sleep(d)
	return nil
}

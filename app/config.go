package app

import (
	"fmt"
	"time"

	"emojiradio/board"
	"emojiradio/tasks/display"
	"emojiradio/tasks/input"
	"emojiradio/tasks/sound"
)

// Source selects where inbound pictures come from.
type Source string

const (
	SourceRadio  Source = "radio"
	SourceSerial Source = "serial"
)

// DefaultTestImage is delivered by the serial source for an empty line.
var DefaultTestImage = board.MustParseImage(`
	.....
	.#.#.
	.....
	#...#
	.###.`)

// Config holds every tunable of the device.
type Config struct {
	Board board.Config
	Input input.Config
	Blink time.Duration
	Sound sound.Config

	Source    Source
	TestImage board.Image
}

// DefaultConfig matches the board firmware: radio source, 200ms poll, 400ms blink.
func DefaultConfig() Config {
	return Config{
		Board:     board.DefaultConfig(),
		Input:     input.DefaultConfig(),
		Blink:     display.DefaultBlink,
		Sound:     sound.DefaultConfig(),
		Source:    SourceRadio,
		TestImage: DefaultTestImage,
	}
}

// Validate checks the board, timing and source settings.
func (c Config) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}
	if err := c.Input.Timing.Validate(); err != nil {
		return err
	}
	if c.Input.Poll <= 0 {
		return fmt.Errorf("app: poll interval must be > 0")
	}
	if c.Blink <= 0 {
		return fmt.Errorf("app: blink interval must be > 0")
	}
	if c.Sound.NoteLength <= 0 {
		return fmt.Errorf("app: note length must be > 0")
	}
	for _, n := range c.Sound.Tune {
		if !n.Valid() {
			return fmt.Errorf("app: unknown note %d in tune", n)
		}
	}
	switch c.Source {
	case SourceRadio, SourceSerial:
	default:
		return fmt.Errorf("app: unknown source %q", c.Source)
	}
	return nil
}

package hal

import (
	"fmt"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIO provides access to general-purpose IO pins.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

type nullGPIO struct{}

func (nullGPIO) PinCount() int      { return 0 }
func (nullGPIO) Pin(id int) GPIOPin { return nil }

type virtualGPIO struct {
	pins []GPIOPin
}

func newVirtualGPIO(pins []GPIOPin) GPIO {
	if len(pins) == 0 {
		return nullGPIO{}
	}
	return &virtualGPIO{pins: pins}
}

func (g *virtualGPIO) PinCount() int {
	if g == nil {
		return 0
	}
	return len(g.pins)
}

func (g *virtualGPIO) Pin(id int) GPIOPin {
	if g == nil || id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

// ButtonPin is a simulated active-low push button.
//
// The line idles high through the pull-up and reads low while held.
type ButtonPin struct {
	mu         sync.Mutex
	name       string
	configured bool
	pull       GPIOPull
	held       bool
}

// NewButtonPin returns a released button. It must be configured as an input before reads succeed.
func NewButtonPin(name string) *ButtonPin {
	return &ButtonPin{name: name}
}

func (p *ButtonPin) Name() string   { return p.name }
func (p *ButtonPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *ButtonPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if mode != GPIOModeInput {
		return fmt.Errorf("gpio: pin %s: only input supported", p.name)
	}
	switch pull {
	case GPIOPullNone, GPIOPullUp:
	default:
		return fmt.Errorf("gpio: pin %s: pull-down unsupported", p.name)
	}
	p.pull = pull
	p.configured = true
	return nil
}

func (p *ButtonPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return false, fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	// The board has external pull-ups, so a released line reads high whatever the pull setting.
	return !p.held, nil
}

func (p *ButtonPin) Write(level bool) error {
	_ = level
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// Press holds the button down.
func (p *ButtonPin) Press() { p.set(true) }

// Release lets the button go.
func (p *ButtonPin) Release() { p.set(false) }

// Held reports whether the button is currently held.
func (p *ButtonPin) Held() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held
}

func (p *ButtonPin) set(held bool) {
	p.mu.Lock()
	p.held = held
	p.mu.Unlock()
}

// NewButtonGPIO returns a GPIO bank holding the two buttons at PinButtonA and PinButtonB.
func NewButtonGPIO(a, b *ButtonPin) GPIO {
	return newVirtualGPIO([]GPIOPin{a, b})
}

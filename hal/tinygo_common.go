//go:build tinygo && baremetal

package hal

import (
	"machine"
	"runtime/volatile"
	"time"
	"unsafe"
)

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Read(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	for s.uart.Buffered() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	return s.uart.Read(p)
}

func (s *uartSerial) Write(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.Write(p)
}

// machinePin adapts an active-low push button input.
type machinePin struct {
	name string
	pin  machine.Pin
}

func newMachinePin(name string, pin machine.Pin) *machinePin {
	return &machinePin{name: name, pin: pin}
}

func (p *machinePin) Name() string   { return p.name }
func (p *machinePin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp | GPIOCapPullDown }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeInput {
		return ErrNotImplemented
	}
	m := machine.PinInput
	switch pull {
	case GPIOPullUp:
		m = machine.PinInputPullup
	case GPIOPullDown:
		m = machine.PinInputPulldown
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	_ = level
	return ErrNotImplemented
}

// Cortex-M DWT cycle counter.
const (
	regDEMCR    = 0xE000EDFC
	regDWTCtrl  = 0xE0001000
	regDWTCycnt = 0xE0001004

	demcrTRCENA   = 1 << 24
	dwtCtrlCYCENA = 1 << 0
)

type dwtCycles struct {
	ctrl  *volatile.Register32
	cycnt *volatile.Register32
}

func newDWTCycles() *dwtCycles {
	demcr := (*volatile.Register32)(unsafe.Pointer(uintptr(regDEMCR)))
	demcr.SetBits(demcrTRCENA)
	c := &dwtCycles{
		ctrl:  (*volatile.Register32)(unsafe.Pointer(uintptr(regDWTCtrl))),
		cycnt: (*volatile.Register32)(unsafe.Pointer(uintptr(regDWTCycnt))),
	}
	c.cycnt.Set(0)
	c.ctrl.SetBits(dwtCtrlCYCENA)
	return c
}

func (c *dwtCycles) Reset()            { c.cycnt.Set(0) }
func (c *dwtCycles) Cycles() uint32    { return c.cycnt.Get() }
func (c *dwtCycles) Frequency() uint32 { return machine.CPUFrequency() }

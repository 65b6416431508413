//go:build tinygo && baremetal && nrf52833

package hal

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"device/nrf"
)

const (
	radioBase       = 0x75626974
	radioMaxPayload = 32
	radioPollSlice  = 10 * time.Millisecond
)

var errRadioTimeout = errors.New("radio: rx timeout")

// nrfRadio sends length-prefixed frames on one channel with the group as address prefix.
//
// The peripheral is half duplex, so Recv listens in short slices and lets Send in between.
// Every register wait yields through spinUntil.
type nrfRadio struct {
	mu  sync.Mutex
	buf [radioMaxPayload + 1]byte
}

func newNRFRadio(group uint8, channel uint8) (*nrfRadio, error) {
	if channel > 100 {
		return nil, fmt.Errorf("radio: invalid channel %d", channel)
	}

	nrf.CLOCK.EVENTS_HFCLKSTARTED.Set(0)
	nrf.CLOCK.TASKS_HFCLKSTART.Set(1)
	spinUntil(func() bool { return nrf.CLOCK.EVENTS_HFCLKSTARTED.Get() != 0 }, 0)

	nrf.RADIO.POWER.Set(1)
	nrf.RADIO.MODE.Set(nrf.RADIO_MODE_MODE_Nrf_1Mbit)
	nrf.RADIO.TXPOWER.Set(nrf.RADIO_TXPOWER_TXPOWER_0dBm)
	nrf.RADIO.FREQUENCY.Set(uint32(channel))

	nrf.RADIO.BASE0.Set(radioBase)
	nrf.RADIO.PREFIX0.Set(uint32(group))
	nrf.RADIO.TXADDRESS.Set(0)
	nrf.RADIO.RXADDRESSES.Set(1)

	nrf.RADIO.PCNF0.Set(
		(8 << nrf.RADIO_PCNF0_LFLEN_Pos) |
			(0 << nrf.RADIO_PCNF0_S0LEN_Pos) |
			(0 << nrf.RADIO_PCNF0_S1LEN_Pos))

	nrf.RADIO.PCNF1.Set(
		(radioMaxPayload << nrf.RADIO_PCNF1_MAXLEN_Pos) |
			(0 << nrf.RADIO_PCNF1_STATLEN_Pos) |
			(4 << nrf.RADIO_PCNF1_BALEN_Pos) |
			(nrf.RADIO_PCNF1_ENDIAN_Little << nrf.RADIO_PCNF1_ENDIAN_Pos))

	nrf.RADIO.CRCCNF.Set(2)
	nrf.RADIO.CRCINIT.Set(0xFFFF)
	nrf.RADIO.CRCPOLY.Set(0x11021)

	return &nrfRadio{}, nil
}

func (r *nrfRadio) Send(pkt []byte) error {
	if len(pkt) > radioMaxPayload {
		return fmt.Errorf("radio: payload too large: %d > %d", len(pkt), radioMaxPayload)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[0] = byte(len(pkt))
	copy(r.buf[1:], pkt)
	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&r.buf[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_TXEN.Set(1)
	spinUntil(radioReady, 0)
	nrf.RADIO.TASKS_START.Set(1)
	spinUntil(radioEnd, 0)
	r.disable()
	return nil
}

func (r *nrfRadio) Recv(pkt []byte) (int, error) {
	for {
		n, err := r.listen(pkt, radioPollSlice)
		if errors.Is(err, errRadioTimeout) {
			// Give Send a chance at the peripheral.
			time.Sleep(time.Millisecond)
			continue
		}
		return n, err
	}
}

func (r *nrfRadio) listen(pkt []byte, timeout time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&r.buf[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
	nrf.RADIO.TASKS_RXEN.Set(1)
	spinUntil(radioReady, 0)
	nrf.RADIO.TASKS_START.Set(1)
	if !spinUntil(radioEnd, timeout) {
		r.disable()
		return 0, errRadioTimeout
	}
	r.disable()

	if nrf.RADIO.CRCSTATUS.Get() == 0 {
		// Drop corrupt frames.
		return 0, errRadioTimeout
	}
	n := int(r.buf[0])
	if n > radioMaxPayload {
		n = radioMaxPayload
	}
	return copy(pkt, r.buf[1:1+n]), nil
}

func (r *nrfRadio) disable() {
	nrf.RADIO.TASKS_DISABLE.Set(1)
	spinUntil(func() bool { return nrf.RADIO.STATE.Get() == nrf.RADIO_STATE_STATE_Disabled }, 0)
}

func radioReady() bool { return nrf.RADIO.EVENTS_READY.Get() != 0 }
func radioEnd() bool   { return nrf.RADIO.EVENTS_END.Get() != 0 }

//go:build tinygo && baremetal && nrf52833

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger  *uartLogger
	matrix  *tinyGoMatrix
	gpio    GPIO
	speaker Speaker
	cycles  *dwtCycles
	t       *tinyGoTime
	net     Network
	serial  *uartSerial
}

// New returns a BBC micro:bit v2 (nRF52833) HAL implementation.
//
// UART: the USB interface UART, 115200 8N1.
// Radio: group RadioGroup on channel RadioChannel.
func New() HAL {
	uart := machine.DefaultUART
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	logger := &uartLogger{uart: uart}

	var net Network = nullNetwork{}
	if r, err := newNRFRadio(RadioGroup, RadioChannel); err != nil {
		logger.WriteLineString("hal: radio: " + err.Error())
	} else {
		net = r
	}

	return &tinyGoHAL{
		logger: logger,
		matrix: newTinyGoMatrix(),
		gpio: newVirtualGPIO([]GPIOPin{
			newMachinePin("A", machine.BUTTONA),
			newMachinePin("B", machine.BUTTONB),
		}),
		speaker: newTinyGoSpeaker(machine.P0_00),
		cycles:  newDWTCycles(),
		t:       newTinyGoTime(),
		net:     net,
		serial:  &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHAL) Matrix() Matrix       { return h.matrix }
func (h *tinyGoHAL) GPIO() GPIO           { return h.gpio }
func (h *tinyGoHAL) Speaker() Speaker     { return h.speaker }
func (h *tinyGoHAL) Cycles() CycleCounter { return h.cycles }
func (h *tinyGoHAL) Time() Time           { return h.t }
func (h *tinyGoHAL) Network() Network     { return h.net }
func (h *tinyGoHAL) Serial() Serial       { return h.serial }

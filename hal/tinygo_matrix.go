//go:build tinygo && baremetal && nrf52833

package hal

import (
	"image/color"
	"sync"
	"time"

	"tinygo.org/x/drivers/microbitmatrix"
)

var ledOn = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// tinyGoMatrix keeps the multiplexed LED matrix refreshed from its own goroutine.
type tinyGoMatrix struct {
	mu   sync.Mutex
	dev  microbitmatrix.Device
	rows [5]uint8
}

func newTinyGoMatrix() *tinyGoMatrix {
	m := &tinyGoMatrix{dev: microbitmatrix.New()}
	m.dev.Configure(microbitmatrix.Config{})
	go m.refresh()
	return m
}

func (m *tinyGoMatrix) Width() int  { return 5 }
func (m *tinyGoMatrix) Height() int { return 5 }

func (m *tinyGoMatrix) Show(rows []uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for y := range m.rows {
		var r uint8
		if y < len(rows) {
			r = rows[y]
		}
		m.rows[y] = r
	}
	m.dev.ClearDisplay()
	for y, r := range m.rows {
		for x := 0; x < 5; x++ {
			if r&(1<<x) != 0 {
				m.dev.SetPixel(int16(x), int16(y), ledOn)
			}
		}
	}
	return nil
}

func (m *tinyGoMatrix) refresh() {
	for {
		m.mu.Lock()
		m.dev.Display()
		m.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
}

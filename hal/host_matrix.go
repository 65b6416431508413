//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/tinyfont"
)

const (
	matrixCols = 5
	matrixRows = 5

	ledCell   = 32
	ledGap    = 8
	ledMargin = 16
	labelBand = 24

	hostFBWidth  = 2*ledMargin + matrixCols*ledCell + (matrixCols-1)*ledGap
	hostFBHeight = 2*ledMargin + matrixRows*ledCell + (matrixRows-1)*ledGap + labelBand
)

// hostMatrix keeps the last frame and paints it onto a framebuffer for the window.
type hostMatrix struct {
	mu    sync.Mutex
	rows  [matrixRows]uint8
	label string
	shows uint64

	fb *hostFramebuffer
}

func newHostMatrix() *hostMatrix {
	m := &hostMatrix{fb: newHostFramebuffer(hostFBWidth, hostFBHeight)}
	m.redraw()
	return m
}

func (m *hostMatrix) Width() int  { return matrixCols }
func (m *hostMatrix) Height() int { return matrixRows }

func (m *hostMatrix) Show(rows []uint8) error {
	m.mu.Lock()
	for y := range m.rows {
		m.rows[y] = 0
		if y < len(rows) {
			m.rows[y] = rows[y] & (1<<matrixCols - 1)
		}
	}
	m.shows++
	m.mu.Unlock()
	m.redraw()
	return nil
}

func (m *hostMatrix) SetLabel(s string) {
	m.mu.Lock()
	changed := m.label != s
	m.label = s
	m.mu.Unlock()
	if changed {
		m.redraw()
	}
}

// Frame returns the rows shown last and how many frames have been shown.
func (m *hostMatrix) Frame() ([matrixRows]uint8, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows, m.shows
}

func (m *hostMatrix) redraw() {
	m.mu.Lock()
	rows := m.rows
	label := m.label
	m.mu.Unlock()

	fb := m.fb
	fb.clearRGB(16, 16, 16)
	for y := 0; y < matrixRows; y++ {
		for x := 0; x < matrixCols; x++ {
			px := ledMargin + x*(ledCell+ledGap)
			py := ledMargin + y*(ledCell+ledGap)
			if rows[y]&(1<<x) != 0 {
				fb.fillRect(px, py, ledCell, ledCell, 255, 40, 24)
			} else {
				fb.fillRect(px, py, ledCell, ledCell, 48, 24, 24)
			}
		}
	}

	if label != "" {
		fg := color.RGBA{R: 220, G: 220, B: 220, A: 255}
		baseline := int16(hostFBHeight - labelBand/2)
		tinyfont.WriteLine(fbDisplay{fb: fb}, &tinyfont.TomThumb, ledMargin, baseline, label, fg)
	}
}

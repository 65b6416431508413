//go:build !tinygo

package hal

import (
	"image/color"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) clearRGB(r, g, b uint8) {
	f.fillRect(0, 0, f.width, f.height, r, g, b)
}

func (f *hostFramebuffer) fillRect(x0, y0, w, h int, r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for y := y0; y < y0+h; y++ {
		if y < 0 || y >= f.height {
			continue
		}
		for x := x0; x < x0+w; x++ {
			if x < 0 || x >= f.width {
				continue
			}
			off := y*f.stride + x*2
			f.buf[off] = lo
			f.buf[off+1] = hi
		}
	}
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// fbDisplay adapts the framebuffer to drivers.Displayer so tinyfont can draw on it.
type fbDisplay struct {
	fb *hostFramebuffer
}

func (d fbDisplay) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.fillRect(int(x), int(y), 1, 1, c.R, c.G, c.B)
}

func (d fbDisplay) Display() error { return nil }

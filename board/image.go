package board

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Grid dimensions.
const (
	Width  = 5
	Height = 5

	// ImageSize is the byte size of an Image and of a picture datagram.
	ImageSize = Width * Height
)

// ErrImageSize reports a picture that does not hold exactly ImageSize pixels.
var ErrImageSize = errors.New("board: image must have 25 pixels")

// Image is a 5x5 binary picture, one byte per pixel in row-major order (index y*5+x).
// A zero byte is off, anything else is on.
type Image [ImageSize]byte

// Blank is the image with every pixel off.
var Blank Image

func index(x, y int) (int, bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, false
	}
	return y*Width + x, true
}

// At reports whether the pixel at (x, y) is lit. Out-of-range pixels are off.
func (img Image) At(x, y int) bool {
	i, ok := index(x, y)
	return ok && img[i] != 0
}

// Set lights the pixel at (x, y).
func (img *Image) Set(x, y int) {
	if i, ok := index(x, y); ok {
		img[i] = 1
	}
}

// Clear turns the pixel at (x, y) off.
func (img *Image) Clear(x, y int) {
	if i, ok := index(x, y); ok {
		img[i] = 0
	}
}

// Toggle inverts the pixel at (x, y) and returns its new value.
func (img *Image) Toggle(x, y int) bool {
	i, ok := index(x, y)
	if !ok {
		return false
	}
	if img[i] != 0 {
		img[i] = 0
		return false
	}
	img[i] = 1
	return true
}

// Rows returns one bitmask per row with bit x set when column x is lit.
func (img Image) Rows() []uint8 {
	rows := make([]uint8, Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if img[y*Width+x] != 0 {
				rows[y] |= 1 << x
			}
		}
	}
	return rows
}

// Lit returns the number of lit pixels.
func (img Image) Lit() int {
	n := 0
	for _, p := range img {
		if p != 0 {
			n++
		}
	}
	return n
}

// String renders the image as five lines of '#' (on) and '.' (off).
func (img Image) String() string {
	var b strings.Builder
	for y := 0; y < Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < Width; x++ {
			if img.At(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// ParseImage reads text art or digits, one character per pixel in row-major order.
//
// '#', '*', 'x', 'X' and '1' are on; '.', '-', '_' and '0' are off. Whitespace is
// ignored, so "..#..\n..." and "0010000000..." both work.
func ParseImage(s string) (Image, error) {
	var img Image
	n := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		var on bool
		switch r {
		case '#', '*', 'x', 'X', '1':
			on = true
		case '.', '-', '_', '0':
		default:
			return Image{}, fmt.Errorf("board: parse image: unexpected %q", r)
		}
		if n >= ImageSize {
			return Image{}, fmt.Errorf("board: parse image: %w", ErrImageSize)
		}
		if on {
			img[n] = 1
		}
		n++
	}
	if n != ImageSize {
		return Image{}, fmt.Errorf("board: parse image: %d pixels: %w", n, ErrImageSize)
	}
	return img, nil
}

// MustParseImage is like ParseImage but panics on error. It is meant for fixed pictures.
func MustParseImage(s string) Image {
	img, err := ParseImage(s)
	if err != nil {
		panic(err)
	}
	return img
}

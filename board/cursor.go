package board

import (
	"fmt"
	"strings"
)

// CursorPosition is a grid coordinate, each axis in [0,4].
type CursorPosition struct {
	X, Y int
}

func (c CursorPosition) String() string { return fmt.Sprintf("%d,%d", c.X, c.Y) }

func (c CursorPosition) valid() bool {
	return c.X >= 0 && c.X < Width && c.Y >= 0 && c.Y < Height
}

// WrapPolicy decides where the cursor goes when a move leaves the grid.
type WrapPolicy uint8

const (
	// WrapOrigin sends the cursor to (0,0).
	WrapOrigin WrapPolicy = iota
	// WrapAxis zeroes only the axis that overflowed, as the micro:bit firmware did.
	WrapAxis
)

func (p WrapPolicy) String() string {
	switch p {
	case WrapOrigin:
		return "origin"
	case WrapAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// ParseWrapPolicy maps "origin" or "axis" to a policy.
func ParseWrapPolicy(s string) (WrapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "origin", "":
		return WrapOrigin, nil
	case "axis":
		return WrapAxis, nil
	default:
		return 0, fmt.Errorf("board: unknown wrap policy %q", s)
	}
}

// move applies one step on one axis. dx is used when non-zero, otherwise dy.
func (p WrapPolicy) move(c CursorPosition, dx, dy int) CursorPosition {
	next := c
	if dx != 0 {
		next.X += dx
	} else {
		next.Y += dy
	}
	if next.valid() {
		return next
	}
	if p == WrapAxis {
		if next.X < 0 || next.X >= Width {
			next.X = 0
		}
		if next.Y < 0 || next.Y >= Height {
			next.Y = 0
		}
		return next
	}
	return CursorPosition{}
}

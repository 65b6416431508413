package input

import "fmt"

// Timing converts cycle counts into press durations.
//
// duration = (cycles - Fudge) / Scale. A press is long when duration > LongPress.
// The defaults assume a 64MHz counter, giving microseconds.
type Timing struct {
	Fudge     uint32
	Scale     uint32
	LongPress uint32
}

// DefaultTiming matches a 64MHz counter with a 2.5s long press.
func DefaultTiming() Timing {
	return Timing{Fudge: 5, Scale: 64, LongPress: 2_500_000}
}

// Validate rejects a zero scale.
func (t Timing) Validate() error {
	if t.Scale == 0 {
		return fmt.Errorf("input: timing scale must be > 0")
	}
	return nil
}

// Duration converts a cycle count. Counts below Fudge give 0.
func (t Timing) Duration(cycles uint32) uint32 {
	if cycles < t.Fudge {
		return 0
	}
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return (cycles - t.Fudge) / scale
}

// IsLong reports whether a press lasting cycles commits a pixel.
func (t Timing) IsLong(cycles uint32) bool {
	return t.Duration(cycles) > t.LongPress
}

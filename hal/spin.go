package hal

import (
	"runtime"
	"time"
)

// spinUntil polls done until it reports true, yielding to other goroutines between
// polls. It gives up after timeout; a timeout <= 0 waits forever.
//
// TinyGo schedules goroutines cooperatively, so a register wait that never yields
// stops the matrix refresh and every task timer.
func spinUntil(done func() bool, timeout time.Duration) bool {
	var start time.Time
	if timeout > 0 {
		start = time.Now()
	}
	for !done() {
		if timeout > 0 && time.Since(start) > timeout {
			return false
		}
		runtime.Gosched()
	}
	return true
}

//go:build tinygo

package kernel

// TinyGo cannot walk goroutine stacks.
func captureStack() []byte { return nil }

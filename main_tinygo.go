//go:build tinygo

package main

import (
	"emojiradio/app"
	"emojiradio/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}

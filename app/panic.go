package app

import (
	"fmt"
	"strings"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/kernel"
)

var sadFace = board.MustParseImage(`
	.....
	.#.#.
	.....
	.###.
	#...#`)

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("emojiradio panic: task=%d (%s) panic=%v", info.TaskID, info.Task, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
		}

		m := h.Matrix()
		if m == nil {
			return
		}
		_ = m.Show(sadFace.Rows())
		if lb, ok := m.(hal.Labeler); ok {
			lb.SetLabel(fmt.Sprintf("panic: %s", info.Task))
		}
	})
}

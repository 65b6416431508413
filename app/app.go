package app

import (
	"context"
	"fmt"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/internal/buildinfo"
	"emojiradio/kernel"
	"emojiradio/tasks/display"
	"emojiradio/tasks/input"
	"emojiradio/tasks/receive"
	"emojiradio/tasks/sound"
)

// App is the board state and the four tasks that share it.
type App struct {
	h     hal.HAL
	k     *kernel.System
	board *board.State
}

// Build wires the board and its tasks on h without starting anything.
func Build(h hal.HAL, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st := board.New(cfg.Board)
	k := kernel.NewSystem(h.Logger())

	var src receive.Source
	switch cfg.Source {
	case SourceSerial:
		if s := h.Serial(); s != nil {
			src = receive.NewSerialTrigger(s, cfg.TestImage)
		}
	default:
		src = h.Network()
	}

	k.AddTask("input", input.New(st, h.GPIO(), h.Cycles(), h.Network(), cfg.Input))
	k.AddTask("display", display.New(st, h.Matrix(), cfg.Blink))
	k.AddTask("receive", receive.New(st, src))
	k.AddTask("sound", sound.New(st, h.Speaker(), cfg.Sound))

	return &App{h: h, k: k, board: st}, nil
}

// Board returns the shared board state.
func (a *App) Board() *board.State { return a.board }

// Kernel returns the task runner.
func (a *App) Kernel() *kernel.System { return a.k }

// Run feeds HAL ticks to the kernel and runs the tasks until ctx ends or a task fails.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if ht := a.h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case seq, ok := <-ch:
						if !ok {
							return
						}
						a.k.TickTo(seq)
					}
				}
			}()
		}
	}

	return a.k.Run(ctx)
}

// New builds the application, starts it in the background and returns the host step
// function. The step reports a configuration error or a failed task.
func New(h hal.HAL, cfg Config) func() error {
	a, err := Build(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	installPanicHandler(h)
	logf(h, "emojiradio %s: source=%s wrap=%s", buildinfo.Short(), cfg.Source, cfg.Board.Wrap)

	errc := make(chan error, 1)
	go func() { errc <- a.Run(context.Background()) }()

	return func() error {
		select {
		case err := <-errc:
			if err == nil {
				err = fmt.Errorf("app: all tasks stopped")
			}
			errc <- err
			return err
		default:
			return nil
		}
	}
}

// Run starts the application and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL, cfg Config) {
	a, err := Build(h, cfg)
	if err != nil {
		logf(h, "emojiradio: %v", err)
		select {}
	}
	installPanicHandler(h)
	logf(h, "emojiradio %s", buildinfo.Short())
	if err := a.Run(context.Background()); err != nil {
		logf(h, "emojiradio: %v", err)
	}
	select {}
}

func logf(h hal.HAL, format string, args ...any) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}

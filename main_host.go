//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"

	"emojiradio/app"
	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/internal/buildinfo"
	"emojiradio/radio/mqtt"
	"emojiradio/tasks/input"
)

func main() {
	// A missing .env is fine; the environment and flags still apply.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fatalf("%v", err)
	}
}

// run parses flags and runs the device until the window closes or the process is interrupted.
// Deferred cleanup such as the radio disconnect runs before main exits.
func run() error {
	cfg := app.DefaultConfig()
	var (
		headless  hal.HeadlessConfig
		radioURL  string
		group     int
		source    string
		wrap      string
		logLevel  string
		version   bool
		longPress = uint64(cfg.Input.Timing.LongPress)
		fudge     = uint64(cfg.Input.Timing.Fudge)
		scale     = uint64(cfg.Input.Timing.Scale)
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 100, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&radioURL, "radio", os.Getenv("EMOJI_RADIO"), "MQTT broker URL for the radio (empty = no radio). Env: EMOJI_RADIO.")
	flag.IntVar(&group, "group", envInt("EMOJI_GROUP", hal.RadioGroup), "Radio group. Env: EMOJI_GROUP.")
	flag.StringVar(&source, "source", string(cfg.Source), "Picture source: radio or serial (stdin lines).")
	flag.StringVar(&wrap, "wrap", cfg.Board.Wrap.String(), "Cursor overflow: origin (0,0) or axis (zero the overflowing axis).")
	flag.Uint64Var(&longPress, "long-press", longPress, "Long press threshold in duration units.")
	flag.Uint64Var(&fudge, "fudge", fudge, "Cycles subtracted from each press measurement.")
	flag.Uint64Var(&scale, "scale", scale, "Cycles per duration unit.")
	flag.DurationVar(&cfg.Input.Poll, "poll", cfg.Input.Poll, "Button poll interval.")
	flag.DurationVar(&cfg.Blink, "blink", cfg.Blink, "Display phase duration.")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Line("emojiradio"))
		return nil
	}

	w, err := board.ParseWrapPolicy(wrap)
	if err != nil {
		return err
	}
	cfg.Board.Wrap = w
	cfg.Source = app.Source(source)
	timing, err := timingFromFlags(fudge, scale, longPress)
	if err != nil {
		return err
	}
	cfg.Input.Timing = timing
	if err := cfg.Validate(); err != nil {
		return err
	}

	host := hal.HostConfig{LogLevel: logLevel}
	if radioURL != "" {
		r, err := mqtt.Dial(radioURL, group)
		if err != nil {
			return err
		}
		defer r.Close()
		host.Network = r
	}

	newApp := func(h hal.HAL) func() error { return app.New(h, cfg) }

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, host, newApp, headless)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return hal.RunWindow(host, newApp)
}

// timingFromFlags checks that each press timing flag fits the 32-bit cycle counter.
func timingFromFlags(fudge, scale, longPress uint64) (input.Timing, error) {
	for _, f := range []struct {
		name string
		v    uint64
	}{{"fudge", fudge}, {"scale", scale}, {"long-press", longPress}} {
		if f.v > math.MaxUint32 {
			return input.Timing{}, fmt.Errorf("-%s %d: must be at most %d", f.name, f.v, uint64(math.MaxUint32))
		}
	}
	t := input.Timing{Fudge: uint32(fudge), Scale: uint32(scale), LongPress: uint32(longPress)}
	return t, t.Validate()
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: %v\n", key, v, err)
		return def
	}
	return n
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

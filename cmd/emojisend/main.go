//go:build !tinygo

// Command emojisend talks to emojiradio peers over the MQTT radio: it sends a
// picture to a group, listens and prints the pictures it hears, or opens a shell
// for drawing and sending pictures by hand.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/internal/buildinfo"
	"emojiradio/proto"
	"emojiradio/radio/mqtt"
)

type options struct {
	radioURL string
	group    int
	image    string
	file     string
	count    int
	interval time.Duration
	listen   bool
	shell    bool
}

func main() {
	_ = godotenv.Load()

	var opts options
	var version bool
	flag.StringVar(&opts.radioURL, "radio", os.Getenv("EMOJI_RADIO"), "MQTT broker URL. Env: EMOJI_RADIO.")
	flag.IntVar(&opts.group, "group", hal.RadioGroup, "Radio group.")
	flag.StringVar(&opts.image, "image", "", "Picture as 25 pixels of text art or 0/1 digits.")
	flag.StringVar(&opts.file, "file", "", "Read the picture from a file (- = stdin).")
	flag.IntVar(&opts.count, "count", 1, "Number of copies to send.")
	flag.DurationVar(&opts.interval, "interval", 200*time.Millisecond, "Delay between copies.")
	flag.BoolVar(&opts.listen, "listen", false, "Print received pictures instead of sending.")
	flag.BoolVar(&opts.shell, "shell", false, "Edit and send pictures from a shell; remaining args run one command.")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Line("emojisend"))
		return
	}
	if v := os.Getenv("EMOJI_GROUP"); v != "" && !flagSet("group") {
		n, err := strconv.Atoi(v)
		if err != nil {
			fatalf("EMOJI_GROUP=%q: %v", v, err)
		}
		opts.group = n
	}
	if opts.radioURL == "" {
		fmt.Fprintln(os.Stderr, "error: -radio is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if opts.shell {
		r, err := mqtt.Dial(opts.radioURL, opts.group)
		if err != nil {
			fatalf("error: %v", err)
		}
		err = runShell(r, opts.group, flag.Args())
		_ = r.Close()
		if err != nil {
			fatalf("error: %v", err)
		}
		return
	}
	if err := run(ctx, opts, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		fatalf("error: %v", err)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	var img board.Image
	if !opts.listen {
		var err error
		img, err = loadPicture(opts.image, opts.file, os.Stdin)
		if err != nil {
			return err
		}
	}

	r, err := mqtt.Dial(opts.radioURL, opts.group)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	if opts.listen {
		return listen(ctx, r, out)
	}
	return send(ctx, r, img, opts.count, opts.interval, out)
}

// loadPicture reads the picture from the -image text or from the -file path.
func loadPicture(text, path string, stdin io.Reader) (board.Image, error) {
	switch {
	case text != "" && path != "":
		return board.Image{}, fmt.Errorf("use either -image or -file")
	case text != "":
		return board.ParseImage(text)
	case path == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return board.Image{}, fmt.Errorf("read stdin: %w", err)
		}
		return board.ParseImage(string(b))
	case path != "":
		b, err := os.ReadFile(path)
		if err != nil {
			return board.Image{}, fmt.Errorf("read picture %q: %w", path, err)
		}
		return board.ParseImage(string(b))
	default:
		return board.Image{}, fmt.Errorf("one of -image or -file is required")
	}
}

func send(ctx context.Context, tx hal.Network, img board.Image, count int, interval time.Duration, out io.Writer) error {
	pkt := proto.PicturePayload(img)
	for i := 0; i < count; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
		if err := tx.Send(pkt); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "sent %d cop%s of\n%s\n", count, plural(count, "y", "ies"), img)
	return nil
}

func listen(ctx context.Context, rx interface {
	hal.Network
	io.Closer
}, out io.Writer) error {
	go func() {
		<-ctx.Done()
		_ = rx.Close()
	}()

	buf := make([]byte, 64)
	for {
		n, err := rx.Recv(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if n > len(buf) {
			fmt.Fprintf(out, "dropped %d-byte datagram\n", n)
			continue
		}
		img, ok := proto.DecodePicturePayload(buf[:n])
		if !ok {
			fmt.Fprintf(out, "dropped %d-byte datagram\n", n)
			continue
		}
		fmt.Fprintf(out, "%s\n%s\n\n", time.Now().Format(time.TimeOnly), img)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

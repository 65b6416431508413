//go:build !tinygo

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"emojiradio/board"
	"emojiradio/hal"
	"emojiradio/proto"
)

const sketchKey = "$sketch"

// sketch is the picture edited by the interactive shell.
type sketch struct {
	img board.Image
	tx  hal.Network
	// sent counts datagrams handed to tx.
	sent int
}

func (s *sketch) toggle(args []string) (bool, error) {
	x, y, err := parseXY(args)
	if err != nil {
		return false, err
	}
	return s.img.Toggle(x, y), nil
}

func (s *sketch) load(args []string) error {
	img, err := board.ParseImage(strings.Join(args, ""))
	if err != nil {
		return err
	}
	s.img = img
	return nil
}

func (s *sketch) send(args []string) (int, error) {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return 0, fmt.Errorf("bad count %q", args[0])
		}
		count = n
	}
	pkt := proto.PicturePayload(s.img)
	for i := 0; i < count; i++ {
		if err := s.tx.Send(pkt); err != nil {
			return i, err
		}
		s.sent++
	}
	return count, nil
}

func parseXY(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("want X Y")
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil || x < 0 || x >= board.Width || y < 0 || y >= board.Height {
		return 0, 0, fmt.Errorf("bad position %s,%s", args[0], args[1])
	}
	return x, y, nil
}

func sketchFrom(c *ishell.Context) *sketch {
	return c.Get(sketchKey).(*sketch)
}

var shellCmds = []*ishell.Cmd{
	{
		Name:    "show",
		Aliases: []string{"p"},
		Help:    "print the picture",
		Func: func(c *ishell.Context) {
			c.Println(sketchFrom(c).img.String())
		},
	},
	{
		Name:    "toggle",
		Aliases: []string{"t"},
		Help:    "X Y",
		Func: func(c *ishell.Context) {
			if _, err := sketchFrom(c).toggle(c.Args); err != nil {
				c.Err(err)
				return
			}
			c.Println(sketchFrom(c).img.String())
		},
	},
	{
		Name: "clear",
		Help: "blank the picture",
		Func: func(c *ishell.Context) {
			sketchFrom(c).img = board.Blank
		},
	},
	{
		Name:    "load",
		Aliases: []string{"l"},
		Help:    "ROWS... (text art or 0/1 digits)",
		Func: func(c *ishell.Context) {
			if err := sketchFrom(c).load(c.Args); err != nil {
				c.Err(err)
				return
			}
			c.Println(sketchFrom(c).img.String())
		},
	},
	{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "[COUNT]",
		Func: func(c *ishell.Context) {
			n, err := sketchFrom(c).send(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("sent %d\n", n)
		},
	},
}

func newShell(tx hal.Network, group int) *ishell.Shell {
	sh := ishell.New()
	sh.Set(sketchKey, &sketch{tx: tx})
	sh.SetPrompt(fmt.Sprintf("[group %d] > ", group))
	for _, cmd := range shellCmds {
		sh.AddCmd(cmd)
	}
	return sh
}

// runShell processes args as one command, or starts the interactive shell when there are none.
func runShell(tx hal.Network, group int, args []string) error {
	sh := newShell(tx, group)
	if len(args) > 0 {
		return sh.Process(args...)
	}
	sh.Run()
	return nil
}

//go:build !tinygo

package hal

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// HostConfig selects the host-side backends.
type HostConfig struct {
	// Network is the radio; nil leaves the host without one.
	Network Network
	// LogLevel is a logrus level name ("info" when empty).
	LogLevel string
}

type hostHAL struct {
	logger  *hostLogger
	matrix  *hostMatrix
	buttonA *ButtonPin
	buttonB *ButtonPin
	gpio    GPIO
	kbd     *hostKeyboard
	speaker Speaker
	cycles  *hostCycles
	t       *hostTime
	net     Network
	serial  Serial
}

// New returns a host HAL implementation without a radio.
func New() HAL {
	return NewHost(HostConfig{})
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) HAL {
	return newHostHAL(cfg)
}

func newHostHAL(cfg HostConfig) *hostHAL {
	logger := newHostLogger(cfg.LogLevel)
	a := NewButtonPin("BUTTON_A")
	b := NewButtonPin("BUTTON_B")
	net := cfg.Network
	if net == nil {
		net = nullNetwork{}
	}
	return &hostHAL{
		logger:  logger,
		matrix:  newHostMatrix(),
		buttonA: a,
		buttonB: b,
		gpio:    NewButtonGPIO(a, b),
		kbd:     newHostKeyboard(a, b),
		speaker: newHostSpeaker(),
		cycles:  newHostCycles(),
		t:       newHostTime(),
		net:     net,
		serial:  &hostSerial{r: os.Stdin, w: os.Stdout},
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) Matrix() Matrix       { return h.matrix }
func (h *hostHAL) GPIO() GPIO           { return h.gpio }
func (h *hostHAL) Speaker() Speaker     { return h.speaker }
func (h *hostHAL) Cycles() CycleCounter { return h.cycles }
func (h *hostHAL) Time() Time           { return h.t }
func (h *hostHAL) Network() Network     { return h.net }
func (h *hostHAL) Serial() Serial       { return h.serial }

type hostLogger struct {
	l *logrus.Logger
}

func newHostLogger(level string) *hostLogger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level == "" {
		level = "info"
	}
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	} else {
		l.Warnf("unknown log level %q, using info", level)
	}
	return &hostLogger{l: l}
}

func (l *hostLogger) WriteLineString(s string) {
	l.l.Info(strings.TrimRight(s, "\r\n"))
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

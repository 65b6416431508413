package mqtt

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// ErrClosed is returned by Send and Recv after Close.
var ErrClosed = errors.New("mqtt: radio closed")

const (
	rxQueue        = 16
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// GroupTopic is the topic a radio with clientID publishes on in group.
func GroupTopic(group int, clientID string) string {
	return fmt.Sprintf("group/%d/%s", group, clientID)
}

// ClientID names this process: a short machine hash and the PID, so several
// radios can run on one host.
func ClientID() string {
	id, err := machineid.ProtectedID("emojiradio")
	if err != nil || len(id) < 8 {
		glog.Warningf("mqtt: machine id: %v", err)
		id = "00000000"
	}
	return fmt.Sprintf("emojiradio-%s-%d", id[:8], os.Getpid())
}

// Radio is a group radio on an MQTT broker. It satisfies hal.Network.
type Radio struct {
	q        *Queue
	group    int
	clientID string

	rx        chan []byte
	closeOnce sync.Once
	closed    chan struct{}
}

// Dial connects to brokerURL and joins group.
func Dial(brokerURL string, group int) (*Radio, error) {
	opts, prefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("mqtt: broker url: %w", err)
	}
	clientID := opts.ClientID
	if clientID == "" {
		clientID = ClientID()
		opts.SetClientID(clientID)
	}

	r := newRadio(NewQueue(opts, prefix), group, clientID)
	token := r.q.Connect()
	if !token.WaitTimeout(connectTimeout) {
		r.q.Close()
		return nil, fmt.Errorf("mqtt: connect %s: timeout", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect %s: %w", brokerURL, err)
	}
	glog.Infof("mqtt: %s joined group %d", clientID, group)
	return r, nil
}

func newRadio(q *Queue, group int, clientID string) *Radio {
	r := &Radio{
		q:        q,
		group:    group,
		clientID: clientID,
		rx:       make(chan []byte, rxQueue),
		closed:   make(chan struct{}),
	}
	q.Sub(fmt.Sprintf("group/%d/+", group), r.handle)
	return r
}

// ClientID returns the id this radio publishes under.
func (r *Radio) ClientID() string { return r.clientID }

func (r *Radio) Send(pkt []byte) error {
	select {
	case <-r.closed:
		return ErrClosed
	default:
	}
	token := r.q.Pub(GroupTopic(r.group, r.clientID), pkt)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt: publish: timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish: %w", err)
	}
	return nil
}

// Recv blocks until a datagram from another radio in the group arrives.
func (r *Radio) Recv(pkt []byte) (int, error) {
	select {
	case frame := <-r.rx:
		copy(pkt, frame)
		return len(frame), nil
	case <-r.closed:
		return 0, ErrClosed
	}
}

func (r *Radio) Close() error {
	r.closeOnce.Do(func() {
		close(r.closed)
		r.q.Close()
	})
	return nil
}

func (r *Radio) handle(topic string, payload []byte) {
	sender := topic[strings.LastIndexByte(topic, '/')+1:]
	if sender == r.clientID {
		return
	}
	frame := append([]byte(nil), payload...)
	select {
	case r.rx <- frame:
	default:
		glog.Warningf("mqtt: rx queue full, dropped %d bytes from %s", len(frame), sender)
	}
}

// Package loopback is an in-process datagram radio for tests and simulation.
package loopback

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Send and Recv after Close.
var ErrClosed = errors.New("loopback: closed")

const ringCapacity = 64

// Port is one end of a loopback link. It satisfies hal.Network.
//
// Datagrams sent on a port arrive at its peer, if any, and are recorded in the
// port's transmit log. The receive queue is bounded; when it is full the oldest
// datagram is lost, as on a real radio.
type Port struct {
	mu     sync.Mutex
	cond   *sync.Cond
	rx     ringBuffer
	tx     ringBuffer
	peer   *Port
	closed bool
}

// New returns a port without a peer.
func New() *Port {
	p := &Port{}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Pair returns two ports wired to each other.
func Pair() (*Port, *Port) {
	a, b := New(), New()
	a.peer, b.peer = b, a
	return a, b
}

func (p *Port) Send(pkt []byte) error {
	frame := append([]byte(nil), pkt...)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.tx.push(frame)
	peer := p.peer
	p.mu.Unlock()

	if peer != nil {
		peer.deliver(frame)
	}
	return nil
}

// Recv blocks until a datagram is queued or the port is closed. A datagram longer
// than pkt is truncated; the returned length is the datagram's full length.
func (p *Port) Recv(pkt []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if p.closed {
			return 0, ErrClosed
		}
		if frame, ok := p.rx.pop(); ok {
			copy(pkt, frame)
			return len(frame), nil
		}
		p.cond.Wait()
	}
}

// Inject queues a datagram as if a peer had sent it.
func (p *Port) Inject(pkt []byte) {
	p.deliver(append([]byte(nil), pkt...))
}

// TxLog returns copies of the datagrams sent on this port, oldest first.
func (p *Port) TxLog() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tx.snapshot()
}

// Close unblocks Recv. Further Send and Recv calls fail with ErrClosed.
func (p *Port) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	return nil
}

func (p *Port) deliver(frame []byte) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.rx.push(frame)
	p.mu.Unlock()
	p.cond.Signal()
}

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int // head = next pop, tail = next push
	count      int
}

func (rb *ringBuffer) push(frame []byte) {
	if rb.count == ringCapacity {
		rb.data[rb.tail] = nil
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = frame
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) pop() ([]byte, bool) {
	if rb.count == 0 {
		return nil, false
	}
	frame := rb.data[rb.head]
	rb.data[rb.head] = nil
	rb.head = (rb.head + 1) % ringCapacity
	rb.count--
	return frame, true
}

func (rb *ringBuffer) snapshot() [][]byte {
	out := make([][]byte, 0, rb.count)
	i := rb.head
	for c := 0; c < rb.count; c++ {
		out = append(out, append([]byte(nil), rb.data[i]...))
		i = (i + 1) % ringCapacity
	}
	return out
}

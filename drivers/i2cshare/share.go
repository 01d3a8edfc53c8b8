// Package i2cshare serializes one physical I²C bus for several device
// drivers. A single owner goroutine executes every transaction, so no two
// transactions interleave on the wire. Each driver gets its own Handle.
package i2cshare

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"tinygo.org/x/drivers"

	"pac194x-go/errcode"
)

// ErrClosed is returned by Tx on a closed handle or a stopped bus.
var ErrClosed error = errcode.Closed

type Config struct {
	QueueLen int           // pending request slots; <= 0 uses 16
	Timeout  time.Duration // per-call bound on enqueue and on completion; 0 => none
}

func DefaultConfig() Config { return Config{QueueLen: 16} }

// Request states. A caller that gives up cancels a request the owner has
// not started; one already started runs to completion on its own buffers.
const (
	reqPending int32 = iota
	reqStarted
	reqCancelled
)

type req struct {
	addr  uint16
	w, r  []byte
	done  chan error // buffered(1); worker replies best-effort
	state atomic.Int32
}

// Bus owns the physical bus. It holds one reference of its own, released
// by Close; the owner stops when the last reference goes away.
type Bus struct {
	hw      drivers.I2C
	reqs    chan *req
	quit    chan struct{}
	stopped chan struct{}
	timeout time.Duration

	mu     sync.Mutex
	refs   int
	closed bool // Bus.Close called
}

func New(hw drivers.I2C, cfg Config) *Bus {
	n := cfg.QueueLen
	if n <= 0 {
		n = 16
	}
	b := &Bus{
		hw:      hw,
		reqs:    make(chan *req, n),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		timeout: cfg.Timeout,
		refs:    1,
	}
	go b.loop()
	return b
}

func (b *Bus) loop() {
	defer close(b.stopped)
	for {
		select {
		case q := <-b.reqs:
			if !q.state.CompareAndSwap(reqPending, reqStarted) {
				continue
			}
			err := b.hw.Tx(q.addr, q.w, q.r)
			// best-effort reply; do not block the worker
			select {
			case q.done <- err:
			default:
			}
		case <-b.quit:
			return
		}
	}
}

// Handle loans a new reference to the bus. Handles taken after the owner
// has stopped fail every Tx with ErrClosed.
func (b *Bus) Handle() *Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := &Handle{b: b}
	if b.refs == 0 {
		h.closed = true
		return h
	}
	b.refs++
	return h
}

// Close drops the Bus's own reference. It is idempotent.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()
	return b.release()
}

// Done is closed once the owner goroutine has exited.
func (b *Bus) Done() <-chan struct{} { return b.stopped }

func (b *Bus) release() error {
	b.mu.Lock()
	b.refs--
	last := b.refs == 0
	b.mu.Unlock()
	if !last {
		return nil
	}
	close(b.quit)
	<-b.stopped
	if c, ok := b.hw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Handle is one driver's view of the shared bus. It implements
// drivers.I2C and must be closed when the driver is done with it.
type Handle struct {
	b *Bus

	mu     sync.Mutex
	closed bool
}

var _ drivers.I2C = (*Handle)(nil)

// Tx queues one transaction and waits for it.
//
// With a timeout configured a full queue fails with errcode.Busy and a slow
// transaction with errcode.Timeout. The request then owns copies of w and
// r, so the caller may reuse its buffers at once. A timed-out request the
// owner has not started is dropped; one already on the wire completes but
// its result is discarded.
func (h *Handle) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return ErrClosed
	}
	b := h.b
	if b.timeout <= 0 {
		return b.wait(&req{addr: addr, w: w, r: r, done: make(chan error, 1)})
	}

	q := &req{addr: addr, done: make(chan error, 1)}
	if len(w) > 0 {
		q.w = append([]byte(nil), w...)
	}
	if len(r) > 0 {
		q.r = make([]byte, len(r))
	}
	enq := time.NewTimer(b.timeout)
	select {
	case b.reqs <- q:
		enq.Stop()
	case <-enq.C:
		return errcode.Busy
	case <-b.quit:
		enq.Stop()
		return ErrClosed
	}
	t := time.NewTimer(b.timeout)
	defer t.Stop()
	select {
	case err := <-q.done:
		if err == nil {
			copy(r, q.r)
		}
		return err
	case <-t.C:
		q.state.CompareAndSwap(reqPending, reqCancelled)
		return errcode.Timeout
	case <-b.stopped:
		return ErrClosed
	}
}

// wait runs q without a deadline, on the caller's own buffers.
func (b *Bus) wait(q *req) error {
	select {
	case b.reqs <- q:
	case <-b.quit:
		return ErrClosed
	}
	select {
	case err := <-q.done:
		return err
	case <-b.stopped:
		return ErrClosed
	}
}

// Close releases the handle's reference. Closing the last reference stops
// the owner and closes the bus if it implements io.Closer.
func (h *Handle) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()
	return h.b.release()
}

package frame

import "sync"

// Mailbox is the single-slot handoff between the acquisition loop and the
// reconstruction loop. Publish overwrites the slot unconditionally, so the
// consumer only ever sees the latest frame: if reconstruction cannot keep
// pace with acquisition, older frames are dropped instead of queued. That
// bounds memory and keeps displayed output close to real time.
//
// Publish never blocks, which keeps the sensor read loop free-running no
// matter what the consumer is doing. The consumer waits on Ready instead of
// polling in a tight sleep-and-recheck loop; the observable lossy
// latest-frame behavior is the same.
type Mailbox struct {
	mu      sync.Mutex
	pending *Frame
	notify  chan struct{}
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		notify: make(chan struct{}, 1),
	}
}

// Publish places a frame in the slot, replacing any frame already there.
// It never blocks.
func (m *Mailbox) Publish(f *Frame) {
	m.mu.Lock()
	m.pending = f
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// Take removes and returns the pending frame. The second return is false
// when the slot is empty, which happens when a Ready signal raced with an
// earlier Take.
func (m *Mailbox) Take() (*Frame, bool) {
	m.mu.Lock()
	f := m.pending
	m.pending = nil
	m.mu.Unlock()
	return f, f != nil
}

// Ready signals that a frame may be pending. A received signal does not
// guarantee Take will succeed; callers must handle an empty slot.
func (m *Mailbox) Ready() <-chan struct{} {
	return m.notify
}

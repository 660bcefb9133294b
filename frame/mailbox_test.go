package frame

import "testing"

func TestMailboxLatestWins(t *testing.T) {
	m := NewMailbox()
	f1 := New(1, 8)
	f2 := New(2, 8)

	// Two publishes before the consumer polls: only the latest survives.
	m.Publish(f1)
	m.Publish(f2)

	got, ok := m.Take()
	if !ok {
		t.Fatal("Take() empty after publish")
	}
	if got != f2 {
		t.Fatal("Take() returned an overwritten frame, want the latest")
	}

	if _, ok := m.Take(); ok {
		t.Fatal("Take() returned a frame twice")
	}
}

func TestMailboxReadySignal(t *testing.T) {
	m := NewMailbox()

	select {
	case <-m.Ready():
		t.Fatal("Ready fired on empty mailbox")
	default:
	}

	m.Publish(New(1, 8))

	select {
	case <-m.Ready():
	default:
		t.Fatal("Ready did not fire after publish")
	}

	if _, ok := m.Take(); !ok {
		t.Fatal("Take() empty after Ready fired")
	}
}

func TestMailboxStaleReady(t *testing.T) {
	m := NewMailbox()
	m.Publish(New(1, 8))
	m.Publish(New(1, 8))

	// One notification may be pending for an already-consumed slot; Take
	// must report empty instead of handing out a frame twice.
	if _, ok := m.Take(); !ok {
		t.Fatal("Take() empty after publish")
	}
	<-m.Ready()
	if _, ok := m.Take(); ok {
		t.Fatal("Take() returned a frame for a stale notification")
	}
}

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/airwatch/internal/model"
)

// DefaultCapacity bounds how many classification events may be pending.
const DefaultCapacity = 10

// ErrFull is returned by TrySend when the channel stayed full past the
// send bound. The event is dropped; the next sampling cycle re-reads the
// live state, so dropped events are never retried.
var ErrFull = errors.New("event channel full")

// Channel is a bounded FIFO hand-off between the observer and the
// remediation agent. Sends and receives are both bounded by timeouts so
// neither side can block indefinitely.
type Channel struct {
	ch chan model.Event
}

// NewChannel creates a channel with the given capacity.
func NewChannel(capacity int) (*Channel, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("event channel capacity must be positive, got %d", capacity)
	}
	return &Channel{ch: make(chan model.Event, capacity)}, nil
}

// TrySend enqueues ev, waiting at most wait for capacity. Returns ErrFull
// if no slot opened within the bound.
func (c *Channel) TrySend(ev model.Event, wait time.Duration) error {
	select {
	case c.ch <- ev:
		return nil
	default:
	}
	if wait <= 0 {
		return ErrFull
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case c.ch <- ev:
		return nil
	case <-timer.C:
		return ErrFull
	}
}

// Receive dequeues the oldest pending event, waiting at most wait. The
// second return is false on timeout, which is a normal no-event tick.
func (c *Channel) Receive(wait time.Duration) (model.Event, bool) {
	select {
	case ev := <-c.ch:
		return ev, true
	default:
	}
	if wait <= 0 {
		return model.Event{}, false
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case ev := <-c.ch:
		return ev, true
	case <-timer.C:
		return model.Event{}, false
	}
}

// Pending returns the number of queued events.
func (c *Channel) Pending() int { return len(c.ch) }

// Capacity returns the fixed channel capacity.
func (c *Channel) Capacity() int { return cap(c.ch) }

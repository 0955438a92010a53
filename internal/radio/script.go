package radio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ppiankov/airwatch/internal/model"
)

// Call records one mutation performed against a ScriptRadio.
type Call struct {
	Op string // "disconnect" or "join"
	ID model.NetworkID
}

// ScriptRadio replays a scripted sequence of association states and records
// every Disconnect and Join. Used by the demo command and by the task tests;
// there is no real RF behind it.
type ScriptRadio struct {
	mu       sync.Mutex
	timeline []model.Connection
	pos      int
	calls    []Call
	joinErr  error
	joinWait time.Duration
}

// NewScript creates a scripted radio. Each Current call consumes the next
// timeline entry; the last entry repeats once the timeline is exhausted.
func NewScript(timeline ...model.Connection) *ScriptRadio {
	return &ScriptRadio{timeline: timeline}
}

// FailJoins makes every subsequent Join return err.
func (r *ScriptRadio) FailJoins(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joinErr = err
}

// SetJoinDelay makes Join block for d (or until the context expires),
// simulating the stack's internal retry loop.
func (r *ScriptRadio) SetJoinDelay(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joinWait = d
}

// Current steps through the scripted timeline.
func (r *ScriptRadio) Current() (model.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.timeline) == 0 {
		return model.Connection{Associated: false}, true
	}
	conn := r.timeline[r.pos]
	if r.pos < len(r.timeline)-1 {
		r.pos++
	}
	return conn, true
}

// Disconnect records the call and marks the current state disconnected.
func (r *ScriptRadio) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: "disconnect"})
	r.timeline = []model.Connection{{Associated: false}}
	r.pos = 0
	return nil
}

// Join records the call and, on success, pins the state to the joined
// network. Fails if the context expires before the configured join delay.
func (r *ScriptRadio) Join(ctx context.Context, id model.NetworkID, credential string) error {
	r.mu.Lock()
	wait := r.joinWait
	joinErr := r.joinErr
	r.calls = append(r.calls, Call{Op: "join", ID: id})
	r.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return fmt.Errorf("join %s: %w", id, ctx.Err())
		case <-timer.C:
		}
	}
	if joinErr != nil {
		return fmt.Errorf("join %s: %w", id, joinErr)
	}

	r.mu.Lock()
	r.timeline = []model.Connection{{ID: id, Associated: true}}
	r.pos = 0
	r.mu.Unlock()
	return nil
}

// Calls returns a copy of the recorded mutations.
func (r *ScriptRadio) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

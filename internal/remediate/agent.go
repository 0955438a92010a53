// Package remediate implements the consumer task: it drains the event
// channel, drives the status indicator, and executes the
// disconnect-and-rejoin sequence on unauthorized association.
package remediate

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ppiankov/airwatch/internal/actuator"
	"github.com/ppiankov/airwatch/internal/alert"
	"github.com/ppiankov/airwatch/internal/events"
	"github.com/ppiankov/airwatch/internal/model"
	"github.com/ppiankov/airwatch/internal/observability"
	"github.com/ppiankov/airwatch/internal/radio"
	"github.com/ppiankov/airwatch/internal/telemetry"
)

const receiveWaitDefault = time.Second

// State is the agent's position in its remediation state machine.
type State int32

const (
	// StateIdle is the initial state, also reached after a disconnect event.
	StateIdle State = iota
	// StateSafe means the last processed event was an authorized association.
	StateSafe
	// StateAlerting means an unauthorized association was seen and the
	// remediation attempt has completed (or failed).
	StateAlerting
	// StateReconnecting means the disconnect-and-rejoin sequence is running.
	StateReconnecting
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSafe:
		return "safe"
	case StateAlerting:
		return "alerting"
	case StateReconnecting:
		return "reconnecting"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Config holds agent tuning and the remediation target.
type Config struct {
	ReceiveWait time.Duration   // bound on the channel receive
	JoinTimeout time.Duration   // bound on the whole rejoin attempt
	Default     model.NetworkID // network to rejoin on remediation
	Credential  string
}

// Agent is the consumer task. Remediation is synchronous: no further events
// are processed until the rejoin attempt settles, so flapping networks
// cannot trigger overlapping reconnection sequences.
type Agent struct {
	cfg     Config
	ch      *events.Channel
	radio   radio.Radio
	act     actuator.Actuator
	sink    telemetry.Sink
	alerts  *alert.Dispatcher
	metrics *observability.Collector

	state atomic.Int32
}

// New creates an agent. alerts and metrics may be nil.
func New(cfg Config, ch *events.Channel, r radio.Radio, act actuator.Actuator, sink telemetry.Sink, alerts *alert.Dispatcher, metrics *observability.Collector) *Agent {
	if cfg.ReceiveWait <= 0 {
		cfg.ReceiveWait = receiveWaitDefault
	}
	if cfg.JoinTimeout <= 0 {
		cfg.JoinTimeout = radio.JoinTimeout
	}
	return &Agent{
		cfg:     cfg,
		ch:      ch,
		radio:   r,
		act:     act,
		sink:    sink,
		alerts:  alerts,
		metrics: metrics,
	}
}

// State returns the agent's current state.
func (a *Agent) State() State {
	return State(a.state.Load())
}

// Run drains events until ctx is cancelled. A receive timeout is a normal
// no-event tick, not an error; the bounded wait only keeps the loop
// responsive to cancellation.
func (a *Agent) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		ev, ok := a.ch.Receive(a.cfg.ReceiveWait)
		if !ok {
			continue
		}
		a.Handle(ctx, ev)
	}
}

// Handle processes a single classification event.
func (a *Agent) Handle(ctx context.Context, ev model.Event) {
	switch ev.Kind {
	case model.EventAuthorized:
		a.setIndicator(false)
		a.state.Store(int32(StateSafe))

	case model.EventDisconnected:
		a.setIndicator(false)
		a.sink.Emit("agent: no association")
		a.state.Store(int32(StateIdle))

	case model.EventUnauthorized:
		// Indicator goes ON before any remediation I/O starts.
		a.setIndicator(true)
		a.sink.Emit(fmt.Sprintf("agent: unauthorized association with %q, remediating", ev.ID))
		a.dispatch(alert.EventUnauthorized, ev.ID.String(), "network not on allow-list")
		a.state.Store(int32(StateReconnecting))
		a.remediate(ctx, ev)
		a.state.Store(int32(StateAlerting))
	}
}

// remediate runs the disconnect-then-rejoin sequence. The join is bounded
// by JoinTimeout, which covers the stack's own retry loop. A failed join is
// surfaced and not retried here: the next unauthorized event re-triggers
// remediation.
func (a *Agent) remediate(ctx context.Context, ev model.Event) {
	if a.metrics != nil {
		a.metrics.Remediations.Inc()
	}

	if err := a.radio.Disconnect(); err != nil {
		a.sink.Emit(fmt.Sprintf("agent: disconnect failed: %v", err))
	}

	joinCtx, cancel := context.WithTimeout(ctx, a.cfg.JoinTimeout)
	defer cancel()

	if err := a.radio.Join(joinCtx, a.cfg.Default, a.cfg.Credential); err != nil {
		a.sink.Emit(fmt.Sprintf("agent: rejoin %q failed: %v", a.cfg.Default, err))
		a.dispatch(alert.EventJoinFailed, a.cfg.Default.String(), err.Error())
		if a.metrics != nil {
			a.metrics.JoinFailures.Inc()
		}
		return
	}

	a.sink.Emit(fmt.Sprintf("agent: rejoined %q", a.cfg.Default))
	a.dispatch(alert.EventRemediated, a.cfg.Default.String(), "rejoined default network")
}

func (a *Agent) setIndicator(on bool) {
	if err := a.act.Set(on); err != nil {
		a.sink.Emit(fmt.Sprintf("agent: indicator: %v", err))
	}
}

func (a *Agent) dispatch(eventType, network, detail string) {
	if a.alerts == nil {
		return
	}
	a.alerts.Dispatch(alert.Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Type:      eventType,
		Network:   network,
		Detail:    detail,
	})
}

package remediate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/airwatch/internal/actuator"
	"github.com/ppiankov/airwatch/internal/events"
	"github.com/ppiankov/airwatch/internal/model"
	"github.com/ppiankov/airwatch/internal/radio"
	"github.com/ppiankov/airwatch/internal/telemetry"
)

func newAgent(t *testing.T, r radio.Radio) (*Agent, *events.Channel, *actuator.Recorder, *telemetry.Capture) {
	t.Helper()
	ch, err := events.NewChannel(5)
	if err != nil {
		t.Fatal(err)
	}
	rec := &actuator.Recorder{}
	sink := &telemetry.Capture{}
	cfg := Config{
		ReceiveWait: 10 * time.Millisecond,
		JoinTimeout: time.Second,
		Default:     "Home",
		Credential:  "secret",
	}
	return New(cfg, ch, r, rec, sink, nil, nil), ch, rec, sink
}

func TestAuthorizedTurnsIndicatorOff(t *testing.T) {
	r := radio.NewScript(model.Connection{ID: "Work", Associated: true})
	a, _, rec, _ := newAgent(t, r)

	a.Handle(context.Background(), model.Authorized("Work", time.Now()))

	if rec.Last() {
		t.Error("indicator must be off after an authorized event")
	}
	if a.State() != StateSafe {
		t.Errorf("expected safe state, got %s", a.State())
	}
	if len(r.Calls()) != 0 {
		t.Errorf("authorized event must not touch the radio: %v", r.Calls())
	}
}

func TestDisconnectedTurnsIndicatorOff(t *testing.T) {
	r := radio.NewScript(model.Connection{Associated: false})
	a, _, rec, _ := newAgent(t, r)

	a.Handle(context.Background(), model.Disconnected(time.Now()))

	if rec.Last() {
		t.Error("indicator must be off after a disconnected event")
	}
	if a.State() != StateIdle {
		t.Errorf("expected idle state, got %s", a.State())
	}
}

func TestUnauthorizedRemediates(t *testing.T) {
	r := radio.NewScript(model.Connection{ID: "Evil", Associated: true})
	a, _, rec, _ := newAgent(t, r)

	a.Handle(context.Background(), model.Unauthorized("Evil", time.Now()))

	history := rec.History()
	if len(history) == 0 || !history[0] {
		t.Error("indicator must go on before remediation")
	}

	calls := r.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected disconnect then join, got %v", calls)
	}
	if calls[0].Op != "disconnect" {
		t.Errorf("disconnect must precede join, got %v", calls)
	}
	if calls[1].Op != "join" || calls[1].ID != "Home" {
		t.Errorf("expected join to default network, got %v", calls)
	}
	if a.State() != StateAlerting {
		t.Errorf("expected alerting state after remediation, got %s", a.State())
	}
}

func TestIndicatorOnBeforeRemediationIO(t *testing.T) {
	r := radio.NewScript(model.Connection{ID: "Evil", Associated: true})
	ch, err := events.NewChannel(5)
	if err != nil {
		t.Fatal(err)
	}
	sink := &telemetry.Capture{}

	// Actuator that asserts no radio calls happened yet when it turns on.
	var sawRadioCallsAtOn bool
	probe := probeActuator{onSet: func(on bool) {
		if on && len(r.Calls()) > 0 {
			sawRadioCallsAtOn = true
		}
	}}
	cfg := Config{ReceiveWait: 10 * time.Millisecond, JoinTimeout: time.Second, Default: "Home"}
	a := New(cfg, ch, r, probe, sink, nil, nil)

	a.Handle(context.Background(), model.Unauthorized("Evil", time.Now()))

	if sawRadioCallsAtOn {
		t.Error("indicator must turn on before disconnect/join start")
	}
}

type probeActuator struct {
	onSet func(on bool)
}

func (p probeActuator) Set(on bool) error {
	p.onSet(on)
	return nil
}

func TestJoinFailureSurfacedNotRetried(t *testing.T) {
	r := radio.NewScript(model.Connection{ID: "Evil", Associated: true})
	r.FailJoins(errors.New("association rejected"))
	a, _, _, sink := newAgent(t, r)

	a.Handle(context.Background(), model.Unauthorized("Evil", time.Now()))

	calls := r.Calls()
	joins := 0
	for _, c := range calls {
		if c.Op == "join" {
			joins++
		}
	}
	if joins != 1 {
		t.Errorf("agent must not retry a failed join, got %d attempts", joins)
	}

	found := false
	for _, line := range sink.Lines() {
		if strings.Contains(line, "rejoin") && strings.Contains(line, "failed") {
			found = true
		}
	}
	if !found {
		t.Error("expected join failure diagnostic on the sink")
	}
	if a.State() != StateAlerting {
		t.Errorf("expected alerting state after failed remediation, got %s", a.State())
	}
}

func TestRunDrainsQueuedEvents(t *testing.T) {
	r := radio.NewScript(model.Connection{ID: "Evil", Associated: true})
	a, ch, rec, _ := newAgent(t, r)

	now := time.Now()
	ch.TrySend(model.Unauthorized("Evil", now), 0)
	ch.TrySend(model.Authorized("Home", now), 0)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Last processed event was authorized: indicator off, state safe.
	if rec.Last() {
		t.Error("indicator must be off after draining to an authorized event")
	}
	if a.State() != StateSafe {
		t.Errorf("expected safe state, got %s", a.State())
	}
}

func TestRunReceiveTimeoutIsNotAnError(t *testing.T) {
	r := radio.NewScript(model.Connection{Associated: false})
	a, _, _, _ := newAgent(t, r)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Errorf("empty channel ticks must not error: %v", err)
	}
	if a.State() != StateIdle {
		t.Errorf("no events processed, expected initial idle state, got %s", a.State())
	}
}

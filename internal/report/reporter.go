// Package report implements the heartbeat task. It reads the radio
// directly, never touching the event channel, and emits a periodic
// human-readable status line. Purely observational.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/airwatch/internal/observability"
	"github.com/ppiankov/airwatch/internal/radio"
	"github.com/ppiankov/airwatch/internal/telemetry"
)

const periodDefault = 5 * time.Second

// Reporter emits the periodic heartbeat. Stateless; its only failure mode
// is an unavailable sink, which is ignored.
type Reporter struct {
	period  time.Duration
	radio   radio.Radio
	sink    telemetry.Sink
	metrics *observability.Collector
}

// New creates a reporter. metrics may be nil.
func New(period time.Duration, r radio.Radio, sink telemetry.Sink, metrics *observability.Collector) *Reporter {
	if period <= 0 {
		period = periodDefault
	}
	return &Reporter{period: period, radio: r, sink: sink, metrics: metrics}
}

// Run emits heartbeats until ctx is cancelled.
func (r *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	r.beat()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.beat()
		}
	}
}

// beat emits one status line.
func (r *Reporter) beat() {
	conn, ok := r.radio.Current()
	switch {
	case !ok:
		r.sink.Emit("status: radio unavailable")
	case conn.Associated:
		r.sink.Emit(fmt.Sprintf("status: associated with %q", conn.ID))
	default:
		r.sink.Emit("status: disconnected")
	}

	if r.metrics != nil {
		r.metrics.Heartbeats.Inc()
	}
}

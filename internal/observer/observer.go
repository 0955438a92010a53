// Package observer implements the producer task: it samples the radio on a
// fixed period, classifies the association against the allow-list, and
// publishes one event per sample into the bounded channel.
package observer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ppiankov/airwatch/internal/allowlist"
	"github.com/ppiankov/airwatch/internal/events"
	"github.com/ppiankov/airwatch/internal/model"
	"github.com/ppiankov/airwatch/internal/observability"
	"github.com/ppiankov/airwatch/internal/radio"
	"github.com/ppiankov/airwatch/internal/telemetry"
)

const (
	periodDefault   = 2 * time.Second
	sendWaitDefault = 100 * time.Millisecond
)

// Config holds observer tuning.
type Config struct {
	Period   time.Duration // sampling period
	SendWait time.Duration // bound on the channel send
}

// Observer is the producer task. It never blocks on the consumer: a full
// channel past the send bound drops the event, and the next period
// resamples the live state.
type Observer struct {
	cfg     Config
	radio   radio.Radio
	list    *allowlist.AllowList
	ch      *events.Channel
	sink    telemetry.Sink
	metrics *observability.Collector

	dropped atomic.Uint64
}

// New creates an observer. metrics may be nil.
func New(cfg Config, r radio.Radio, list *allowlist.AllowList, ch *events.Channel, sink telemetry.Sink, metrics *observability.Collector) *Observer {
	if cfg.Period <= 0 {
		cfg.Period = periodDefault
	}
	if cfg.SendWait <= 0 {
		cfg.SendWait = sendWaitDefault
	}
	return &Observer{
		cfg:     cfg,
		radio:   r,
		list:    list,
		ch:      ch,
		sink:    sink,
		metrics: metrics,
	}
}

// Run samples until ctx is cancelled. The first sample happens immediately;
// the ticker sleep is the task's only suspension point besides the bounded
// channel send.
func (o *Observer) Run(ctx context.Context) error {
	ticker := time.NewTicker(o.cfg.Period)
	defer ticker.Stop()

	o.cycle()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			o.cycle()
		}
	}
}

// cycle performs one sample-classify-publish pass.
func (o *Observer) cycle() {
	now := time.Now()

	conn, ok := o.radio.Current()
	if !ok {
		// Unreadable radio state counts as no association.
		conn = model.Connection{Associated: false}
	}

	ev := o.list.Classify(conn, now)
	if o.metrics != nil {
		o.metrics.Samples.WithLabelValues(ev.Kind.String()).Inc()
	}

	if err := o.ch.TrySend(ev, o.cfg.SendWait); err != nil {
		if errors.Is(err, events.ErrFull) {
			n := o.dropped.Add(1)
			o.sink.Emit(fmt.Sprintf("observer: channel full, dropped %s event for %q (%d total)", ev.Kind, ev.ID, n))
			if o.metrics != nil {
				o.metrics.EventsDropped.Inc()
			}
		}
	}

	if o.metrics != nil {
		o.metrics.ChannelPending.Set(float64(o.ch.Pending()))
	}
}

// Dropped returns how many events have been dropped under backpressure.
func (o *Observer) Dropped() uint64 {
	return o.dropped.Load()
}

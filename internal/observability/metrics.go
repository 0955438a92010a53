// Package observability registers and serves Prometheus metrics for the
// watchdog tasks.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the watchdog's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Samples        *prometheus.CounterVec
	EventsDropped  prometheus.Counter
	Remediations   prometheus.Counter
	JoinFailures   prometheus.Counter
	Heartbeats     prometheus.Counter
	ChannelPending prometheus.Gauge
}

// NewCollector registers the watchdog metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	samples := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airwatch_samples_total",
		Help: "Connection samples classified by the observer, labeled by outcome.",
	}, []string{"outcome"})
	if err := reg.Register(samples); err != nil {
		return nil, err
	}

	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "airwatch_events_dropped_total",
		Help: "Classification events dropped because the channel stayed full past the send bound.",
	})
	if err := reg.Register(dropped); err != nil {
		return nil, err
	}

	remediations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "airwatch_remediations_total",
		Help: "Disconnect-and-rejoin sequences executed on unauthorized association.",
	})
	if err := reg.Register(remediations); err != nil {
		return nil, err
	}

	joinFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "airwatch_join_failures_total",
		Help: "Remediation rejoin attempts that failed.",
	})
	if err := reg.Register(joinFailures); err != nil {
		return nil, err
	}

	heartbeats := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "airwatch_heartbeats_total",
		Help: "Status lines emitted by the reporter.",
	})
	if err := reg.Register(heartbeats); err != nil {
		return nil, err
	}

	pending := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "airwatch_channel_pending",
		Help: "Classification events currently queued between observer and agent.",
	})
	if err := reg.Register(pending); err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		Samples:        samples,
		EventsDropped:  dropped,
		Remediations:   remediations,
		JoinFailures:   joinFailures,
		Heartbeats:     heartbeats,
		ChannelPending: pending,
	}, nil
}

// Handler returns an HTTP handler serving the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr. Blocks; intended to run in its own
// goroutine alongside the watchdog tasks.
func (c *Collector) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

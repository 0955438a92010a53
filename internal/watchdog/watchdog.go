// Package watchdog wires the observer, remediation agent, and status
// reporter together and runs them for the lifetime of the process.
package watchdog

import (
	"context"
	"fmt"
	"sync"

	"github.com/ppiankov/airwatch/internal/actuator"
	"github.com/ppiankov/airwatch/internal/alert"
	"github.com/ppiankov/airwatch/internal/allowlist"
	"github.com/ppiankov/airwatch/internal/config"
	"github.com/ppiankov/airwatch/internal/events"
	"github.com/ppiankov/airwatch/internal/model"
	"github.com/ppiankov/airwatch/internal/observability"
	"github.com/ppiankov/airwatch/internal/observer"
	"github.com/ppiankov/airwatch/internal/radio"
	"github.com/ppiankov/airwatch/internal/remediate"
	"github.com/ppiankov/airwatch/internal/report"
	"github.com/ppiankov/airwatch/internal/telemetry"
)

// Watchdog owns the three tasks and their shared substrate. Construction
// failures are fatal: running with a broken channel or allow-list would
// risk undetected unauthorized associations.
type Watchdog struct {
	cfg  *config.Config
	list *allowlist.AllowList
	ch   *events.Channel

	radio   radio.Radio
	act     actuator.Actuator
	sink    telemetry.Sink
	metrics *observability.Collector

	observer *observer.Observer
	agent    *remediate.Agent
	reporter *report.Reporter
}

// New builds the full task graph. metrics may be nil.
func New(cfg *config.Config, r radio.Radio, act actuator.Actuator, sink telemetry.Sink, metrics *observability.Collector) (*Watchdog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	list, err := allowlist.Load(cfg.AllowlistPath)
	if err != nil {
		return nil, fmt.Errorf("load allow-list: %w", err)
	}

	ch, err := events.NewChannel(cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("event channel: %w", err)
	}

	defaultID, err := model.NewNetworkID(cfg.Default.Name)
	if err != nil {
		return nil, fmt.Errorf("default network: %w", err)
	}

	obs := observer.New(observer.Config{
		Period:   cfg.ObservePeriod,
		SendWait: cfg.SendWait,
	}, r, list, ch, sink, metrics)

	agent := remediate.New(remediate.Config{
		ReceiveWait: cfg.ReceiveWait,
		JoinTimeout: cfg.JoinTimeout,
		Default:     defaultID,
		Credential:  cfg.Default.Credential,
	}, ch, r, act, sink, alert.NewDispatcher(cfg.Alerts), metrics)

	rep := report.New(cfg.ReportPeriod, r, sink, metrics)

	return &Watchdog{
		cfg:      cfg,
		list:     list,
		ch:       ch,
		radio:    r,
		act:      act,
		sink:     sink,
		metrics:  metrics,
		observer: obs,
		agent:    agent,
		reporter: rep,
	}, nil
}

// AllowList exposes the shared allow-list (for the reloader and tests).
func (w *Watchdog) AllowList() *allowlist.AllowList {
	return w.list
}

// Run starts the three task loops plus the allow-list reloader and blocks
// until ctx is cancelled. Task ordering mirrors the sampling cadence:
// observer shortest period, agent's bounded receive tick, reporter longest.
func (w *Watchdog) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	run := func(name string, f func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(ctx); err != nil {
				w.sink.Emit(fmt.Sprintf("%s: %v", name, err))
			}
		}()
	}

	run("observer", w.observer.Run)
	run("agent", w.agent.Run)
	run("reporter", w.reporter.Run)

	if w.cfg.AllowlistPath != "" {
		if reloader, err := NewReloader(w.list, w.cfg.AllowlistPath, w.sink); err == nil {
			run("reloader", reloader.Run)
		} else {
			w.sink.Emit(fmt.Sprintf("reloader unavailable: %v", err))
		}
	}

	if w.cfg.MetricsAddr != "" && w.metrics != nil {
		go func() {
			if err := w.metrics.Serve(w.cfg.MetricsAddr); err != nil {
				w.sink.Emit(fmt.Sprintf("metrics: %v", err))
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/airwatch/internal/actuator"
	"github.com/ppiankov/airwatch/internal/config"
	"github.com/ppiankov/airwatch/internal/observability"
	"github.com/ppiankov/airwatch/internal/radio"
	"github.com/ppiankov/airwatch/internal/telemetry"
	"github.com/ppiankov/airwatch/internal/watchdog"
)

var (
	watchConfig  string
	watchLED     string
	watchMetrics string
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchConfig, "config", "", "Path to config YAML (default ~/.airwatch/config.yaml)")
	watchCmd.Flags().StringVar(&watchLED, "led", "", "sysfs LED brightness path (overrides config)")
	watchCmd.Flags().StringVar(&watchMetrics, "metrics", "", "Prometheus listen address (overrides config)")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the watchdog daemon",
	Long: "Starts the observer, remediation agent, and status reporter and runs\n" +
		"them until interrupted. Requires nmcli on the host.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(watchConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if watchLED != "" {
		cfg.LEDPath = watchLED
	}
	if watchMetrics != "" {
		cfg.MetricsAddr = watchMetrics
	}

	sink := telemetry.NewConsole(nil)

	var act actuator.Actuator
	if cfg.LEDPath != "" {
		led, err := actuator.NewLED(cfg.LEDPath)
		if err != nil {
			return fmt.Errorf("actuator: %w", err)
		}
		act = led
	} else {
		act = actuator.NewLog(sink)
	}

	var metrics *observability.Collector
	if cfg.MetricsAddr != "" {
		metrics, err = observability.NewCollector(nil)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	w, err := watchdog.New(cfg, radio.NewNMCLI(), act, sink, metrics)
	if err != nil {
		return fmt.Errorf("start watchdog: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "airwatch: shutting down")
		cancel()
	}()

	return w.Run(ctx)
}

package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/airwatch/internal/actuator"
	"github.com/ppiankov/airwatch/internal/allowlist"
	"github.com/ppiankov/airwatch/internal/events"
	"github.com/ppiankov/airwatch/internal/model"
	"github.com/ppiankov/airwatch/internal/observer"
	"github.com/ppiankov/airwatch/internal/radio"
	"github.com/ppiankov/airwatch/internal/remediate"
	"github.com/ppiankov/airwatch/internal/report"
	"github.com/ppiankov/airwatch/internal/telemetry"
)

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted rogue-network scenario against a simulated radio",
	Long: "Walks a simulated radio through an authorized network, a rogue\n" +
		"network, and a dropout, printing every classification and the\n" +
		"remediation sequence. No real radio is touched.",
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	sink := telemetry.NewConsole(cmd.OutOrStdout())

	r := radio.NewScript(
		model.Connection{ID: "Work", Associated: true},
		model.Connection{ID: "Evil", Associated: true},
		model.Connection{Associated: false},
	)
	list := allowlist.New([]model.NetworkID{"Work", "Home"})

	ch, err := events.NewChannel(events.DefaultCapacity)
	if err != nil {
		return err
	}

	obs := observer.New(observer.Config{
		Period:   200 * time.Millisecond,
		SendWait: 50 * time.Millisecond,
	}, r, list, ch, sink, nil)

	agent := remediate.New(remediate.Config{
		ReceiveWait: 100 * time.Millisecond,
		JoinTimeout: time.Second,
		Default:     "Home",
	}, ch, r, actuator.NewLog(sink), sink, nil, nil)

	rep := report.New(500*time.Millisecond, r, sink, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go obs.Run(ctx)
	go rep.Run(ctx)
	return agent.Run(ctx)
}

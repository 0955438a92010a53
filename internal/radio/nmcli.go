package radio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ppiankov/airwatch/internal/model"
)

// NMCLI drives NetworkManager through the nmcli binary. Linux-only at
// runtime; every invocation is a fresh short-lived process.
type NMCLI struct {
	// Bin overrides the nmcli binary path (for tests).
	Bin string
}

// NewNMCLI creates an nmcli-backed radio.
func NewNMCLI() *NMCLI {
	return &NMCLI{Bin: "nmcli"}
}

// Current reads the active Wi-Fi association via
// `nmcli -t -f ACTIVE,SSID dev wifi`.
func (r *NMCLI) Current() (model.Connection, bool) {
	out, err := exec.Command(r.Bin, "-t", "-f", "ACTIVE,SSID", "dev", "wifi").Output()
	if err != nil {
		return model.Connection{}, false
	}

	for _, line := range strings.Split(string(out), "\n") {
		active, ssid, found := strings.Cut(line, ":")
		if !found || active != "yes" {
			continue
		}
		id, err := model.NewNetworkID(ssid)
		if err != nil {
			continue
		}
		return model.Connection{ID: id, Associated: true}, true
	}
	return model.Connection{Associated: false}, true
}

// Disconnect drops the Wi-Fi device association.
func (r *NMCLI) Disconnect() error {
	if err := exec.Command(r.Bin, "dev", "disconnect", "wlan0").Run(); err != nil {
		return fmt.Errorf("nmcli disconnect: %w", err)
	}
	return nil
}

// Join connects to the named network, bounded by ctx.
func (r *NMCLI) Join(ctx context.Context, id model.NetworkID, credential string) error {
	args := []string{"dev", "wifi", "connect", id.String()}
	if credential != "" {
		args = append(args, "password", credential)
	}
	if err := exec.CommandContext(ctx, r.Bin, args...).Run(); err != nil {
		return fmt.Errorf("nmcli connect %s: %w", id, err)
	}
	return nil
}

package actuator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/airwatch/internal/telemetry"
)

func TestLEDWritesBrightness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brightness")
	if err := os.WriteFile(path, []byte("0"), 0644); err != nil {
		t.Fatal(err)
	}

	led, err := NewLED(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := led.Set(true); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "1" {
		t.Errorf("expected brightness 1, got %q", data)
	}

	if err := led.Set(false); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "0" {
		t.Errorf("expected brightness 0, got %q", data)
	}
}

func TestNewLEDMissingPath(t *testing.T) {
	if _, err := NewLED(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing LED path")
	}
}

func TestLogActuatorEmits(t *testing.T) {
	sink := &telemetry.Capture{}
	a := NewLog(sink)

	a.Set(true)
	a.Set(false)

	lines := sink.Lines()
	if len(lines) != 2 || lines[0] != "indicator: on" || lines[1] != "indicator: off" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

// Package actuator abstracts the binary status indicator. The indicator is
// ON while the device is associated with an unauthorized network and OFF
// otherwise.
package actuator

import (
	"fmt"
	"os"
	"sync"

	"github.com/ppiankov/airwatch/internal/telemetry"
)

// Actuator drives the binary status indicator. Set is assumed cheap and
// side-effect-free beyond the physical signal.
type Actuator interface {
	Set(on bool) error
}

// LED drives a sysfs LED by writing 0 or 1 to its brightness file,
// e.g. /sys/class/leds/user-led/brightness.
type LED struct {
	path string
}

// NewLED creates a sysfs LED actuator and probes the path once so a
// misconfigured LED fails at startup rather than mid-remediation.
func NewLED(path string) (*LED, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("led %s: %w", path, err)
	}
	return &LED{path: path}, nil
}

// Set writes the LED state.
func (l *LED) Set(on bool) error {
	val := []byte("0")
	if on {
		val = []byte("1")
	}
	if err := os.WriteFile(l.path, val, 0644); err != nil {
		return fmt.Errorf("led %s: %w", l.path, err)
	}
	return nil
}

// Log signals state through the telemetry sink, for hosts without an LED.
type Log struct {
	sink telemetry.Sink
}

// NewLog creates a telemetry-backed actuator.
func NewLog(sink telemetry.Sink) *Log {
	return &Log{sink: sink}
}

// Set emits the state change.
func (l *Log) Set(on bool) error {
	state := "off"
	if on {
		state = "on"
	}
	l.sink.Emit("indicator: " + state)
	return nil
}

// Recorder is a test actuator that records every state transition.
type Recorder struct {
	mu     sync.Mutex
	states []bool
}

// Set records the transition.
func (r *Recorder) Set(on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, on)
	return nil
}

// Last returns the most recent state, or false if never set.
func (r *Recorder) Last() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return false
	}
	return r.states[len(r.states)-1]
}

// History returns a copy of all recorded transitions.
func (r *Recorder) History() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.states...)
}

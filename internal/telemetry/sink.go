// Package telemetry provides the fire-and-forget diagnostic sink used by
// all tasks. Delivery is best-effort; correctness never depends on it.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink receives diagnostic lines. Emit must not block the caller.
type Sink interface {
	Emit(line string)
}

// Console writes lines to a writer, stderr by default.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console sink. A nil writer defaults to stderr.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{w: w}
}

// Emit writes one line. Write errors are ignored; the sink is best-effort.
func (c *Console) Emit(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

// Capture is a test sink that records emitted lines.
type Capture struct {
	mu    sync.Mutex
	lines []string
}

// Emit records the line.
func (c *Capture) Emit(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

// Lines returns a copy of everything emitted so far.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Discard is a sink that drops everything.
type Discard struct{}

// Emit drops the line.
func (Discard) Emit(string) {}

// Package radio narrows the wireless stack to the three calls the watchdog
// needs: read the current association, drop it, and join a named network.
// Association logic itself lives in the underlying stack; this package only
// invokes it and interprets the outcome.
package radio

import (
	"context"
	"time"

	"github.com/ppiankov/airwatch/internal/model"
)

// JoinTimeout bounds a remediation join attempt, covering the stack's own
// internal retry loop.
const JoinTimeout = 10 * time.Second

// Radio is the narrow interface to the wireless stack.
type Radio interface {
	// Current returns the association snapshot. ok is false when the
	// state could not be read at all; callers treat that as disconnected.
	Current() (conn model.Connection, ok bool)

	// Disconnect drops the current association. Idempotent.
	Disconnect() error

	// Join associates with the named network. The context bounds the
	// whole attempt including the stack's retries.
	Join(ctx context.Context, id model.NetworkID, credential string) error
}

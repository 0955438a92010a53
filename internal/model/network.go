package model

import (
	"fmt"
	"time"
)

// MaxNetworkIDLen is the maximum identifier length in bytes, matching the
// 32-byte SSID limit of 802.11.
const MaxNetworkIDLen = 32

// NoNetwork is the sentinel identifier used when the device has no
// association, for display purposes only.
const NoNetwork NetworkID = "<none>"

// NetworkID is an opaque network identifier. Comparison is exact and
// case-sensitive. Construct via NewNetworkID to enforce the length bound.
type NetworkID string

// NewNetworkID validates and returns a NetworkID. Identifiers longer than
// MaxNetworkIDLen bytes are rejected; the empty identifier is allowed here
// and resolves to unauthorized at classification time.
func NewNetworkID(s string) (NetworkID, error) {
	if len(s) > MaxNetworkIDLen {
		return "", fmt.Errorf("network identifier exceeds %d bytes: %q", MaxNetworkIDLen, s)
	}
	return NetworkID(s), nil
}

// String returns the raw identifier.
func (id NetworkID) String() string { return string(id) }

// Connection is a point-in-time snapshot of the radio's association state.
type Connection struct {
	ID         NetworkID
	Associated bool
}

// EventKind discriminates the three classification outcomes.
type EventKind int

const (
	// EventAuthorized means the device is associated with an allow-listed network.
	EventAuthorized EventKind = iota
	// EventUnauthorized means the device is associated with a network not on the allow-list.
	EventUnauthorized
	// EventDisconnected means the device has no active association.
	EventDisconnected
)

// String returns a human-readable kind name.
func (k EventKind) String() string {
	switch k {
	case EventAuthorized:
		return "authorized"
	case EventUnauthorized:
		return "unauthorized"
	case EventDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is one classification result produced by the observer. Events are
// value types: once enqueued they are immutable and owned by the channel
// until the consumer dequeues them.
type Event struct {
	Kind       EventKind
	ID         NetworkID
	ObservedAt time.Time
}

// Authorized builds an authorized-association event.
func Authorized(id NetworkID, at time.Time) Event {
	return Event{Kind: EventAuthorized, ID: id, ObservedAt: at}
}

// Unauthorized builds an unauthorized-association event.
func Unauthorized(id NetworkID, at time.Time) Event {
	return Event{Kind: EventUnauthorized, ID: id, ObservedAt: at}
}

// Disconnected builds a no-association event carrying the NoNetwork sentinel.
func Disconnected(at time.Time) Event {
	return Event{Kind: EventDisconnected, ID: NoNetwork, ObservedAt: at}
}

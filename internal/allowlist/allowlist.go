package allowlist

import (
	"time"

	"github.com/ppiankov/airwatch/internal/model"
)

// lockWaitDefault bounds how long a classification waits for the guard.
// Contention past the bound resolves to unauthorized rather than blocking.
const lockWaitDefault = 100 * time.Millisecond

// AllowList is the set of authorized network identifiers behind a guard
// with bounded acquisition. Membership is fixed at startup in normal
// operation; Replace exists for config hot-reload and takes the same guard.
type AllowList struct {
	guard    chan struct{} // capacity 1; holding the token holds the lock
	lockWait time.Duration
	ids      []model.NetworkID
}

// New creates an AllowList from the given identifiers.
func New(ids []model.NetworkID) *AllowList {
	l := &AllowList{
		guard:    make(chan struct{}, 1),
		lockWait: lockWaitDefault,
		ids:      append([]model.NetworkID(nil), ids...),
	}
	l.guard <- struct{}{}
	return l
}

// SetLockWait overrides the guard acquisition bound (for tests).
func (l *AllowList) SetLockWait(d time.Duration) {
	l.lockWait = d
}

// acquire takes the guard token, waiting at most lockWait.
func (l *AllowList) acquire() bool {
	timer := time.NewTimer(l.lockWait)
	defer timer.Stop()
	select {
	case <-l.guard:
		return true
	case <-timer.C:
		return false
	}
}

func (l *AllowList) release() {
	l.guard <- struct{}{}
}

// IsAuthorized reports whether id is on the allow-list. Fails closed: an
// empty identifier, or failure to acquire the guard within the bound,
// returns false. The guard is never held across this function's return.
func (l *AllowList) IsAuthorized(id model.NetworkID) bool {
	if id == "" {
		return false
	}
	if !l.acquire() {
		return false
	}
	defer l.release()

	for _, known := range l.ids {
		if known == id {
			return true
		}
	}
	return false
}

// Classify maps a connection snapshot onto one of the three event kinds.
func (l *AllowList) Classify(conn model.Connection, at time.Time) model.Event {
	if !conn.Associated {
		return model.Disconnected(at)
	}
	if l.IsAuthorized(conn.ID) {
		return model.Authorized(conn.ID, at)
	}
	return model.Unauthorized(conn.ID, at)
}

// Replace swaps the list membership under the guard. Used by hot-reload;
// blocks up to the same bound and reports whether the swap happened.
func (l *AllowList) Replace(ids []model.NetworkID) bool {
	if !l.acquire() {
		return false
	}
	defer l.release()
	l.ids = append([]model.NetworkID(nil), ids...)
	return true
}

// Snapshot returns a copy of the current membership, or nil if the guard
// could not be acquired within the bound.
func (l *AllowList) Snapshot() []model.NetworkID {
	if !l.acquire() {
		return nil
	}
	defer l.release()
	return append([]model.NetworkID(nil), l.ids...)
}

// Len returns the membership size, or 0 if the guard could not be
// acquired within the bound.
func (l *AllowList) Len() int {
	if !l.acquire() {
		return 0
	}
	defer l.release()
	return len(l.ids)
}

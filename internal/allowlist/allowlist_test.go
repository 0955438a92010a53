package allowlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/airwatch/internal/model"
)

func TestIsAuthorizedMember(t *testing.T) {
	l := New([]model.NetworkID{"Work", "Lab"})

	if !l.IsAuthorized("Work") {
		t.Error("expected Work to be authorized")
	}
	if !l.IsAuthorized("Lab") {
		t.Error("expected Lab to be authorized")
	}
}

func TestIsAuthorizedNonMember(t *testing.T) {
	l := New([]model.NetworkID{"Work"})

	if l.IsAuthorized("Evil") {
		t.Error("expected Evil to be unauthorized")
	}
}

func TestIsAuthorizedEmptyFailsClosed(t *testing.T) {
	l := New([]model.NetworkID{"Work", ""})

	if l.IsAuthorized("") {
		t.Error("empty identifier must always be unauthorized")
	}
}

func TestIsAuthorizedCaseSensitive(t *testing.T) {
	l := New([]model.NetworkID{"Work"})

	if l.IsAuthorized("work") {
		t.Error("membership must be case-sensitive")
	}
}

func TestContendedGuardFailsClosed(t *testing.T) {
	l := New([]model.NetworkID{"Work"})
	l.SetLockWait(20 * time.Millisecond)

	// Steal the guard token to simulate a writer holding the lock.
	<-l.guard
	defer func() { l.guard <- struct{}{} }()

	start := time.Now()
	if l.IsAuthorized("Work") {
		t.Error("contended guard must classify as unauthorized")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("call blocked %v, expected return near the 20ms bound", elapsed)
	}
}

func TestClassify(t *testing.T) {
	l := New([]model.NetworkID{"Work"})
	now := time.Now()

	cases := []struct {
		name string
		conn model.Connection
		want model.EventKind
	}{
		{"authorized", model.Connection{ID: "Work", Associated: true}, model.EventAuthorized},
		{"unauthorized", model.Connection{ID: "Evil", Associated: true}, model.EventUnauthorized},
		{"disconnected", model.Connection{Associated: false}, model.EventDisconnected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := l.Classify(tc.conn, now)
			if ev.Kind != tc.want {
				t.Errorf("got %s, want %s", ev.Kind, tc.want)
			}
		})
	}
}

func TestClassifyDisconnectedUsesSentinel(t *testing.T) {
	l := New(nil)

	ev := l.Classify(model.Connection{Associated: false}, time.Now())
	if ev.ID != model.NoNetwork {
		t.Errorf("expected sentinel identifier, got %q", ev.ID)
	}
}

func TestReplaceChangesMembership(t *testing.T) {
	l := New([]model.NetworkID{"Work"})

	if !l.Replace([]model.NetworkID{"Home"}) {
		t.Fatal("replace failed under uncontended guard")
	}
	if l.IsAuthorized("Work") {
		t.Error("Work should no longer be authorized after replace")
	}
	if !l.IsAuthorized("Home") {
		t.Error("Home should be authorized after replace")
	}
}

func TestLoadMissingFileYieldsEmptyList(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.IsAuthorized("Work") {
		t.Error("empty allow-list must authorize nothing")
	}
}

func TestLoadParsesNetworks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allowlist.yaml")
	content := "networks:\n  - Work\n  - Lab\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.IsAuthorized("Work") || !l.IsAuthorized("Lab") {
		t.Error("expected loaded networks to be authorized")
	}
	if l.IsAuthorized("Evil") {
		t.Error("unexpected membership")
	}
}

func TestLoadRejectsOverlongIdentifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allowlist.yaml")
	content := "networks:\n  - " + strings.Repeat("a", 40) + "\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for identifier over the length bound")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allowlist.yaml")
	if err := os.WriteFile(path, []byte("networks: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

package events

import (
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/airwatch/internal/model"
)

func TestNewChannelRejectsBadCapacity(t *testing.T) {
	if _, err := NewChannel(0); err == nil {
		t.Error("expected error for zero capacity")
	}
	if _, err := NewChannel(-1); err == nil {
		t.Error("expected error for negative capacity")
	}
}

func TestFIFOOrder(t *testing.T) {
	c, err := NewChannel(5)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	sent := []model.Event{
		model.Authorized("Work", now),
		model.Unauthorized("Evil", now),
		model.Disconnected(now),
	}
	for _, ev := range sent {
		if err := c.TrySend(ev, 0); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}

	for i, want := range sent {
		got, ok := c.Receive(0)
		if !ok {
			t.Fatalf("event %d missing", i)
		}
		if got.Kind != want.Kind || got.ID != want.ID {
			t.Errorf("event %d: got %s/%s, want %s/%s", i, got.Kind, got.ID, want.Kind, want.ID)
		}
	}
}

func TestTrySendFullReturnsErrFull(t *testing.T) {
	c, err := NewChannel(2)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	for i := 0; i < 2; i++ {
		if err := c.TrySend(model.Disconnected(now), 0); err != nil {
			t.Fatalf("send %d failed: %v", i, err)
		}
	}

	start := time.Now()
	err = c.TrySend(model.Disconnected(now), 20*time.Millisecond)
	if !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("send blocked %v, expected return near the 20ms bound", elapsed)
	}
	if c.Pending() != 2 {
		t.Errorf("capacity exceeded: %d pending", c.Pending())
	}
}

func TestTrySendWaitsForConsumer(t *testing.T) {
	c, err := NewChannel(1)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	if err := c.TrySend(model.Disconnected(now), 0); err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		c.Receive(0)
	}()

	if err := c.TrySend(model.Authorized("Work", now), 500*time.Millisecond); err != nil {
		t.Errorf("expected send to succeed once a slot opened: %v", err)
	}
}

func TestReceiveTimeout(t *testing.T) {
	c, err := NewChannel(1)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, ok := c.Receive(20 * time.Millisecond)
	if ok {
		t.Error("expected no event")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("receive blocked %v, expected return near the 20ms bound", elapsed)
	}
}

func TestBackpressureNeverExceedsCapacity(t *testing.T) {
	c, err := NewChannel(3)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	dropped := 0
	for i := 0; i < 10; i++ {
		if err := c.TrySend(model.Unauthorized("Evil", now), 0); err != nil {
			dropped++
		}
		if c.Pending() > c.Capacity() {
			t.Fatalf("pending %d exceeds capacity %d", c.Pending(), c.Capacity())
		}
	}
	if dropped != 7 {
		t.Errorf("expected 7 drops, got %d", dropped)
	}
}

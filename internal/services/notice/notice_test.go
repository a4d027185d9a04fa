package notice

import (
	"testing"
	"time"
)

func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestNotice_autoDismiss(t *testing.T) {
	n := New(30 * time.Millisecond)
	n.Show("Appeal approved.", Success)

	if got := n.Current(); got.Text != "Appeal approved." || got.Variant != Success {
		t.Fatalf("unexpected message %+v", got)
	}
	if !waitFor(t, time.Second, func() bool { return n.Current().Empty() }) {
		t.Fatalf("message was not dismissed")
	}
}

func TestNotice_newerMessageSurvivesOldTimer(t *testing.T) {
	n := New(80 * time.Millisecond)
	n.Show("first", Danger)
	time.Sleep(50 * time.Millisecond)
	n.Show("second", Warning)
	time.Sleep(50 * time.Millisecond)

	if got := n.Current(); got.Text != "second" {
		t.Fatalf("second message cleared by the first timer: %+v", got)
	}
	if !waitFor(t, time.Second, func() bool { return n.Current().Empty() }) {
		t.Fatalf("second message was not dismissed")
	}
}

func TestNotice_closeCancels(t *testing.T) {
	n := New(time.Hour)
	n.Show("x", Danger)
	n.Close()

	if !n.Current().Empty() {
		t.Fatalf("close must clear the message")
	}
	n.Show("after close", Success)
	if !n.Current().Empty() {
		t.Fatalf("closed notice must ignore new messages")
	}
}

func TestNew_defaultTTL(t *testing.T) {
	if New(0).ttl != DefaultTTL {
		t.Fatalf("expected default ttl")
	}
}

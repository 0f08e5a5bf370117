package rate_limiter

import (
	"testing"
	"time"
)

func TestLimiter_BurstPerVisitor(t *testing.T) {
	l := New(0.001, 2)

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Error("expected third request to be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("expected a different visitor to have its own bucket")
	}
}

func TestLimiter_CleanupIdle(t *testing.T) {
	l := New(1, 1)
	l.GetVisitor("10.0.0.1")
	l.GetVisitor("10.0.0.2")

	if removed := l.CleanupIdle(time.Hour); removed != 0 {
		t.Errorf("expected no visitors removed, got %d", removed)
	}
	time.Sleep(5 * time.Millisecond)
	if removed := l.CleanupIdle(time.Millisecond); removed != 2 {
		t.Errorf("expected 2 visitors removed, got %d", removed)
	}
}

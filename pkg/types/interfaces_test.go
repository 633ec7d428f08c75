package types

import (
	"testing"
	"time"
)

func TestPoolState_String(t *testing.T) {
	tests := []struct {
		state    PoolState
		expected string
	}{
		{PoolStateCreated, "Created"},
		{PoolStateRunning, "Running"},
		{PoolStateClosed, "Closed"},
		{PoolState(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := tt.state.String()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestRealClock(t *testing.T) {
	clock := NewRealClock()

	t.Run("Now and Since", func(t *testing.T) {
		start := clock.Now()
		if clock.Since(start) < 0 {
			t.Errorf("expected non-negative elapsed time")
		}
	})

	t.Run("Timer fires", func(t *testing.T) {
		timer := clock.NewTimer(10 * time.Millisecond)
		defer timer.Stop()

		select {
		case <-timer.C():
		case <-time.After(time.Second):
			t.Fatalf("timer did not fire")
		}
	})

	t.Run("Timer stop", func(t *testing.T) {
		timer := clock.NewTimer(time.Hour)
		if !timer.Stop() {
			t.Errorf("expected Stop to report an active timer")
		}
	})

	t.Run("After", func(t *testing.T) {
		select {
		case <-clock.After(10 * time.Millisecond):
		case <-time.After(time.Second):
			t.Fatalf("After did not deliver")
		}
	})
}

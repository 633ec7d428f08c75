// Package testutils provides testing utilities and helper functions
package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// DefaultSlop is how late a timed operation may return before a test fails.
// Timeouts are "not before" only, so the bound is generous.
const DefaultSlop = 250 * time.Millisecond

// TimeoutCheck measures a timed call against its expected duration
type TimeoutCheck struct {
	t       testing.TB
	Start   time.Time
	Timeout time.Duration
	Slop    time.Duration
}

// NewTimeoutCheck starts measuring. A slop of 0 means DefaultSlop.
func NewTimeoutCheck(t testing.TB, timeout, slop time.Duration) *TimeoutCheck {
	if slop <= 0 {
		slop = DefaultSlop
	}
	return &TimeoutCheck{
		t:       t,
		Start:   time.Now(),
		Timeout: timeout,
		Slop:    slop,
	}
}

// Deadline returns Start plus Timeout
func (tc *TimeoutCheck) Deadline() time.Time {
	return tc.Start.Add(tc.Timeout)
}

// Check asserts Timeout <= elapsed < Timeout+Slop
func (tc *TimeoutCheck) Check() bool {
	tc.t.Helper()

	elapsed := time.Since(tc.Start)
	ok := assert.GreaterOrEqual(tc.t, elapsed, tc.Timeout, "returned before the timeout")
	return assert.Less(tc.t, elapsed, tc.Timeout+tc.Slop, "took %v, expected under %v", elapsed, tc.Timeout+tc.Slop) && ok
}

package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay   = 10 * time.Millisecond
	checkDeadline = 500 * time.Millisecond
)

// GoroutineChecker detects goroutines left behind by the code under test.
// Create it before starting the work and call Check after shutting down.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count as the baseline.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines remain above the
// baseline. It polls for a short while first, since goroutine exits race
// with the caller returning from Shutdown.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	deadline := time.Now().Add(checkDeadline)
	leaked := 0
	for {
		runtime.Gosched()
		leaked = runtime.NumGoroutine() - g.before
		if leaked <= tolerance || time.Now().After(deadline) {
			break
		}
		runtime.GC()
		time.Sleep(settleDelay)
	}

	if leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, leaked=%d (tolerance=%d)",
			g.before, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails the test if it leaves any
// goroutines behind.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

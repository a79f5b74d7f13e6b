// Package leaktest catches goroutines left running by workers, schedulers and pools.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
)

// GoroutineChecker compares goroutine counts before and after a test body
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines are still alive.
// Goroutines get until settleTimeout to exit before they count as leaked.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := settle(g.before+tolerance, settleTimeout)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails on any goroutine it leaves behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settle polls until the goroutine count drops to target or timeout passes
func settle(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(pollInterval)
	}
}

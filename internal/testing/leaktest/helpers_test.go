package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recorder captures failures instead of failing the outer test
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(string, ...any) { r.failed = true }

func TestGoroutineChecker_WaitsForExit(t *testing.T) {
	checker := NewGoroutineChecker(t)

	go func() { time.Sleep(50 * time.Millisecond) }()

	checker.Check(0)
}

func TestGoroutineChecker_ReportsLeak(t *testing.T) {
	rec := &recorder{TB: t}
	checker := &GoroutineChecker{before: settle(0, 0), t: rec}

	stop := make(chan struct{})
	defer close(stop)
	go func() { <-stop }()

	start := time.Now()
	checker.Check(0)

	assert.True(t, rec.failed)
	assert.GreaterOrEqual(t, time.Since(start), settleTimeout)
}

func TestCheckNoGoroutineLeak(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
		}()
		wg.Wait()
	})
}

package livequiz

import (
	"sync/atomic"
	"testing"
	"time"
)

const testTick = 2 * time.Millisecond

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestCountdownFiresExactlyOnce(t *testing.T) {
	var fired int32
	c := startCountdown(3, testTick, func() {
		atomic.AddInt32(&fired, 1)
	})

	waitFor(t, func() bool { return atomic.LoadInt32(&fired) > 0 })

	// Give the ticker time to misbehave if it were going to.
	time.Sleep(10 * testTick)

	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Fatalf("onExpire fired %d times, want 1", n)
	}
	if rem := c.Remaining(); rem != 0 {
		t.Fatalf("Remaining() = %d after expiry, want 0", rem)
	}
}

func TestCountdownStopPreventsExpiry(t *testing.T) {
	var fired int32
	c := startCountdown(5, testTick, func() {
		atomic.AddInt32(&fired, 1)
	})
	c.Stop()

	time.Sleep(20 * testTick)

	if n := atomic.LoadInt32(&fired); n != 0 {
		t.Fatalf("onExpire fired %d times after Stop, want 0", n)
	}
}

func TestCountdownStopIdempotent(t *testing.T) {
	c := startCountdown(5, testTick, nil)
	c.Stop()
	c.Stop() // must not panic on a closed channel
}

func TestCountdownStopAfterNaturalExpiry(t *testing.T) {
	var fired int32
	c := startCountdown(1, testTick, func() {
		atomic.AddInt32(&fired, 1)
	})

	waitFor(t, func() bool { return atomic.LoadInt32(&fired) > 0 })
	c.Stop() // already expired; must be a no-op
}

func TestCountdownDecrements(t *testing.T) {
	c := startCountdown(1000, 50*time.Millisecond, nil)
	defer c.Stop()

	start := c.Remaining()
	waitFor(t, func() bool { return c.Remaining() < start })
}

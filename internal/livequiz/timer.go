package livequiz

import (
	"sync"
	"time"
)

// Clock supplies the current time. Injected everywhere the protocol compares
// against a session's absolute end time, so tests can freeze it.
type Clock func() time.Time

// Countdown is a one-second tick over a locally-held integer. On each tick
// it decrements; when the count would pass zero it stops and fires onExpire
// exactly once. It never recomputes from wall time after start — the owner
// seeds it from the session's absolute end time at join/start, and
// sub-second drift is immaterial at this granularity.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	stopped   bool
	stopCh    chan struct{}
	onExpire  func()
}

// StartCountdown begins ticking from the given number of seconds.
// onExpire may be nil.
func StartCountdown(seconds int, onExpire func()) *Countdown {
	return startCountdown(seconds, time.Second, onExpire)
}

// startCountdown lets in-package tests tick faster than wall seconds.
func startCountdown(seconds int, interval time.Duration, onExpire func()) *Countdown {
	c := &Countdown{
		remaining: seconds,
		stopCh:    make(chan struct{}),
		onExpire:  onExpire,
	}
	go c.run(interval)
	return c
}

func (c *Countdown) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			if c.tick() {
				return
			}
		}
	}
}

// tick advances the countdown by one second and reports whether it is done.
func (c *Countdown) tick() bool {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return true
	}
	if c.remaining <= 1 {
		c.remaining = 0
		c.stopped = true
		fire := c.onExpire
		c.onExpire = nil
		c.mu.Unlock()
		if fire != nil {
			fire()
		}
		return true
	}
	c.remaining--
	c.mu.Unlock()
	return false
}

// Stop cancels the countdown without firing onExpire. Idempotent, and safe
// to call after natural expiry. Owners must call it whenever they leave the
// state that required the timer.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	c.onExpire = nil
	close(c.stopCh)
}

// Remaining returns the seconds left on the countdown.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

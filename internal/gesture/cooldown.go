package gesture

import (
	"sync"
	"time"
)

// DefaultCooldown is the minimum interval between reaction triggers for
// a single hand slot.
const DefaultCooldown = 400 * time.Millisecond

// Cooldown rate-limits triggers per hand slot. A slot fires when at
// least the configured interval has passed since its previous firing,
// so a pose held across many frames keeps firing on the cooldown beat
// rather than once per appearance. Slots are positional: slot N is the
// Nth hand reported for a frame, not a tracked identity.
type Cooldown struct {
	interval  time.Duration
	mu        sync.Mutex
	lastFired []time.Time
}

// NewCooldown creates a Cooldown for the given number of hand slots.
// A non-positive interval falls back to DefaultCooldown; slots is
// clamped to at least 1.
func NewCooldown(interval time.Duration, slots int) *Cooldown {
	if interval <= 0 {
		interval = DefaultCooldown
	}
	if slots < 1 {
		slots = 1
	}
	return &Cooldown{
		interval:  interval,
		lastFired: make([]time.Time, slots),
	}
}

// Allow reports whether the slot may fire at the given time and, if so,
// records the firing. A slot that has never fired always passes; slots
// outside the configured range never fire.
func (c *Cooldown) Allow(slot int, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if slot < 0 || slot >= len(c.lastFired) {
		return false
	}

	last := c.lastFired[slot]
	if !last.IsZero() && now.Sub(last) < c.interval {
		return false
	}

	c.lastFired[slot] = now
	return true
}

// Interval returns the configured cooldown interval.
func (c *Cooldown) Interval() time.Duration {
	return c.interval
}

// Reset clears all slot timers so every slot may fire immediately.
func (c *Cooldown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lastFired {
		c.lastFired[i] = time.Time{}
	}
}

// Package bubble manages the floating reaction messages spawned by
// recognized hand poses: their creation, drift parameters, and expiry.
package bubble

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/detector"
)

// Default lifecycle parameters.
const (
	// DefaultTTL is how long a bubble stays live after spawning.
	DefaultTTL = 4 * time.Second
	// DefaultSweepInterval is how often the expiry sweeper runs.
	DefaultSweepInterval = 50 * time.Millisecond
	// DriftRange is the total horizontal drift span in pixels; each
	// bubble draws a value in [-DriftRange/2, DriftRange/2).
	DriftRange = 80.0
	// RotationRange is the total tilt span in degrees; each bubble
	// draws a value in [-RotationRange/2, RotationRange/2).
	RotationRange = 24.0
)

// Bubble is one floating reaction message. Drift and rotation are
// chosen once at spawn time; display layers animate position from
// them, so the struct never mutates after creation.
type Bubble struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Anchor    detector.Point `json:"anchor"`
	DriftX    float64        `json:"drift_x"`
	Rotation  float64        `json:"rotation"`
	CreatedAt time.Time      `json:"created_at"`
}

// Config holds configuration options for the bubble manager.
type Config struct {
	// TTL is the bubble lifetime. Non-positive values fall back to DefaultTTL.
	TTL time.Duration
	// SweepInterval is how often expired bubbles are collected.
	// Non-positive values fall back to DefaultSweepInterval.
	SweepInterval time.Duration
	// Seed seeds the drift and rotation generator. Zero selects a
	// random seed; tests pass a fixed seed for reproducible bubbles.
	Seed int64
}

// Manager owns the live bubble set. Spawning, queries, and expiry are
// safe for concurrent use; expiry runs on a background sweeper between
// Start and Stop.
type Manager struct {
	ttl           time.Duration
	sweepInterval time.Duration

	mu      sync.RWMutex
	bubbles []Bubble
	rng     *rand.Rand
	stopCh  chan struct{}
}

// NewManager creates a Manager with the given configuration.
func NewManager(config Config) *Manager {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	sweepInterval := config.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	seed := config.Seed
	if seed == 0 {
		seed = newSeed()
	}

	return &Manager{
		ttl:           ttl,
		sweepInterval: sweepInterval,
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// newSeed draws a seed from the OS entropy source, falling back to the
// clock if that fails.
func newSeed() int64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.BigEndian.Uint64(b[:]))
}

// Spawn creates a bubble with the given text anchored at the given
// point, timestamped now.
func (m *Manager) Spawn(anchor detector.Point, text string) Bubble {
	return m.SpawnAt(anchor, text, time.Now())
}

// SpawnAt creates a bubble with an explicit creation time. Drift and
// rotation are drawn from the manager's generator and fixed for the
// bubble's lifetime.
func (m *Manager) SpawnAt(anchor detector.Point, text string, now time.Time) Bubble {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := Bubble{
		ID:        uuid.New().String(),
		Text:      text,
		Anchor:    anchor,
		DriftX:    m.rng.Float64()*DriftRange - DriftRange/2,
		Rotation:  m.rng.Float64()*RotationRange - RotationRange/2,
		CreatedAt: now,
	}
	m.bubbles = append(m.bubbles, b)
	return b
}

// Live returns a snapshot of the current bubbles in spawn order.
func (m *Manager) Live() []Bubble {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Bubble, len(m.bubbles))
	copy(out, m.bubbles)
	return out
}

// Len returns the number of live bubbles.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bubbles)
}

// Remove deletes the bubble with the given ID. Removing an unknown ID
// is a no-op, so expiry and manual removal can race harmlessly.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.bubbles {
		if b.ID == id {
			m.bubbles = append(m.bubbles[:i], m.bubbles[i+1:]...)
			return
		}
	}
}

// TTL returns the configured bubble lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start launches the expiry sweeper. Calling Start on a running
// manager is a no-op.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopCh != nil {
		return
	}
	m.stopCh = make(chan struct{})
	go m.runSweeper(m.stopCh)
}

// Stop halts the expiry sweeper. Live bubbles are kept; they simply
// stop expiring until Start is called again.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopCh != nil {
		close(m.stopCh)
		m.stopCh = nil
	}
}

// runSweeper drops expired bubbles on a fixed tick until stopped.
func (m *Manager) runSweeper(stopCh chan struct{}) {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.Sweep(time.Now())
		}
	}
}

// Sweep removes bubbles whose age at now meets or exceeds the TTL and
// returns how many were removed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.bubbles[:0]
	for _, b := range m.bubbles {
		if now.Sub(b.CreatedAt) < m.ttl {
			kept = append(kept, b)
		}
	}
	removed := len(m.bubbles) - len(kept)
	m.bubbles = kept
	return removed
}

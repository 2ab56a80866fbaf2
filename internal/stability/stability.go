// Package stability is the background stability monitor: a timer task that
// periodically evaluates a (simulated) instability check and reports events
// over a channel. The random source is injectable so tests are deterministic.
package stability

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval is the check period.
const DefaultInterval = 30 * time.Second

// defaultChance is the per-check probability of flagging instability.
const defaultChance = 0.05

// Severity grades an instability event.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Event is one instability signal.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}

// RandSource yields values in [0, 1). math/rand's Float64 satisfies it; tests
// inject a fixed sequence.
type RandSource func() float64

// Monitor runs the periodic stability check.
type Monitor struct {
	log      *slog.Logger
	interval time.Duration
	chance   float64
	random   RandSource
}

// NewMonitor builds a Monitor. A non-positive interval falls back to
// DefaultInterval; a nil random source disables events entirely.
func NewMonitor(interval time.Duration, random RandSource, log *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		log:      log,
		interval: interval,
		chance:   defaultChance,
		random:   random,
	}
}

// Run checks on every tick until the context is cancelled, sending events on
// out. The channel is closed on return.
func (m *Monitor) Run(ctx context.Context, out chan<- Event) {
	defer close(out)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ev, ok := m.check(); ok {
				m.log.Warn("instability detected", "severity", ev.Severity, "message", ev.Message)
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// check evaluates one roll of the instability check.
func (m *Monitor) check() (Event, bool) {
	if m.random == nil {
		return Event{}, false
	}

	roll := m.random()
	if roll >= m.chance {
		return Event{}, false
	}

	ev := Event{
		Timestamp: time.Now(),
		Severity:  SeverityWarning,
		Message:   "transient instability detected, consider lowering the quality preset",
	}
	// The bottom slice of the probability window is graded critical.
	if roll < m.chance/5 {
		ev.Severity = SeverityCritical
		ev.Message = "repeated instability detected, restoring the config backup is recommended"
	}
	return ev, true
}

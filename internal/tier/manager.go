package tier

import (
	"log/slog"

	"github.com/maherelattar207-beep/mxd/internal/hardware"
)

// Settings is the slice of the settings store the manager needs.
type Settings interface {
	GetString(key, def string) string
	GetBool(key string, def bool) bool
	Set(key string, value any) error
}

const (
	keyTier     = "performance_tier"
	keyFirstRun = "first_run"
)

// Manager owns the persisted tier. Classification runs once, on first launch,
// and the result is committed to the settings store; later launches load the
// stored tier without reclassifying, even if the hardware changed. A GPU or
// RAM swap therefore goes unnoticed until the user runs Reclassify or
// Override. That matches the shipped behavior; see DESIGN.md before changing
// it.
type Manager struct {
	log      *slog.Logger
	settings Settings

	current Tier
	loaded  bool
}

// NewManager builds a Manager over the given settings store.
func NewManager(settings Settings, log *slog.Logger) *Manager {
	return &Manager{log: log, settings: settings}
}

// Current returns the active tier, resolving it on first use: either the
// persisted value, or a fresh classification committed to the store when this
// is the first launch.
func (m *Manager) Current(snap *hardware.Snapshot) Tier {
	if m.loaded {
		return m.current
	}

	if !m.settings.GetBool(keyFirstRun, true) {
		m.current = Parse(m.settings.GetString(keyTier, string(Normal)))
		m.loaded = true
		m.log.Info("loaded persisted performance tier", "tier", m.current)
		return m.current
	}

	m.current = Classify(snap)
	m.loaded = true
	m.commit()
	m.log.Info("first run: classified performance tier",
		"tier", m.current,
		"cores", snap.CPU.PhysicalCores,
		"ramMb", snap.Memory.TotalMB)
	return m.current
}

// Override sets the tier explicitly and persists it. This is the user-facing
// escape hatch for the one-shot classification.
func (m *Manager) Override(t Tier) {
	m.current = t
	m.loaded = true
	m.commit()
	m.log.Info("performance tier overridden", "tier", t)
}

// Reclassify reruns classification against a fresh snapshot and persists the
// result, replacing whatever was stored.
func (m *Manager) Reclassify(snap *hardware.Snapshot) Tier {
	m.current = Classify(snap)
	m.loaded = true
	m.commit()
	m.log.Info("performance tier reclassified", "tier", m.current)
	return m.current
}

func (m *Manager) commit() {
	if err := m.settings.Set(keyTier, string(m.current)); err != nil {
		m.log.Warn("failed to persist performance tier", "error", err)
	}
	if err := m.settings.Set(keyFirstRun, false); err != nil {
		m.log.Warn("failed to persist first-run flag", "error", err)
	}
}

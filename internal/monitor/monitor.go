// Package monitor polls live system telemetry (CPU, RAM, GPU) at a fixed
// interval and ships samples over a channel, keeping the slow vendor-tool
// call off the caller's thread.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/maherelattar207-beep/mxd/internal/hardware"
)

// DefaultInterval is the poll period. Live GPU stats are fetched fresh each
// tick and never cached.
const DefaultInterval = 2 * time.Second

// subprocessBudget bounds one nvidia-smi call; a tick that overruns it yields
// zeroed GPU stats instead of stalling the poll loop.
const subprocessBudget = 5 * time.Second

// Sample is one point-in-time telemetry reading.
type Sample struct {
	Timestamp time.Time          `json:"timestamp"`
	CPUUsage  float64            `json:"cpuUsage"`
	RAMUsage  float64            `json:"ramUsage"`
	GPU       hardware.LiveStats `json:"gpu"`
}

// Poller periodically samples system telemetry.
type Poller struct {
	log      *slog.Logger
	hw       *hardware.Collector
	interval time.Duration
}

// NewPoller builds a Poller over the given collector. A non-positive
// interval falls back to DefaultInterval.
func NewPoller(hw *hardware.Collector, interval time.Duration, log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{log: log, hw: hw, interval: interval}
}

// Sample takes one reading. CPU usage is sampled over a short window; any
// probe that fails contributes a zero value rather than an error.
func (p *Poller) Sample(ctx context.Context) Sample {
	s := Sample{Timestamp: time.Now()}

	if percents, err := cpu.Percent(500*time.Millisecond, false); err == nil && len(percents) > 0 {
		s.CPUUsage = roundTo(percents[0], 2)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.RAMUsage = roundTo(vm.UsedPercent, 2)
	}

	statsCtx, cancel := context.WithTimeout(ctx, subprocessBudget)
	s.GPU = p.hw.CaptureLiveStats(statsCtx)
	cancel()

	return s
}

// Run polls until the context is cancelled, sending each sample on out. The
// channel is closed on return. Slow receivers drop samples instead of backing
// up the loop.
func (p *Poller) Run(ctx context.Context, out chan<- Sample) {
	defer close(out)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample := p.Sample(ctx)
			select {
			case out <- sample:
			default:
				p.log.Debug("telemetry receiver slow, dropping sample")
			}
		}
	}
}

func roundTo(val float64, places int) float64 {
	factor := 1.0
	for i := 0; i < places; i++ {
		factor *= 10
	}
	return float64(int(val*factor+0.5)) / factor
}

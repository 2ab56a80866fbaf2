package hardware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/maherelattar207-beep/mxd/internal/cmd"
)

// LiveStats is the lightweight real-time telemetry for the primary GPU. It is
// a separate call from the capability snapshot: callers must not expect
// capability fields here, and values are re-fetched on every poll, never
// cached. All fields are zero when the vendor diagnostic tool is missing.
type LiveStats struct {
	UtilizationPct float64   `json:"utilizationPct"`
	VRAMUsedMB     uint64    `json:"vramUsedMb"`
	VRAMTotalMB    uint64    `json:"vramTotalMb"`
	TemperatureC   float64   `json:"temperatureC"`
	ClockMHz       float64   `json:"clockMhz"`
	PowerDrawW     float64   `json:"powerDrawW"`
	SampledAt      time.Time `json:"sampledAt"`
}

// CaptureLiveStats fetches live telemetry for the primary GPU via nvidia-smi.
// A missing or failing tool degrades to zero-valued stats with a warning; it
// is never an error. The context bounds the subprocess.
func (c *Collector) CaptureLiveStats(ctx context.Context) LiveStats {
	stats := LiveStats{SampledAt: time.Now()}

	if !c.caps.HasNvidiaSMI {
		c.log.Warn("live stats unavailable: nvidia-smi not found")
		return stats
	}

	out, err := cmd.HiddenContext(ctx, "nvidia-smi",
		"--query-gpu=utilization.gpu,memory.used,memory.total,temperature.gpu,clocks.gr,power.draw",
		"--format=csv,noheader,nounits").Output()
	if err != nil {
		c.log.Warn("live stats fetch failed", "error", err)
		return stats
	}

	parsed, ok := parseLiveStats(string(out))
	if !ok {
		c.log.Warn("live stats output unparseable", "output", strings.TrimSpace(string(out)))
		return stats
	}
	parsed.SampledAt = stats.SampledAt
	return parsed
}

// parseLiveStats parses one nvidia-smi CSV row:
// "util, memUsed, memTotal, temp, clock, power". Multi-GPU output has one row
// per adapter; the primary GPU is the first row.
func parseLiveStats(out string) (LiveStats, bool) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		return LiveStats{}, false
	}

	parts := strings.Split(lines[0], ",")
	if len(parts) < 6 {
		return LiveStats{}, false
	}

	field := func(i int) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return 0
		}
		return v
	}

	return LiveStats{
		UtilizationPct: field(0),
		VRAMUsedMB:     uint64(field(1)),
		VRAMTotalMB:    uint64(field(2)),
		TemperatureC:   field(3),
		ClockMHz:       field(4),
		PowerDrawW:     field(5),
	}, true
}

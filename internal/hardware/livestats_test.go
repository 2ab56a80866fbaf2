package hardware

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseLiveStats(t *testing.T) {
	out := "87, 10240, 24564, 72, 2520, 384.5\n"
	stats, ok := parseLiveStats(out)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if stats.UtilizationPct != 87 {
		t.Errorf("utilization = %v", stats.UtilizationPct)
	}
	if stats.VRAMUsedMB != 10240 {
		t.Errorf("vram used = %v", stats.VRAMUsedMB)
	}
	if stats.VRAMTotalMB != 24564 {
		t.Errorf("vram total = %v", stats.VRAMTotalMB)
	}
	if stats.TemperatureC != 72 {
		t.Errorf("temperature = %v", stats.TemperatureC)
	}
	if stats.ClockMHz != 2520 {
		t.Errorf("clock = %v", stats.ClockMHz)
	}
	if stats.PowerDrawW != 384.5 {
		t.Errorf("power = %v", stats.PowerDrawW)
	}
}

func TestParseLiveStatsMultiGPUUsesFirstRow(t *testing.T) {
	out := "50, 1000, 8192, 60, 1800, 150\n10, 500, 8192, 40, 1200, 75\n"
	stats, ok := parseLiveStats(out)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if stats.UtilizationPct != 50 {
		t.Errorf("expected primary gpu row, got utilization %v", stats.UtilizationPct)
	}
}

func TestParseLiveStatsMalformed(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"empty", ""},
		{"short row", "87, 10240"},
		{"not csv", "NVIDIA-SMI has failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := parseLiveStats(tt.out); ok {
				t.Error("expected parse failure")
			}
		})
	}
}

func TestParseLiveStatsUnparseableFieldsZero(t *testing.T) {
	// "[N/A]" shows up for power on some boards; it must degrade to zero,
	// not kill the row.
	out := "87, 10240, 24564, 72, 2520, [N/A]\n"
	stats, ok := parseLiveStats(out)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if stats.PowerDrawW != 0 {
		t.Errorf("power = %v, want 0", stats.PowerDrawW)
	}
}

func TestCaptureLiveStatsWithoutTool(t *testing.T) {
	// A collector whose platform lacks nvidia-smi must return zero-valued
	// stats without erroring.
	c := &Collector{log: discardLogger()}
	stats := c.CaptureLiveStats(context.Background())

	if stats.UtilizationPct != 0 || stats.VRAMUsedMB != 0 || stats.TemperatureC != 0 {
		t.Errorf("expected zero-valued stats, got %+v", stats)
	}
	if stats.SampledAt.IsZero() {
		t.Error("SampledAt should still be stamped")
	}
}

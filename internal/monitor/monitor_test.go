package monitor

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewPollerDefaultInterval(t *testing.T) {
	p := NewPoller(nil, 0, testLogger())
	if p.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", p.interval, DefaultInterval)
	}

	p = NewPoller(nil, 250*time.Millisecond, testLogger())
	if p.interval != 250*time.Millisecond {
		t.Errorf("interval = %v", p.interval)
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		val    float64
		places int
		want   float64
	}{
		{12.3456, 2, 12.35},
		{12.344, 2, 12.34},
		{0, 2, 0},
		{99.999, 1, 100},
	}
	for _, tt := range tests {
		if got := roundTo(tt.val, tt.places); got != tt.want {
			t.Errorf("roundTo(%v, %d) = %v, want %v", tt.val, tt.places, got, tt.want)
		}
	}
}

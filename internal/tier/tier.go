// Package tier classifies a machine into a coarse Low/Normal/High performance
// tier from its core count and RAM size.
package tier

import (
	"github.com/maherelattar207-beep/mxd/internal/hardware"
)

// Tier is the three-level machine classification.
type Tier string

const (
	Low    Tier = "Low"
	Normal Tier = "Normal"
	High   Tier = "High"
)

// Classification thresholds. Evaluated top-down, first match wins.
const (
	highMinCores = 8
	highMinRAMMB = 12 * 1024
	normMinCores = 4
	normMinRAMMB = 6 * 1024
)

// Classify maps a hardware snapshot onto a tier. Pure and total: every
// (cores, ram) pair, including (0, 0), yields a value.
func Classify(snap *hardware.Snapshot) Tier {
	cores := snap.CPU.PhysicalCores
	ramMB := snap.Memory.TotalMB

	switch {
	case cores >= highMinCores && ramMB >= highMinRAMMB:
		return High
	case cores >= normMinCores && ramMB >= normMinRAMMB:
		return Normal
	default:
		return Low
	}
}

// Parse converts a stored string back into a Tier, defaulting to Normal for
// anything unrecognized so a hand-edited settings file cannot wedge startup.
func Parse(s string) Tier {
	switch Tier(s) {
	case Low, Normal, High:
		return Tier(s)
	default:
		return Normal
	}
}

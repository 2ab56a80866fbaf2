// Package optimizer turns a game profile, a hardware snapshot, and a
// performance tier into a concrete settings decision. Optimize is a pure
// function: no I/O, no error path — when nothing matches it degrades to the
// safe defaults (no upscaling, full resolution).
package optimizer

import (
	"github.com/maherelattar207-beep/mxd/internal/hardware"
	"github.com/maherelattar207-beep/mxd/internal/profiles"
	"github.com/maherelattar207-beep/mxd/internal/tier"
)

// Upscaling is the selected render upscaling technology.
type Upscaling string

const (
	UpscalingNone Upscaling = "None"
	UpscalingDLSS Upscaling = "DLSS"
	UpscalingFSR  Upscaling = "FSR"
	UpscalingXeSS Upscaling = "XeSS"
)

// QualityPreset is the upscaler quality/performance trade-off.
type QualityPreset string

const (
	PresetQuality          QualityPreset = "Quality"
	PresetBalanced         QualityPreset = "Balanced"
	PresetPerformance      QualityPreset = "Performance"
	PresetUltraPerformance QualityPreset = "Ultra Performance"
)

// Decision is the optimizer output. Transient: it lives only long enough to
// be serialized into the game's config file. ResolutionScale is always in
// (0, 1].
type Decision struct {
	Upscaling       Upscaling     `json:"upscaling"`
	Preset          QualityPreset `json:"preset"`
	RayTracing      bool          `json:"rayTracing"`
	ResolutionScale float64       `json:"resolutionScale"`
}

// Optimize selects upscaling, ray tracing, and resolution scale for a game on
// this machine.
//
// Upscaler candidates are tried in fixed priority order DLSS → FSR → XeSS;
// the first one both the GPU and the game support wins. A GPU with generic
// FSR support but no profile match still gets FSR, pinned to Balanced. Ray
// tracing needs the GPU flag, the profile requirement, and a tier above Low.
// The only two down-scaling rules are 4K on a sub-8 GB card (0.8) and 6K on a
// card without the 6K flag (0.6).
func Optimize(profile *profiles.GameProfile, snap *hardware.Snapshot, t tier.Tier) Decision {
	gpu := snap.PrimaryGPU()

	d := Decision{
		Upscaling:       UpscalingNone,
		Preset:          presetForFPS(profile.TargetFPS),
		ResolutionScale: 1.0,
	}

	switch {
	case gpu.Capabilities.SupportsDLSS && profile.Requirements.SupportsDLSS:
		d.Upscaling = UpscalingDLSS
	case gpu.Capabilities.SupportsFSR && profile.Requirements.SupportsFSR:
		d.Upscaling = UpscalingFSR
	case gpu.Capabilities.SupportsXeSS && profile.Requirements.SupportsXeSS:
		d.Upscaling = UpscalingXeSS
	case gpu.Capabilities.SupportsFSR:
		// Generic FSR fallback when the profile declares no matching
		// upscaler support.
		d.Upscaling = UpscalingFSR
		d.Preset = PresetBalanced
	}

	if gpu.Capabilities.SupportsRayTracing && profile.Requirements.SupportsRayTracing && t != tier.Low {
		d.RayTracing = true
	}

	switch {
	case profile.TargetRes == profiles.Res4K && gpu.VRAMMB < 8192:
		d.ResolutionScale = 0.8
	case profile.TargetRes == profiles.Res6K && !gpu.Supports6K:
		d.ResolutionScale = 0.6
	}

	return d
}

// presetForFPS maps the profile's fps target to a quality preset. Ultra
// Performance is never auto-selected; it is reachable only through
// OverridePreset.
func presetForFPS(fps uint) QualityPreset {
	switch {
	case fps >= 120:
		return PresetPerformance
	case fps >= 90:
		return PresetBalanced
	default:
		return PresetQuality
	}
}

// OverridePreset returns a copy of the decision with the preset replaced.
// This is the explicit user path to Ultra Performance.
func OverridePreset(d Decision, p QualityPreset) Decision {
	d.Preset = p
	return d
}

package optimizer

import (
	"strings"
	"testing"

	"github.com/maherelattar207-beep/mxd/internal/profiles"
	"github.com/maherelattar207-beep/mxd/internal/tier"
)

// fakeWriter records the single write it receives.
type fakeWriter struct {
	path     string
	settings map[string]any
	hint     string
	calls    int
}

func (f *fakeWriter) Write(path string, settings map[string]any, formatHint string) error {
	f.path = path
	f.settings = settings
	f.hint = formatHint
	f.calls++
	return nil
}

func intp(n int) *int { return &n }

func fullSchema() profiles.Schema {
	return profiles.Schema{
		"resolution":       {Type: profiles.TypeString, Options: []string{"1080p", "2K", "4K", "5K", "6K"}},
		"fps":              {Type: profiles.TypeInt, Min: intp(30), Max: intp(240)},
		"upscaler":         {Type: profiles.TypeString, Options: []string{"Off", "DLSS", "FSR", "XeSS"}},
		"upscaler_quality": {Type: profiles.TypeString, Options: []string{"Quality", "Balanced", "Performance", "Ultra Performance"}},
		"rtx":              {Type: profiles.TypeBool},
		"render_scale_pct": {Type: profiles.TypeInt, Min: intp(10), Max: intp(100)},
	}
}

func TestSettingsFor(t *testing.T) {
	p := profileWith(profiles.Res4K, 120, allRequirements())
	d := Decision{
		Upscaling:       UpscalingDLSS,
		Preset:          PresetBalanced,
		RayTracing:      true,
		ResolutionScale: 0.8,
	}

	got := SettingsFor(p, d)

	if got["resolution"] != "4K" {
		t.Errorf("resolution = %v", got["resolution"])
	}
	if got["fps"] != 120 {
		t.Errorf("fps = %v", got["fps"])
	}
	if got["upscaler"] != "DLSS" {
		t.Errorf("upscaler = %v", got["upscaler"])
	}
	if got["upscaler_quality"] != "Balanced" {
		t.Errorf("upscaler_quality = %v", got["upscaler_quality"])
	}
	if got["rtx"] != true {
		t.Errorf("rtx = %v", got["rtx"])
	}
	if got["render_scale_pct"] != 80 {
		t.Errorf("render_scale_pct = %v", got["render_scale_pct"])
	}
}

func TestSettingsForMapsNoneToOff(t *testing.T) {
	p := profileWith(profiles.Res1080p, 60, allRequirements())
	got := SettingsFor(p, Decision{Upscaling: UpscalingNone, Preset: PresetQuality, ResolutionScale: 1.0})
	if got["upscaler"] != "Off" {
		t.Errorf("upscaler = %v, want Off", got["upscaler"])
	}
}

func TestApplyWritesValidatedSettings(t *testing.T) {
	p := profileWith(profiles.Res4K, 60, allRequirements())
	p.Schema = fullSchema()
	d := Optimize(p, snapWithGPU(rtx4090()), tier.High)

	fw := &fakeWriter{}
	if err := Apply(p, d, fw); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fw.calls != 1 {
		t.Fatalf("writer called %d times", fw.calls)
	}
	if fw.path != p.ConfigFilePath {
		t.Errorf("path = %q, want %q", fw.path, p.ConfigFilePath)
	}
	if fw.settings["upscaler"] != "DLSS" {
		t.Errorf("upscaler = %v", fw.settings["upscaler"])
	}
}

func TestApplyRejectsBeforeWriting(t *testing.T) {
	p := profileWith(profiles.Res4K, 60, allRequirements())
	// A schema that does not know the render-scale key rejects the map.
	s := fullSchema()
	delete(s, "render_scale_pct")
	p.Schema = s

	d := Optimize(p, snapWithGPU(rtx4090()), tier.High)

	fw := &fakeWriter{}
	err := Apply(p, d, fw)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "render_scale_pct") {
		t.Errorf("error does not name the offending field: %v", err)
	}
	if fw.calls != 0 {
		t.Error("rejected settings must never reach the writer")
	}
}

func TestApplyUltraPerformanceOverridePassesSchema(t *testing.T) {
	p := profileWith(profiles.Res4K, 60, allRequirements())
	p.Schema = fullSchema()

	d := OverridePreset(Optimize(p, snapWithGPU(rtx4090()), tier.High), PresetUltraPerformance)

	fw := &fakeWriter{}
	if err := Apply(p, d, fw); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fw.settings["upscaler_quality"] != "Ultra Performance" {
		t.Errorf("upscaler_quality = %v", fw.settings["upscaler_quality"])
	}
}

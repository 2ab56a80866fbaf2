package optimizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/maherelattar207-beep/mxd/internal/profiles"
)

// SettingsFor serializes a decision into the flat settings map a game's
// config file expects. Keys follow the shared profile schema.
func SettingsFor(profile *profiles.GameProfile, d Decision) map[string]any {
	upscaler := string(d.Upscaling)
	if d.Upscaling == UpscalingNone {
		upscaler = "Off"
	}

	return map[string]any{
		"resolution":       string(profile.TargetRes),
		"fps":              int(profile.TargetFPS),
		"upscaler":         upscaler,
		"upscaler_quality": string(d.Preset),
		"rtx":              d.RayTracing,
		"render_scale_pct": int(math.Round(d.ResolutionScale * 100)),
	}
}

// ConfigWriter is the boundary to the file writer; see internal/configwriter.
type ConfigWriter interface {
	Write(path string, settings map[string]any, formatHint string) error
}

// Apply validates the decision's settings against the profile schema and, if
// clean, writes them to the game's config file. Validation failures are
// returned before any file is touched.
func Apply(profile *profiles.GameProfile, d Decision, w ConfigWriter) error {
	settings := SettingsFor(profile, d)

	if errs := profile.Schema.Validate(settings); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.String()
		}
		return fmt.Errorf("settings rejected by profile schema: %s", strings.Join(msgs, "; "))
	}

	if err := w.Write(profile.ConfigFilePath, settings, ""); err != nil {
		return fmt.Errorf("write config for %q: %w", profile.Name, err)
	}
	return nil
}

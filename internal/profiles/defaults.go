package profiles

// Built-in game profiles. These mirror the titles the optimizer shipped with;
// user edits are persisted to the store file and survive upgrades.

func intp(n int) *int { return &n }

// baseSchema is the settings schema shared by the built-in titles: render
// resolution, fps target, upscaler selection and quality, ray tracing, and a
// render-scale percentage.
func baseSchema() Schema {
	return Schema{
		"resolution":       {Type: TypeString, Options: []string{"1080p", "2K", "4K", "5K", "6K"}},
		"fps":              {Type: TypeInt, Min: intp(30), Max: intp(240)},
		"upscaler":         {Type: TypeString, Options: []string{"Off", "DLSS", "FSR", "XeSS"}},
		"upscaler_quality": {Type: TypeString, Options: []string{"Quality", "Balanced", "Performance", "Ultra Performance"}},
		"rtx":              {Type: TypeBool},
		"render_scale_pct": {Type: TypeInt, Min: intp(10), Max: intp(100)},
	}
}

// DefaultProfiles returns the built-in profile set.
func DefaultProfiles() []GameProfile {
	return []GameProfile{
		ElderScrolls6(),
		GTA6(),
		Cyberpunk2077Redux(),
	}
}

// ElderScrolls6 writes a flat INI settings file and supports every upscaler.
func ElderScrolls6() GameProfile {
	return GameProfile{
		Name:            "Elder Scrolls VI",
		ExecutableNames: []string{"elderscrolls6.exe"},
		ConfigFilePath:  `C:\Games\ES6\settings.ini`,
		Requirements: CapabilityRequirements{
			SupportsDLSS:       true,
			SupportsFSR:        true,
			SupportsXeSS:       true,
			SupportsRayTracing: true,
		},
		TargetRes: Res4K,
		TargetFPS: 60,
		Schema:    baseSchema(),
	}
}

// GTA6 writes an XML settings file; no XeSS integration.
func GTA6() GameProfile {
	return GameProfile{
		Name:            "GTA VI",
		ExecutableNames: []string{"gtavi.exe"},
		ConfigFilePath:  `C:\Games\GTAVI\settings.xml`,
		Requirements: CapabilityRequirements{
			SupportsDLSS:       true,
			SupportsFSR:        true,
			SupportsRayTracing: true,
		},
		TargetRes: Res4K,
		TargetFPS: 120,
		Schema:    baseSchema(),
	}
}

// Cyberpunk2077Redux uses the engine's ".settings" extension, which no
// structured writer recognizes; writes fall through to the debug dump.
func Cyberpunk2077Redux() GameProfile {
	return GameProfile{
		Name:            "Cyberpunk 2077: Redux",
		ExecutableNames: []string{"cyberpunk2077.exe"},
		ConfigFilePath:  `C:\Games\CP2077\user.settings`,
		Requirements: CapabilityRequirements{
			SupportsDLSS:       true,
			SupportsFSR:        true,
			SupportsRayTracing: true,
		},
		TargetRes: Res6K,
		TargetFPS: 90,
		Schema:    baseSchema(),
	}
}

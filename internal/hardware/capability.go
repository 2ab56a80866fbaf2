package hardware

import "strings"

// GPUVendor identifies the manufacturer of a graphics adapter.
type GPUVendor string

const (
	VendorNVIDIA  GPUVendor = "NVIDIA"
	VendorAMD     GPUVendor = "AMD"
	VendorIntel   GPUVendor = "Intel"
	VendorUnknown GPUVendor = "Unknown"
)

// CPUVendor identifies the manufacturer of a processor.
type CPUVendor string

const (
	CPUVendorIntel   CPUVendor = "Intel"
	CPUVendorAMD     CPUVendor = "AMD"
	CPUVendorARM     CPUVendor = "ARM"
	CPUVendorUnknown CPUVendor = "Unknown"
)

// CapabilityFlags are the upscaling/ray-tracing eligibility flags derived from
// a GPU's marketing name. They are a keyword lookup, not a driver query, and
// the keyword tables below must stay stable: saved game profiles were produced
// against them.
type CapabilityFlags struct {
	SupportsDLSS       bool `json:"supportsDlss"`
	SupportsFSR        bool `json:"supportsFsr"`
	SupportsXeSS       bool `json:"supportsXess"`
	SupportsRayTracing bool `json:"supportsRaytracing"`
}

// gpuVendorRule maps name substrings to a vendor. Rules are evaluated in
// order and the first matching substring wins, so NVIDIA keywords are checked
// before AMD and Intel ones.
type gpuVendorRule struct {
	keywords []string
	vendor   GPUVendor
}

var gpuVendorRules = []gpuVendorRule{
	{[]string{"nvidia", "geforce", "rtx", "gtx"}, VendorNVIDIA},
	{[]string{"amd", "radeon", "rx "}, VendorAMD},
	{[]string{"intel", "uhd", "iris", "arc"}, VendorIntel},
}

var cpuVendorRules = []struct {
	keyword string
	vendor  CPUVendor
}{
	{"intel", CPUVendorIntel},
	{"amd", CPUVendorAMD},
	{"arm", CPUVendorARM},
}

// rayTracingKeywords mark card families with hardware ray tracing: RTX,
// Radeon RX 6000/7000, and Intel Arc.
var rayTracingKeywords = []string{"rtx", "rx 6", "rx 7", "arc"}

// sixKVRAMThresholdMB is the minimum VRAM for the 6K-capable flag.
const sixKVRAMThresholdMB = 8192

// DetectGPUVendor classifies a GPU by its device name.
func DetectGPUVendor(name string) GPUVendor {
	lower := strings.ToLower(name)
	for _, rule := range gpuVendorRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.vendor
			}
		}
	}
	return VendorUnknown
}

// DetectCPUVendor classifies a CPU by its model name.
func DetectCPUVendor(name string) CPUVendor {
	lower := strings.ToLower(name)
	for _, rule := range cpuVendorRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.vendor
		}
	}
	return CPUVendorUnknown
}

// InferCapabilities derives the capability flags for a device name.
//
// DLSS needs an NVIDIA card from the RTX line (or the feature-limited
// GTX 16 series). FSR is treated as universally available; that is a
// deliberate simplification, not a detection gap. XeSS needs Intel Arc.
func InferCapabilities(name string) CapabilityFlags {
	lower := strings.ToLower(name)
	vendor := DetectGPUVendor(name)

	flags := CapabilityFlags{
		SupportsFSR: true,
	}

	if vendor == VendorNVIDIA && (strings.Contains(lower, "rtx") || strings.Contains(lower, "gtx 16")) {
		flags.SupportsDLSS = true
	}
	if vendor == VendorIntel && strings.Contains(lower, "arc") {
		flags.SupportsXeSS = true
	}
	for _, kw := range rayTracingKeywords {
		if strings.Contains(lower, kw) {
			flags.SupportsRayTracing = true
			break
		}
	}

	return flags
}

// Supports6K reports whether a card has enough VRAM to drive a 6K target.
// Used only for resolution gating, never for upscaler selection.
func Supports6K(vramMB uint64) bool {
	return vramMB >= sixKVRAMThresholdMB
}

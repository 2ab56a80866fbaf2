package hardware

import (
	"os/exec"
	"runtime"
)

// PlatformCapabilities records which probe tools exist on this machine. It is
// detected once at startup so probe code consults a value instead of catching
// "tool not found" errors on every call.
type PlatformCapabilities struct {
	HasPowerShell bool `json:"hasPowershell"`
	HasWMIC       bool `json:"hasWmic"`
	HasNvidiaSMI  bool `json:"hasNvidiaSmi"`
	HasRegistry   bool `json:"hasRegistry"`
}

// DetectPlatform probes the PATH for the tools the collector can use.
func DetectPlatform() PlatformCapabilities {
	return PlatformCapabilities{
		HasPowerShell: lookPath("powershell"),
		HasWMIC:       lookPath("wmic"),
		HasNvidiaSMI:  lookPath("nvidia-smi"),
		HasRegistry:   runtime.GOOS == "windows",
	}
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

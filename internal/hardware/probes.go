package hardware

import (
	"fmt"
	"strings"

	"github.com/maherelattar207-beep/mxd/internal/cmd"
)

// psGPUScript reads qwMemorySize from the display class registry key, which
// holds the real 64-bit VRAM size. Win32_VideoController.AdapterRAM is a
// 32-bit field and overflows above 4 GB.
const psGPUScript = `Get-CimInstance Win32_VideoController | ForEach-Object {
	$vram = 0
	$regPath = "HKLM:\SYSTEM\ControlSet001\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}"
	$subkeys = Get-ChildItem $regPath -ErrorAction SilentlyContinue | Where-Object { $_.Name -match '\\\d{4}$' }
	foreach ($sk in $subkeys) {
		$desc = (Get-ItemProperty $sk.PSPath -ErrorAction SilentlyContinue).'DriverDesc'
		if ($desc -eq $_.Name) {
			$qw = (Get-ItemProperty $sk.PSPath -ErrorAction SilentlyContinue).'HardwareInformation.qwMemorySize'
			if ($qw) { $vram = $qw; break }
		}
	}
	if ($vram -eq 0) { $vram = $_.AdapterRAM }
	"$($_.Name)|$($_.DriverVersion)|$vram"
}`

// probeGPUsPowerShell queries all adapters with correct VRAM sizes.
func (c *Collector) probeGPUsPowerShell() []rawGPU {
	out, err := cmd.Hidden("powershell", "-NoProfile", "-Command", psGPUScript).Output()
	if err != nil {
		c.log.Debug("powershell gpu probe failed", "error", err)
		return nil
	}
	return parsePipeGPUs(string(out))
}

// parsePipeGPUs parses "Name|DriverVersion|VRAMBytes" lines.
func parsePipeGPUs(out string) []rawGPU {
	var gpus []rawGPU
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 3 {
			continue
		}
		var vramBytes uint64
		fmt.Sscan(strings.TrimSpace(parts[2]), &vramBytes)

		gpus = append(gpus, rawGPU{
			Name:          strings.TrimSpace(parts[0]),
			DriverVersion: strings.TrimSpace(parts[1]),
			VRAMMB:        vramBytes / (1024 * 1024),
		})
	}
	return gpus
}

// probeGPUsWMIC is the wmic fallback. AdapterRAM caps at ~4 GB but the name
// and driver fields are still usable for capability inference.
func (c *Collector) probeGPUsWMIC() []rawGPU {
	out, err := cmd.Hidden("wmic", "path", "win32_VideoController", "get",
		"Name,DriverVersion,AdapterRAM", "/format:csv").Output()
	if err != nil {
		c.log.Debug("wmic gpu probe failed", "error", err)
		return nil
	}
	return parseWMICGPUs(string(out))
}

// parseWMICGPUs parses wmic CSV output: Node,AdapterRAM,DriverVersion,Name.
func parseWMICGPUs(out string) []rawGPU {
	var gpus []rawGPU
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Node") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 4 {
			continue
		}
		var vramBytes uint64
		fmt.Sscan(strings.TrimSpace(parts[1]), &vramBytes)

		gpus = append(gpus, rawGPU{
			Name:          strings.TrimSpace(parts[3]),
			DriverVersion: strings.TrimSpace(parts[2]),
			VRAMMB:        vramBytes / (1024 * 1024),
		})
	}
	return gpus
}

// probeGPUsNvidiaSMI asks the NVIDIA diagnostic tool for the adapter list.
// Only sees NVIDIA cards, so it runs last in the probe order.
func (c *Collector) probeGPUsNvidiaSMI() []rawGPU {
	out, err := cmd.Hidden("nvidia-smi",
		"--query-gpu=name,memory.total,driver_version",
		"--format=csv,noheader,nounits").Output()
	if err != nil {
		c.log.Debug("nvidia-smi gpu probe failed", "error", err)
		return nil
	}
	return parseNvidiaSMIGPUs(string(out))
}

// parseNvidiaSMIGPUs parses "name, vramMB, driver" CSV rows.
func parseNvidiaSMIGPUs(out string) []rawGPU {
	var gpus []rawGPU
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			continue
		}
		var vramMB uint64
		fmt.Sscan(strings.TrimSpace(parts[1]), &vramMB)

		gpus = append(gpus, rawGPU{
			Name:          strings.TrimSpace(parts[0]),
			VRAMMB:        vramMB,
			DriverVersion: strings.TrimSpace(parts[2]),
		})
	}
	return gpus
}

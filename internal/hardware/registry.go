//go:build windows

package hardware

import (
	"golang.org/x/sys/windows/registry"
)

// displayClassKey is the display adapter class under which the driver writes
// one numbered subkey per GPU.
const displayClassKey = `SYSTEM\CurrentControlSet\Control\Class\{4d36e968-e325-11ce-bfc1-08002be10318}`

// probeGPUsRegistry enumerates display adapters straight from the registry.
// It is the probe of last resort before nvidia-smi: DriverDesc gives the
// device name (enough for capability inference) but no reliable VRAM size.
func probeGPUsRegistry() []rawGPU {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, displayClassKey, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil
	}

	var gpus []rawGPU
	for _, sub := range names {
		adapter, err := registry.OpenKey(registry.LOCAL_MACHINE, displayClassKey+`\`+sub, registry.QUERY_VALUE)
		if err != nil {
			continue
		}

		desc, _, derr := adapter.GetStringValue("DriverDesc")
		driver, _, _ := adapter.GetStringValue("DriverVersion")

		var vramBytes uint64
		if qw, _, qerr := adapter.GetIntegerValue("HardwareInformation.qwMemorySize"); qerr == nil {
			vramBytes = qw
		}

		adapter.Close()

		if derr != nil || desc == "" {
			continue
		}
		gpus = append(gpus, rawGPU{
			Name:          desc,
			DriverVersion: driver,
			VRAMMB:        vramBytes / (1024 * 1024),
		})
	}
	return gpus
}

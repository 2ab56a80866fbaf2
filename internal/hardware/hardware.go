package hardware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// CPUInfo describes the processor.
type CPUInfo struct {
	Name           string    `json:"name"`
	Vendor         CPUVendor `json:"vendor"`
	PhysicalCores  int       `json:"physicalCores"`
	LogicalThreads int       `json:"logicalThreads"`
	BaseFreqMHz    float64   `json:"baseFreqMhz"`
	MaxFreqMHz     float64   `json:"maxFreqMhz"`
}

// GPUInfo describes a single graphics adapter.
type GPUInfo struct {
	Name          string          `json:"name"`
	Vendor        GPUVendor       `json:"vendor"`
	VRAMMB        uint64          `json:"vramMb"`
	DriverVersion string          `json:"driverVersion"`
	Capabilities  CapabilityFlags `json:"capabilities"`
	Supports6K    bool            `json:"supports6k"`
}

// MemoryInfo describes system RAM in megabytes.
type MemoryInfo struct {
	TotalMB     uint64 `json:"totalMb"`
	AvailableMB uint64 `json:"availableMb"`
}

// Snapshot is the normalized hardware description consumed by the tier
// classifier and the game optimizer. It is immutable once captured; the GPUs
// slice always has at least one entry (an "Unknown GPU" record when every
// probe failed).
type Snapshot struct {
	CPU        CPUInfo    `json:"cpu"`
	GPUs       []GPUInfo  `json:"gpus"`
	Memory     MemoryInfo `json:"memory"`
	CapturedAt time.Time  `json:"capturedAt"`
}

// PrimaryGPU returns the first adapter in the snapshot.
func (s *Snapshot) PrimaryGPU() GPUInfo {
	return s.GPUs[0]
}

// Collector captures hardware snapshots. The capability snapshot is expensive
// (it shells out to WMI/PowerShell) so it is taken once per process and reused
// until Refresh is called; live stats bypass the cache entirely.
type Collector struct {
	log  *slog.Logger
	caps PlatformCapabilities

	mu     sync.Mutex
	cached *Snapshot
}

// NewCollector builds a Collector. The platform capabilities are probed once
// here; probe availability never changes mid-session.
func NewCollector(log *slog.Logger) *Collector {
	return &Collector{
		log:  log,
		caps: DetectPlatform(),
	}
}

// Platform returns the probe availability detected at construction.
func (c *Collector) Platform() PlatformCapabilities {
	return c.caps
}

// Capture returns the hardware snapshot, probing on the first call and
// serving the cached value afterwards. It never fails: any probe that errors
// is replaced with a zero/"Unknown" record.
func (c *Collector) Capture() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil {
		return c.cached
	}
	c.cached = c.capture()
	return c.cached
}

// Refresh drops the cached snapshot so the next Capture probes again. This is
// the only invalidation path; there is no time-based expiry.
func (c *Collector) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}

func (c *Collector) capture() *Snapshot {
	snap := &Snapshot{
		CPU:        c.probeCPU(),
		GPUs:       c.probeGPUs(),
		Memory:     c.probeMemory(),
		CapturedAt: time.Now(),
	}

	c.log.Info("hardware snapshot captured",
		"cpu", snap.CPU.Name,
		"cores", snap.CPU.PhysicalCores,
		"gpus", len(snap.GPUs),
		"primaryGpu", snap.GPUs[0].Name,
		"ramMb", snap.Memory.TotalMB)

	return snap
}

// probeCPU queries the processor via gopsutil. Each sub-probe degrades
// independently; a machine that reports no frequency still yields a usable
// record.
func (c *Collector) probeCPU() CPUInfo {
	info := CPUInfo{
		Name:   "Unknown CPU",
		Vendor: CPUVendorUnknown,
	}

	cpuInfos, err := cpu.Info()
	if err != nil || len(cpuInfos) == 0 {
		c.log.Warn("cpu probe failed, using unknown record", "error", err)
	} else {
		info.Name = cpuInfos[0].ModelName
		info.BaseFreqMHz = cpuInfos[0].Mhz
		info.MaxFreqMHz = cpuInfos[0].Mhz
	}

	if physical, err := cpu.Counts(false); err == nil {
		info.PhysicalCores = physical
	}
	if logical, err := cpu.Counts(true); err == nil {
		info.LogicalThreads = logical
	}

	info.Vendor = DetectCPUVendor(info.Name)
	return info
}

// probeMemory queries RAM via gopsutil, zero-valued on failure.
func (c *Collector) probeMemory() MemoryInfo {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		c.log.Warn("memory probe failed, using zero record", "error", err)
		return MemoryInfo{}
	}
	return MemoryInfo{
		TotalMB:     vm.Total / (1024 * 1024),
		AvailableMB: vm.Available / (1024 * 1024),
	}
}

// probeGPUs tries each GPU probe in order and keeps the first non-empty
// result. When everything fails the fallback "Unknown GPU" record is
// substituted so downstream consumers never see an empty slice.
func (c *Collector) probeGPUs() []GPUInfo {
	type gpuProbe struct {
		name      string
		available bool
		run       func() []rawGPU
	}

	probes := []gpuProbe{
		{"powershell", c.caps.HasPowerShell, c.probeGPUsPowerShell},
		{"wmic", c.caps.HasWMIC, c.probeGPUsWMIC},
		{"registry", c.caps.HasRegistry, probeGPUsRegistry},
		{"nvidia-smi", c.caps.HasNvidiaSMI, c.probeGPUsNvidiaSMI},
	}

	for _, p := range probes {
		if !p.available {
			continue
		}
		raw := p.run()
		if len(raw) == 0 {
			c.log.Debug("gpu probe returned nothing", "probe", p.name)
			continue
		}
		gpus := make([]GPUInfo, 0, len(raw))
		for _, r := range raw {
			gpus = append(gpus, finishGPU(r))
		}
		return gpus
	}

	c.log.Warn("all gpu probes failed, using unknown record")
	return []GPUInfo{fallbackGPU()}
}

// rawGPU is what a probe produces before capability inference.
type rawGPU struct {
	Name          string
	VRAMMB        uint64
	DriverVersion string
}

// finishGPU derives vendor and capability flags from the raw probe result.
func finishGPU(r rawGPU) GPUInfo {
	driver := r.DriverVersion
	if driver == "" {
		driver = "Unknown"
	}
	return GPUInfo{
		Name:          r.Name,
		Vendor:        DetectGPUVendor(r.Name),
		VRAMMB:        r.VRAMMB,
		DriverVersion: driver,
		Capabilities:  InferCapabilities(r.Name),
		Supports6K:    Supports6K(r.VRAMMB),
	}
}

func fallbackGPU() GPUInfo {
	return GPUInfo{
		Name:          "Unknown GPU",
		Vendor:        VendorUnknown,
		DriverVersion: "Unknown",
		Capabilities:  CapabilityFlags{SupportsFSR: true},
	}
}

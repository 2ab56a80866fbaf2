//go:build !windows

package hardware

// probeGPUsRegistry is Windows-only; the capability gate (HasRegistry) keeps
// it from ever being selected on other platforms, so this stub just satisfies
// the compiler.
func probeGPUsRegistry() []rawGPU {
	return nil
}

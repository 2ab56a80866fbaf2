//go:build windows

package cmd

import (
	"context"
	"os/exec"
	"syscall"
)

// Hidden creates an exec.Cmd with the CREATE_NO_WINDOW flag set, so hardware
// probes (wmic, powershell, nvidia-smi) never flash a console window when the
// optimizer is launched from a shortcut.
func Hidden(name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: 0x08000000, // CREATE_NO_WINDOW
	}
	return cmd
}

// HiddenContext is Hidden with a context attached. The subprocess is killed
// when the context is cancelled, which bounds live telemetry fetches on
// systems where the vendor tool hangs.
func HiddenContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: 0x08000000, // CREATE_NO_WINDOW
	}
	return cmd
}

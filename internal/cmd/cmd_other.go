//go:build !windows

package cmd

import (
	"context"
	"os/exec"
)

// Hidden matches the Windows variant's signature; CREATE_NO_WINDOW has no
// equivalent off Windows, so the command is returned as-is.
func Hidden(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

// HiddenContext is Hidden with a context attached.
func HiddenContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

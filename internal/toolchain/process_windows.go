// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Windows-specific process handling

//go:build windows

package toolchain

import (
	"os/exec"
)

// setPlatformProcessGroup configures platform-specific process attributes.
// On Windows, we don't set up process groups the same way as Unix.
// The CommandContext will handle termination via TerminateProcess.
func setPlatformProcessGroup(cmd *exec.Cmd) {
	// Windows doesn't use Unix-style process groups
}

// killProcessGroup kills the process and its children.
// On Windows, we rely on the default behavior of Process.Kill()
// which calls TerminateProcess.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

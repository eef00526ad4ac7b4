// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for the toolchain runner and prerequisite checker

package tests

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/toolchain"
)

func TestRunnerCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell utilities")
	}

	runner := toolchain.NewRunner(&toolchain.RunnerConfig{
		WorkingDir: t.TempDir(),
		Timeout:    10 * time.Second,
	})

	result := runner.Run(context.Background(), "sh", "-c", "echo out; echo err >&2")

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "out")
	assert.Contains(t, result.Stderr, "err")
	assert.Contains(t, result.Combined(), "out")
	assert.Contains(t, result.Combined(), "err")
}

func TestRunnerReportsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell utilities")
	}

	runner := toolchain.NewRunner(&toolchain.RunnerConfig{WorkingDir: t.TempDir()})
	result := runner.Run(context.Background(), "sh", "-c", "exit 3")

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.ExitCode)
	assert.Error(t, result.Error)
}

func TestRunnerTimeoutKillsProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell utilities")
	}

	runner := toolchain.NewRunner(&toolchain.RunnerConfig{
		WorkingDir: t.TempDir(),
		Timeout:    200 * time.Millisecond,
	})

	start := time.Now()
	result := runner.Run(context.Background(), "sh", "-c", "sleep 30")

	assert.False(t, result.Success)
	assert.True(t, result.TimedOut)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestRunnerMissingCommand(t *testing.T) {
	runner := toolchain.NewRunner(nil)
	result := runner.Run(context.Background(), "definitely-not-a-command-xyz")

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestCheckerFindsShellUtilities(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix shell utilities")
	}

	checker := toolchain.NewCheckerWithTools(map[string]*toolchain.Tool{
		"sh": {Name: "sh", Command: "sh", Required: true},
	})

	status := checker.CheckTool("sh")
	assert.True(t, status.Found)
	assert.NotEmpty(t, status.Path)
}

func TestCheckerReportsMissingTools(t *testing.T) {
	checker := toolchain.NewCheckerWithTools(map[string]*toolchain.Tool{
		"rustc": {
			Name:         "rustc",
			Command:      "definitely-not-installed-xyz",
			Required:     true,
			InstallGuide: "install it from rustup",
		},
	})

	status := checker.CheckTool("rustc")
	assert.False(t, status.Found)
	assert.Contains(t, checker.GetInstallGuide("rustc"), "rustup")
}

func TestDefaultToolsCoverSolanaStack(t *testing.T) {
	tools := toolchain.DefaultTools()
	for _, name := range []string{"rustc", "cargo", "solana", "anchor"} {
		require.Contains(t, tools, name)
		assert.NotEmpty(t, tools[name].InstallGuide)
	}
	assert.True(t, tools["cargo"].Required)
	assert.False(t, tools["anchor"].Required)
}

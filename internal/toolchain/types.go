// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Toolchain types and interfaces

package toolchain

import (
	"time"
)

// DefaultCommandTimeout is the default timeout for a single toolchain command
const DefaultCommandTimeout = 5 * time.Minute

// MaxCommandTimeout is the maximum allowed timeout for a single command
const MaxCommandTimeout = 30 * time.Minute

// CommandResult contains the raw result of running a toolchain command
type CommandResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	TimedOut bool
	Error    error
}

// Combined returns stdout and stderr joined, for diagnostics extraction
func (r *CommandResult) Combined() string {
	if r.Stdout == "" {
		return r.Stderr
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}

// RunnerConfig configures the command runner
type RunnerConfig struct {
	WorkingDir string        // Directory commands run in (the project root)
	Timeout    time.Duration // Timeout per command
	Env        []string      // Extra environment variables, KEY=VALUE form
	Verbose    bool          // Stream command output to the terminal
}

// BuildOutcome is the result of one build attempt
type BuildOutcome struct {
	Success  bool
	Command  string
	Logs     string
	Artifact string // Path to the compiled .so, relative to project root
}

// CheckOutcome is the result of one cargo check pass
type CheckOutcome struct {
	Success bool
	Logs    string
}

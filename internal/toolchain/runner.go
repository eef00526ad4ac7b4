// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Toolchain command executor with timeout and captured output

package toolchain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Runner executes toolchain commands in a fixed working directory
type Runner struct {
	config *RunnerConfig
}

// NewRunner creates a command runner
func NewRunner(config *RunnerConfig) *Runner {
	if config == nil {
		config = &RunnerConfig{}
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultCommandTimeout
	}
	if config.Timeout > MaxCommandTimeout {
		config.Timeout = MaxCommandTimeout
	}
	return &Runner{config: config}
}

// Run executes a command with arguments, capturing stdout and stderr.
// The command is killed along with any children when the timeout or
// the passed context expires.
func (r *Runner) Run(ctx context.Context, name string, args ...string) *CommandResult {
	result := &CommandResult{}
	startTime := time.Now()

	cmdCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, name, args...)
	cmd.Dir = r.config.WorkingDir
	cmd.Env = append(os.Environ(), r.config.Env...)
	setPlatformProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		result.Error = fmt.Errorf("failed to create stdout pipe: %w", err)
		return result
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		result.Error = fmt.Errorf("failed to create stderr pipe: %w", err)
		return result
	}

	if err := cmd.Start(); err != nil {
		result.Error = fmt.Errorf("failed to start %s: %w", name, err)
		return result
	}

	var stdoutBuf, stderrBuf strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		r.streamOutput(stdout, &stdoutBuf, os.Stdout)
	}()
	go func() {
		defer wg.Done()
		r.streamOutput(stderr, &stderrBuf, os.Stderr)
	}()

	wg.Wait()
	err = cmd.Wait()

	result.Stdout = stdoutBuf.String()
	result.Stderr = stderrBuf.String()
	result.Duration = time.Since(startTime)

	if err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			result.TimedOut = true
			result.Error = fmt.Errorf("%s timed out after %v", name, r.config.Timeout)
		} else if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			result.Error = fmt.Errorf("%s exited with code %d", name, result.ExitCode)
		} else {
			result.Error = err
		}
		return result
	}

	result.Success = true
	result.ExitCode = 0
	return result
}

// streamOutput reads command output into a buffer, echoing each line
// to the terminal when verbose mode is on
func (r *Runner) streamOutput(pipe io.Reader, buf *strings.Builder, terminal io.Writer) {
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteString("\n")
		if r.config.Verbose {
			fmt.Fprintln(terminal, line)
		}
	}
}

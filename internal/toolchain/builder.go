// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Anchor and cargo build drivers with artifact discovery

package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SBFTarget is the Solana BPF compilation target used for type checking
const SBFTarget = "sbf-solana-solana"

// Builder drives the Solana toolchain against one project directory
type Builder struct {
	runner      *Runner
	projectRoot string
}

// NewBuilder creates a builder rooted at the project directory.
// When sbfRoot is non-empty it is exported as PLATFORM_TOOLS_DIR so
// anchor picks up a pre-installed SBF toolchain instead of downloading one.
func NewBuilder(runner *Runner, projectRoot, sbfRoot string) *Builder {
	if sbfRoot != "" {
		runner.config.Env = append(runner.config.Env, "PLATFORM_TOOLS_DIR="+sbfRoot)
	}
	return &Builder{
		runner:      runner,
		projectRoot: projectRoot,
	}
}

// CargoCheck type-checks the program against the SBF target without
// producing an artifact. Faster than a full build, catches most
// generated-code errors.
func (b *Builder) CargoCheck(ctx context.Context) *CheckOutcome {
	result := b.runner.Run(ctx, "cargo", "check", "--target", SBFTarget, "--quiet")
	return &CheckOutcome{
		Success: result.Success,
		Logs:    result.Combined(),
	}
}

// Build compiles the program. anchor build is tried first since the
// generated projects are Anchor workspaces; when anchor is not on the
// PATH the raw cargo build-sbf path is used instead.
func (b *Builder) Build(ctx context.Context) *BuildOutcome {
	if IsInstalled("anchor") {
		return b.runBuild(ctx, "anchor", "build")
	}
	return b.runBuild(ctx, "cargo", "build-sbf")
}

func (b *Builder) runBuild(ctx context.Context, name string, args ...string) *BuildOutcome {
	result := b.runner.Run(ctx, name, args...)
	outcome := &BuildOutcome{
		Success: result.Success,
		Command: name,
		Logs:    result.Combined(),
	}
	if result.Error != nil && outcome.Logs == "" {
		outcome.Logs = result.Error.Error()
	}

	if outcome.Success {
		artifact, err := b.findArtifact()
		if err != nil {
			// A build that produced no artifact did not really succeed.
			outcome.Success = false
			outcome.Logs = fmt.Sprintf("%s\n%v", outcome.Logs, err)
			return outcome
		}
		outcome.Artifact = artifact
	}
	return outcome
}

// findArtifact locates the compiled program under target/deploy
func (b *Builder) findArtifact() (string, error) {
	deployDir := filepath.Join(b.projectRoot, "target", "deploy")
	entries, err := os.ReadDir(deployDir)
	if err != nil {
		return "", fmt.Errorf("build produced no target/deploy directory: %w", err)
	}

	var artifacts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".so" {
			artifacts = append(artifacts, entry.Name())
		}
	}
	if len(artifacts) == 0 {
		return "", fmt.Errorf("no .so artifact found in target/deploy")
	}
	sort.Strings(artifacts)
	return filepath.ToSlash(filepath.Join("target", "deploy", artifacts[0])), nil
}

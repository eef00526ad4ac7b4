// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for the validation and build stages

package tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/pipeline"
	"github.com/sony-level/lamport/internal/project"
	"github.com/sony-level/lamport/internal/security"
	"github.com/sony-level/lamport/internal/state"
	"github.com/sony-level/lamport/internal/toolchain"
	"github.com/sony-level/lamport/internal/validate"
)

func newStageProject(t *testing.T) *project.Project {
	t.Helper()
	proj, err := project.New(&project.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, proj.InitRepo())
	return proj
}

func anchorFiles() map[string]string {
	return map[string]string{
		"Anchor.toml":           "[provider]",
		"Cargo.toml":            "[workspace]",
		"programs/t/Cargo.toml": "[package]\n[dependencies]\nanchor-lang = \"0.30\"",
		"programs/t/src/lib.rs": "use anchor_lang::prelude::*;\n\npub fn handler() {}",
	}
}

func TestValidateStageWritesAndPasses(t *testing.T) {
	proj := newStageProject(t)
	stage := pipeline.NewValidateStage(proj,
		security.NewPolicyChecker(security.DefaultPolicy()),
		validate.New(nil), nil)

	st := state.New("a token", "t", proj.Root)
	st.Files = anchorFiles()

	delta, err := stage.Run(context.Background(), st)
	require.NoError(t, err)
	require.NotNil(t, delta.Validation)
	assert.True(t, delta.Validation.Passed)

	// Files landed on disk inside the project root.
	data, err := os.ReadFile(filepath.Join(proj.Root, "programs", "t", "src", "lib.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "anchor_lang")
}

func TestValidateStagePolicyViolationFailsValidation(t *testing.T) {
	proj := newStageProject(t)
	stage := pipeline.NewValidateStage(proj,
		security.NewPolicyChecker(security.DefaultPolicy()),
		validate.New(nil), nil)

	st := state.New("a token", "t", proj.Root)
	st.Files = anchorFiles()
	st.Files["../escape.rs"] = "bad"

	delta, err := stage.Run(context.Background(), st)
	require.NoError(t, err, "a policy violation is a validation failure, not a stage error")
	require.NotNil(t, delta.Validation)
	assert.False(t, delta.Validation.Passed)
	assert.NotEmpty(t, delta.Validation.Errors)

	// Nothing was written, including the valid entries.
	_, statErr := os.Stat(filepath.Join(proj.Root, "Anchor.toml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidateStageCommitsIterations(t *testing.T) {
	proj := newStageProject(t)
	stage := pipeline.NewValidateStage(proj,
		security.NewPolicyChecker(security.DefaultPolicy()),
		validate.New(nil), nil)

	st := state.New("a token", "t", proj.Root)
	st.Files = anchorFiles()

	_, err := stage.Run(context.Background(), st)
	require.NoError(t, err)

	// Second pass simulates a repair iteration.
	st.RetryCount = 1
	st.Files["programs/t/src/lib.rs"] = "use anchor_lang::prelude::*;\n\npub fn handler() { /* fixed */ }"
	_, err = stage.Run(context.Background(), st)
	require.NoError(t, err)

	// Both iterations are committed; no error means the history exists.
	hash, err := proj.Commit("should be a no-op")
	require.NoError(t, err)
	assert.Empty(t, hash, "the repair iteration must already be committed")
}

// stubBuilder scripts build outcomes
type stubBuilder struct {
	outcome *toolchain.BuildOutcome
}

func (s *stubBuilder) Build(_ context.Context) *toolchain.BuildOutcome {
	return s.outcome
}

func TestBuildStageRecordsOutcome(t *testing.T) {
	stage := pipeline.NewBuildStage(&stubBuilder{outcome: &toolchain.BuildOutcome{
		Success:  true,
		Command:  "anchor",
		Artifact: "target/deploy/t.so",
	}}, nil)

	delta, err := stage.Run(context.Background(), state.New("a token", "t", "/tmp/t"))
	require.NoError(t, err)
	require.NotNil(t, delta.Build)
	assert.True(t, delta.Build.Success)
	assert.Equal(t, "target/deploy/t.so", delta.Build.Artifact)
}

func TestBuildStageFailureCarriesLogs(t *testing.T) {
	stage := pipeline.NewBuildStage(&stubBuilder{outcome: &toolchain.BuildOutcome{
		Success: false,
		Command: "cargo",
		Logs:    "error[E0432]: unresolved import",
	}}, nil)

	delta, err := stage.Run(context.Background(), state.New("a token", "t", "/tmp/t"))
	require.NoError(t, err)
	require.NotNil(t, delta.Build)
	assert.False(t, delta.Build.Success)
	assert.Contains(t, delta.Build.Logs, "E0432")
}

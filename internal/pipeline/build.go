// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Build stage: compile the validated project

package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sony-level/lamport/internal/state"
	"github.com/sony-level/lamport/internal/toolchain"
)

// ProgramBuilder compiles the project. Satisfied by toolchain.Builder;
// tests substitute a stub.
type ProgramBuilder interface {
	Build(ctx context.Context) *toolchain.BuildOutcome
}

// BuildStage compiles the on-disk project and records the outcome
type BuildStage struct {
	builder ProgramBuilder
	log     *zap.Logger
}

// NewBuildStage creates the build stage
func NewBuildStage(builder ProgramBuilder, log *zap.Logger) *BuildStage {
	if log == nil {
		log = zap.NewNop()
	}
	return &BuildStage{builder: builder, log: log}
}

func (s *BuildStage) Name() string { return "build_contract" }

func (s *BuildStage) AllowedFields() state.FieldSet {
	return state.NewFieldSet(state.FieldBuild)
}

func (s *BuildStage) Run(ctx context.Context, st *state.WorkflowState) (*state.Delta, error) {
	outcome := s.builder.Build(ctx)
	if outcome.Success {
		s.log.Info("build succeeded",
			zap.String("command", outcome.Command),
			zap.String("artifact", outcome.Artifact))
	} else {
		s.log.Debug("build failed", zap.String("command", outcome.Command))
	}

	return &state.Delta{
		Build: &state.BuildResult{
			Success:  outcome.Success,
			Logs:     outcome.Logs,
			Artifact: outcome.Artifact,
		},
	}, nil
}

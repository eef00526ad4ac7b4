// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Validation stage: policy check, write to disk, static validation

package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sony-level/lamport/internal/project"
	"github.com/sony-level/lamport/internal/security"
	"github.com/sony-level/lamport/internal/state"
	"github.com/sony-level/lamport/internal/validate"
)

// ValidateStage materializes the in-state file set into the project
// directory and runs static validation over it. File policy failures
// surface as validation errors so the repair stage gets a chance at
// them instead of killing the run.
type ValidateStage struct {
	project   *project.Project
	policy    *security.PolicyChecker
	validator *validate.Validator
	log       *zap.Logger
}

// NewValidateStage creates the validation stage
func NewValidateStage(proj *project.Project, policy *security.PolicyChecker, validator *validate.Validator, log *zap.Logger) *ValidateStage {
	if log == nil {
		log = zap.NewNop()
	}
	return &ValidateStage{
		project:   proj,
		policy:    policy,
		validator: validator,
		log:       log,
	}
}

func (s *ValidateStage) Name() string { return "static_validator" }

func (s *ValidateStage) AllowedFields() state.FieldSet {
	return state.NewFieldSet(state.FieldValidation)
}

func (s *ValidateStage) Run(ctx context.Context, st *state.WorkflowState) (*state.Delta, error) {
	check := s.policy.CheckFileSet(st.Files)
	for _, w := range check.Warnings {
		s.log.Warn("file policy warning", zap.String("detail", w))
	}
	if len(check.Errors) > 0 {
		return &state.Delta{
			Validation: &state.ValidationResult{
				Passed: false,
				Errors: check.Errors,
			},
		}, nil
	}

	if st.RetryCount > 0 {
		s.logPatchDiffs(st.Files)
	}

	written, err := s.project.WriteFiles(st.Files)
	if err != nil {
		return nil, fmt.Errorf("static_validator: failed to write project files: %w", err)
	}
	s.log.Debug("wrote project files", zap.Int("count", len(written)))

	s.commit(st)

	result := s.validator.Validate(ctx, st.Files)
	return &state.Delta{
		Validation: &state.ValidationResult{
			Passed: result.Passed,
			Errors: result.Errors,
			Logs:   result.Logs,
		},
	}, nil
}

// logPatchDiffs records what a repair iteration changed relative to
// the tree on disk
func (s *ValidateStage) logPatchDiffs(files map[string]string) {
	for path, after := range files {
		before, err := s.project.ReadFile(path)
		if err != nil || string(before) == after {
			continue
		}
		added, removed := project.DiffStats(string(before), after)
		s.log.Info("patched file",
			zap.String("path", path),
			zap.Int("added", added),
			zap.Int("removed", removed))
		if diff := project.RenderDiff(path, string(before), after); diff != "" {
			s.log.Debug("patch diff for " + path + "\n" + diff)
		}
	}
}

// commit records this iteration of the tree. Versioning is best
// effort; a git failure never fails the run.
func (s *ValidateStage) commit(st *state.WorkflowState) {
	msg := "generate: initial project"
	if st.RetryCount > 0 {
		msg = fmt.Sprintf("repair attempt %d", st.RetryCount)
	}
	hash, err := s.project.Commit(msg)
	if err != nil {
		s.log.Warn("failed to commit project iteration", zap.Error(err))
		return
	}
	if hash != "" {
		s.log.Debug("committed project iteration", zap.String("hash", hash), zap.String("message", msg))
	}
}

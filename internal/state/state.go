// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workflow state container with protected control fields

package state

import (
	"fmt"

	"github.com/sony-level/lamport/internal/spec"
)

// Phase identifies a position in the pipeline
type Phase string

const (
	PhaseInterpret Phase = "interpret"
	PhasePlan      Phase = "plan"
	PhaseGenerate  Phase = "generate"
	PhaseValidate  Phase = "validate"
	PhaseBuild     Phase = "build"
	PhaseRepair    Phase = "repair"

	// Terminal phases - no transitions leave these
	PhaseBuilt   Phase = "built"
	PhaseAborted Phase = "aborted"
)

// IsTerminal reports whether the phase ends the run
func (p Phase) IsTerminal() bool {
	return p == PhaseBuilt || p == PhaseAborted
}

// ValidationResult is the outcome of the static validation stage
type ValidationResult struct {
	Passed bool
	Errors []string
	Logs   string
}

// BuildResult is the outcome of the build stage
type BuildResult struct {
	Success  bool
	Logs     string
	Artifact string
}

// WorkflowState carries the request and all intermediate artifacts
// through the pipeline. UserSpec, ProjectRoot and RetryCount are
// protected: only the engine may set them, never a stage delta.
type WorkflowState struct {
	UserSpec    string
	ProjectName string
	Spec        *spec.ContractSpec
	Files       map[string]string
	Validation  *ValidationResult
	Build       *BuildResult

	Phase       Phase
	RetryCount  int
	ProjectRoot string
	ErrMessage  string
}

// New creates the initial state for a run
func New(userSpec, projectName, projectRoot string) *WorkflowState {
	return &WorkflowState{
		UserSpec:    userSpec,
		ProjectName: projectName,
		ProjectRoot: projectRoot,
		Phase:       PhaseInterpret,
		Files:       make(map[string]string),
	}
}

// Clone returns a deep copy so stages never observe shared mutation
func (s *WorkflowState) Clone() *WorkflowState {
	if s == nil {
		return nil
	}

	dup := *s

	dup.Files = make(map[string]string, len(s.Files))
	for k, v := range s.Files {
		dup.Files[k] = v
	}

	if s.Spec != nil {
		specCopy := *s.Spec
		specCopy.Features = append([]spec.Feature(nil), s.Spec.Features...)
		if s.Spec.InitialSupply != nil {
			supply := *s.Spec.InitialSupply
			specCopy.InitialSupply = &supply
		}
		dup.Spec = &specCopy
	}

	if s.Validation != nil {
		v := *s.Validation
		v.Errors = append([]string(nil), s.Validation.Errors...)
		dup.Validation = &v
	}

	if s.Build != nil {
		b := *s.Build
		dup.Build = &b
	}

	return &dup
}

// LastDiagnostic returns the most relevant failure text for reporting
// and for the repair stage's prompt.
func (s *WorkflowState) LastDiagnostic() string {
	if s.Build != nil && !s.Build.Success && s.Build.Logs != "" {
		return s.Build.Logs
	}
	if s.Validation != nil && !s.Validation.Passed && len(s.Validation.Errors) > 0 {
		return joinLines(s.Validation.Errors)
	}
	return s.ErrMessage
}

func (s *WorkflowState) String() string {
	return fmt.Sprintf("WorkflowState{Phase: %s, Files: %d, Retries: %d}", s.Phase, len(s.Files), s.RetryCount)
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

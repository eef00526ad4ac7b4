// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Allow-list merge of stage outputs into workflow state

package state

import (
	"github.com/sony-level/lamport/internal/spec"
)

// Field names a mergeable state field. Protected fields (UserSpec,
// ProjectRoot, RetryCount) deliberately have no Field constant: a
// delta cannot express them.
type Field string

const (
	FieldSpec        Field = "spec"
	FieldProjectName Field = "project_name"
	FieldFiles       Field = "files"
	FieldValidation  Field = "validation"
	FieldBuild       Field = "build"
)

// FieldSet is a stage's merge allow-list
type FieldSet map[Field]bool

// NewFieldSet builds a FieldSet from the given fields
func NewFieldSet(fields ...Field) FieldSet {
	fs := make(FieldSet, len(fields))
	for _, f := range fields {
		fs[f] = true
	}
	return fs
}

// Delta is a stage's proposed state change. Nil pointer fields and the
// empty string mean "no change".
type Delta struct {
	Spec        *spec.ContractSpec
	ProjectName string
	Files       map[string]string
	Validation  *ValidationResult
	Build       *BuildResult
}

// Violation records a delta field that a stage was not allowed to set
type Violation struct {
	Field Field
}

// Merge applies a delta to a copy of the state, honoring the stage's
// allow-list. Disallowed fields are dropped and reported as violations,
// never applied. The receiver is not modified.
func (s *WorkflowState) Merge(d *Delta, allowed FieldSet) (*WorkflowState, []Violation) {
	next := s.Clone()
	if d == nil {
		return next, nil
	}

	var violations []Violation
	reject := func(f Field) { violations = append(violations, Violation{Field: f}) }

	if d.Spec != nil {
		if allowed[FieldSpec] {
			next.Spec = d.Spec
		} else {
			reject(FieldSpec)
		}
	}

	if d.ProjectName != "" {
		if allowed[FieldProjectName] {
			next.ProjectName = d.ProjectName
		} else {
			reject(FieldProjectName)
		}
	}

	if len(d.Files) > 0 {
		if allowed[FieldFiles] {
			// Files merge over existing entries rather than replacing
			// the whole set: the generator layers over the scaffold,
			// and repair patches touch a subset.
			for path, content := range d.Files {
				next.Files[path] = content
			}
		} else {
			reject(FieldFiles)
		}
	}

	if d.Validation != nil {
		if allowed[FieldValidation] {
			next.Validation = d.Validation
		} else {
			reject(FieldValidation)
		}
	}

	if d.Build != nil {
		if allowed[FieldBuild] {
			next.Build = d.Build
		} else {
			reject(FieldBuild)
		}
	}

	return next, violations
}

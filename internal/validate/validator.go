// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Static validator combining local checks with cargo check

package validate

import (
	"context"

	"github.com/sony-level/lamport/internal/toolchain"
)

// SBFChecker runs the compiler-level check. Satisfied by
// toolchain.Builder; tests substitute a stub.
type SBFChecker interface {
	CargoCheck(ctx context.Context) *toolchain.CheckOutcome
}

// Validator runs static validation over a generated file set
type Validator struct {
	checks  []Check
	checker SBFChecker
}

// New creates a validator with the default local checks. checker may
// be nil, in which case only local checks run.
func New(checker SBFChecker) *Validator {
	return &Validator{
		checks: []Check{
			RustSyntaxCheck{},
			AnchorStructureCheck{},
			CargoManifestCheck{},
		},
		checker: checker,
	}
}

// NewWithChecks creates a validator with a custom check list
func NewWithChecks(checker SBFChecker, checks []Check) *Validator {
	return &Validator{checks: checks, checker: checker}
}

// Validate runs local checks first and stops there when they fail;
// cargo check only runs against a structurally sound file set.
func (v *Validator) Validate(ctx context.Context, files map[string]string) *Result {
	if len(files) == 0 {
		return &Result{
			Passed: false,
			Errors: []string{"No files to validate"},
		}
	}

	var errors []string
	for _, check := range v.checks {
		errors = append(errors, check.Run(files)...)
	}
	if len(errors) > 0 {
		return &Result{Passed: false, Errors: errors}
	}

	if v.checker == nil {
		return &Result{Passed: true}
	}

	outcome := v.checker.CargoCheck(ctx)
	if !outcome.Success {
		return &Result{
			Passed: false,
			Errors: ExtractErrors(outcome.Logs),
			Logs:   outcome.Logs,
		}
	}
	return &Result{Passed: true, Logs: outcome.Logs}
}

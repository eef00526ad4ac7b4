// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Spec interpreter stage: natural language to structured contract spec

package agent

import (
	"context"
	"fmt"

	"github.com/sony-level/lamport/internal/spec"
	"github.com/sony-level/lamport/internal/state"
)

// Interpreter converts the user's natural-language request into a
// validated ContractSpec and derives the project name from it
type Interpreter struct {
	base
}

// NewInterpreter creates the spec interpreter stage
func NewInterpreter(opts Options) *Interpreter {
	return &Interpreter{base: newBase(opts)}
}

func (a *Interpreter) Name() string { return "spec_interpreter" }

func (a *Interpreter) AllowedFields() state.FieldSet {
	return state.NewFieldSet(state.FieldSpec, state.FieldProjectName)
}

func (a *Interpreter) Run(ctx context.Context, st *state.WorkflowState) (*state.Delta, error) {
	if st.UserSpec == "" {
		return nil, fmt.Errorf("spec_interpreter: no user specification provided")
	}

	prompt := fmt.Sprintf("Interpret this specification:\n\n%s", st.UserSpec)
	content, err := a.complete(ctx, a.Name(), interpreterSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	contractSpec, err := spec.ParseContractSpec(content)
	if err != nil {
		return nil, fmt.Errorf("spec_interpreter: failed to parse interpretation: %w", err)
	}
	if err := contractSpec.Validate(); err != nil {
		return nil, fmt.Errorf("spec_interpreter: invalid spec: %w", err)
	}

	return &state.Delta{
		Spec:        contractSpec,
		ProjectName: spec.DeriveProjectName(contractSpec.Name),
	}, nil
}

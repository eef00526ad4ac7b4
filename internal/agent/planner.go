// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Project planner stage: Anchor workspace scaffold

package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sony-level/lamport/internal/spec"
	"github.com/sony-level/lamport/internal/state"
)

// Planner designs the Anchor workspace layout for the interpreted spec
type Planner struct {
	base
}

// NewPlanner creates the project planner stage
func NewPlanner(opts Options) *Planner {
	return &Planner{base: newBase(opts)}
}

func (a *Planner) Name() string { return "project_planner" }

func (a *Planner) AllowedFields() state.FieldSet {
	return state.NewFieldSet(state.FieldFiles)
}

func (a *Planner) Run(ctx context.Context, st *state.WorkflowState) (*state.Delta, error) {
	if st.Spec == nil {
		return nil, fmt.Errorf("project_planner: no interpreted spec in state")
	}

	specJSON, err := json.MarshalIndent(st.Spec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("project_planner: failed to encode spec: %w", err)
	}

	prompt := fmt.Sprintf("Create Anchor project structure for:\n\n%s", specJSON)
	content, err := a.complete(ctx, a.Name(), plannerSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	files, err := spec.ParseFileSet(content)
	if err != nil {
		return nil, fmt.Errorf("project_planner: failed to extract project structure: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("project_planner: model returned an empty scaffold")
	}

	return &state.Delta{Files: files}, nil
}

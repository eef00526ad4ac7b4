// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Code generator stage: Rust instruction implementations

package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sony-level/lamport/internal/spec"
	"github.com/sony-level/lamport/internal/state"
)

// Generator writes the instruction handlers over the planner's scaffold
type Generator struct {
	base
}

// NewGenerator creates the code generator stage
func NewGenerator(opts Options) *Generator {
	return &Generator{base: newBase(opts)}
}

func (a *Generator) Name() string { return "code_generator" }

func (a *Generator) AllowedFields() state.FieldSet {
	return state.NewFieldSet(state.FieldFiles)
}

func (a *Generator) Run(ctx context.Context, st *state.WorkflowState) (*state.Delta, error) {
	if st.Spec == nil {
		return nil, fmt.Errorf("code_generator: no interpreted spec in state")
	}
	if len(st.Files) == 0 {
		return nil, fmt.Errorf("code_generator: no scaffold files in state")
	}

	prompt := fmt.Sprintf(`Generate Rust instruction implementations for:

Token: %s (%s)
Features: %s

Existing files:
%s

Write complete Rust code for all instruction handlers. Split into proper files.`,
		st.Spec.Name, st.Spec.Symbol, featureList(st.Spec), fileSummary(st.Files))

	content, err := a.complete(ctx, a.Name(), generatorSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	files, err := spec.ParseFileSet(content)
	if err != nil {
		return nil, fmt.Errorf("code_generator: failed to extract generated code: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("code_generator: model returned no files")
	}

	// The merge layers these over the scaffold; untouched scaffold
	// files survive.
	return &state.Delta{Files: files}, nil
}

func featureList(s *spec.ContractSpec) string {
	names := make([]string, len(s.Features))
	for i, f := range s.Features {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func fileSummary(files map[string]string) string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	var sb strings.Builder
	for _, p := range paths {
		sb.WriteString("- ")
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

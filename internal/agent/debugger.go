// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Debugger stage: turns diagnostics into file patches

package agent

import (
	"context"
	"fmt"

	"github.com/sony-level/lamport/internal/spec"
	"github.com/sony-level/lamport/internal/state"
)

// Debugger analyzes the last failure and proposes patched files. It
// runs as the repair stage; its output re-enters validation.
type Debugger struct {
	base
}

// NewDebugger creates the debugger stage
func NewDebugger(opts Options) *Debugger {
	return &Debugger{base: newBase(opts)}
}

func (a *Debugger) Name() string { return "debugger" }

func (a *Debugger) AllowedFields() state.FieldSet {
	return state.NewFieldSet(state.FieldFiles)
}

func (a *Debugger) Run(ctx context.Context, st *state.WorkflowState) (*state.Delta, error) {
	errorInfo := formatDiagnostics(st)
	if errorInfo == "" {
		errorInfo = "Unknown error - no error information available"
	}

	prompt := fmt.Sprintf(`Analyze and fix these errors:

%s

Current project files:
%s

Return patches to fix the issues as a JSON object.`, errorInfo, fileSummary(st.Files))

	content, err := a.complete(ctx, a.Name(), debuggerSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	patches, err := spec.ParsePatches(content)
	if err != nil {
		return nil, fmt.Errorf("debugger: failed to extract patches: %w", err)
	}
	if len(patches) == 0 {
		return nil, fmt.Errorf("debugger: model returned no patches")
	}

	files := make(map[string]string, len(patches))
	for _, p := range patches {
		if p.Path == "" || p.Content == "" {
			continue
		}
		files[p.Path] = p.Content
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("debugger: all patches were empty")
	}

	return &state.Delta{Files: files}, nil
}

func formatDiagnostics(st *state.WorkflowState) string {
	var info string
	if st.Validation != nil && !st.Validation.Passed && len(st.Validation.Errors) > 0 {
		info += "Validation errors:\n"
		for _, e := range st.Validation.Errors {
			info += e + "\n"
		}
	}
	if st.Build != nil && !st.Build.Success && st.Build.Logs != "" {
		info += "\nBuild logs:\n" + st.Build.Logs
	}
	if st.ErrMessage != "" {
		info += "\nError: " + st.ErrMessage
	}
	return info
}

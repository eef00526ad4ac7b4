// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for static validation

package tests

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/toolchain"
	"github.com/sony-level/lamport/internal/validate"
)

// stubChecker scripts the cargo check outcome and records invocations
type stubChecker struct {
	calls   int
	success bool
	logs    string
}

func (s *stubChecker) CargoCheck(_ context.Context) *toolchain.CheckOutcome {
	s.calls++
	return &toolchain.CheckOutcome{Success: s.success, Logs: s.logs}
}

func goodFileSet() map[string]string {
	return map[string]string{
		"Anchor.toml":                      "[provider]\ncluster = \"localnet\"",
		"Cargo.toml":                       "[workspace]\nmembers = [\"programs/*\"]",
		"programs/t/Cargo.toml":            "[package]\n[lib]\n[dependencies]\nanchor-lang = \"0.30\"",
		"programs/t/src/lib.rs":            "use anchor_lang::prelude::*;\n\n#[program]\npub mod t {}",
		"programs/t/src/instructions/m.rs": "use anchor_lang::prelude::*;\npub fn mint() {}",
	}
}

func TestValidatePassesCleanProject(t *testing.T) {
	checker := &stubChecker{success: true, logs: "Finished"}
	v := validate.New(checker)

	result := v.Validate(context.Background(), goodFileSet())

	assert.True(t, result.Passed)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, checker.calls)
}

func TestValidateEmptyFileSet(t *testing.T) {
	checker := &stubChecker{success: true}
	result := validate.New(checker).Validate(context.Background(), nil)

	assert.False(t, result.Passed)
	assert.Equal(t, 0, checker.calls)
}

func TestLocalFailuresSkipCargoCheck(t *testing.T) {
	files := goodFileSet()
	files["programs/t/src/lib.rs"] = "use anchor_lang::prelude::*;\nfn broken() {" // unbalanced

	checker := &stubChecker{success: true}
	result := validate.New(checker).Validate(context.Background(), files)

	assert.False(t, result.Passed)
	assert.Equal(t, 0, checker.calls, "cargo check must not run against a structurally broken tree")
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Mismatched braces")
}

func TestRustSyntaxCheck(t *testing.T) {
	check := validate.RustSyntaxCheck{}

	errs := check.Run(map[string]string{
		"a.rs": "use anchor_lang::prelude::*;\nfn f() { (ok) }",
	})
	assert.Empty(t, errs)

	errs = check.Run(map[string]string{
		"bad.rs": "fn f() { [unclosed }",
	})
	// Mismatched brackets and a missing anchor import.
	assert.Len(t, errs, 2)

	// Non-Rust files are not inspected.
	errs = check.Run(map[string]string{"Cargo.toml": "{{{"})
	assert.Empty(t, errs)
}

func TestAnchorStructureCheck(t *testing.T) {
	check := validate.AnchorStructureCheck{}

	errs := check.Run(map[string]string{"src/main.rs": "x"})
	assert.Len(t, errs, 3)

	errs = check.Run(goodFileSet())
	assert.Empty(t, errs)
}

func TestCargoManifestCheck(t *testing.T) {
	check := validate.CargoManifestCheck{}

	errs := check.Run(map[string]string{
		"programs/t/Cargo.toml": "[dependencies]\nserde = \"1\"",
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "anchor-lang")

	// The workspace root manifest does not need anchor-lang.
	errs = check.Run(map[string]string{
		"Cargo.toml": "[workspace]\n[dependencies]",
	})
	assert.Empty(t, errs)
}

func TestValidateSurfacesCompilerErrors(t *testing.T) {
	logs := `   Compiling t v0.1.0
error[E0432]: unresolved import ` + "`anchor_spl`" + `
  --> programs/t/src/lib.rs:3:5
error: aborting due to previous error`

	checker := &stubChecker{success: false, logs: logs}
	result := validate.New(checker).Validate(context.Background(), goodFileSet())

	assert.False(t, result.Passed)
	assert.Equal(t, logs, result.Logs)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "error[E0432]")
}

func TestExtractErrorsCapped(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "error: problem number %d\n", i)
	}

	errs := validate.ExtractErrors(sb.String())
	assert.Len(t, errs, validate.MaxReportedErrors)
}

func TestNilCheckerRunsLocalChecksOnly(t *testing.T) {
	result := validate.New(nil).Validate(context.Background(), goodFileSet())
	assert.True(t, result.Passed)
}

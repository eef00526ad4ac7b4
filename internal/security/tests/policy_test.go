// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for the generated-file path policy

package tests

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/security"
)

func newChecker() *security.PolicyChecker {
	return security.NewPolicyChecker(security.DefaultPolicy())
}

func TestCheckPathAcceptsNormalProjectFiles(t *testing.T) {
	checker := newChecker()
	for _, p := range []string{
		"Anchor.toml",
		"Cargo.toml",
		"programs/my_token/src/lib.rs",
		"programs/my_token/src/instructions/mint.rs",
		"tests/my_token.ts",
		"migrations/deploy.js",
	} {
		assert.NoError(t, checker.CheckPath(p), p)
	}
}

func TestCheckPathRejectsEscapes(t *testing.T) {
	checker := newChecker()
	for _, p := range []string{
		"../outside.rs",
		"../../etc/passwd",
		"src/../../escape.rs",
		"/etc/passwd",
		"\\windows\\path.rs",
		"C:\\windows\\path.rs",
		"",
	} {
		assert.Error(t, checker.CheckPath(p), "path %q must be rejected", p)
	}
}

func TestCheckPathRejectsBlockedLocations(t *testing.T) {
	checker := newChecker()
	for _, p := range []string{
		".git/config",
		"target/deploy/fake.so",
		"node_modules/evil/index.js",
		"src/../.git/hooks/post-checkout",
		".gitignore",
	} {
		assert.Error(t, checker.CheckPath(p), "path %q must be rejected", p)
	}
}

func TestCheckPathExtensionPolicy(t *testing.T) {
	checker := newChecker()

	assert.Error(t, checker.CheckPath("script.sh"))
	assert.Error(t, checker.CheckPath("binary.so"))

	// Extension-less files pass with a warning only.
	result := checker.CheckFileSet(map[string]string{"Makefile": "all:"})
	assert.True(t, result.Valid)
	assert.NotEmpty(t, result.Warnings)
}

func TestCheckFileSetLimits(t *testing.T) {
	checker := newChecker()

	result := checker.CheckFileSet(map[string]string{})
	assert.False(t, result.Valid)

	result = checker.CheckFileSet(map[string]string{
		"big.rs": strings.Repeat("x", 1<<20+1),
	})
	assert.False(t, result.Valid)

	many := make(map[string]string)
	for i := 0; i < 201; i++ {
		many["src/f"+strconv.Itoa(i)+".rs"] = "ok"
	}
	require.Greater(t, len(many), 200)
	result = checker.CheckFileSet(many)
	assert.False(t, result.Valid)
}

func TestCheckFileSetReportsEveryBadPath(t *testing.T) {
	checker := newChecker()
	result := checker.CheckFileSet(map[string]string{
		"../escape.rs": "x",
		".git/config":  "x",
		"src/lib.rs":   "fine",
		"Cargo.toml":   "fine",
	})
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
}

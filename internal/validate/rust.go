// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Local Rust syntax and structure checks

package validate

import (
	"fmt"
	"sort"
	"strings"
)

// RustSyntaxCheck catches the coarse syntax breakage LLM output is
// prone to, before spending a cargo invocation on it
type RustSyntaxCheck struct{}

func (RustSyntaxCheck) Name() string { return "rust-syntax" }

func (RustSyntaxCheck) Run(files map[string]string) []string {
	var errors []string
	for _, path := range sortedKeys(files) {
		if !strings.HasSuffix(path, ".rs") {
			continue
		}
		content := files[path]

		if strings.Count(content, "{") != strings.Count(content, "}") {
			errors = append(errors, fmt.Sprintf("%s: Mismatched braces", path))
		}
		if strings.Count(content, "(") != strings.Count(content, ")") {
			errors = append(errors, fmt.Sprintf("%s: Mismatched parentheses", path))
		}
		if strings.Count(content, "[") != strings.Count(content, "]") {
			errors = append(errors, fmt.Sprintf("%s: Mismatched brackets", path))
		}

		if !strings.Contains(content, "use anchor_lang") &&
			!strings.Contains(content, "use solana_program") &&
			!strings.HasPrefix(strings.TrimSpace(content), "//") {
			errors = append(errors, fmt.Sprintf("%s: Missing anchor_lang or solana_program import", path))
		}
	}
	return errors
}

// AnchorStructureCheck verifies the file set looks like an Anchor workspace
type AnchorStructureCheck struct{}

func (AnchorStructureCheck) Name() string { return "anchor-structure" }

func (AnchorStructureCheck) Run(files map[string]string) []string {
	var errors []string

	hasAnchorToml := false
	hasPrograms := false
	hasLibRS := false
	for path := range files {
		if strings.Contains(path, "Anchor.toml") {
			hasAnchorToml = true
		}
		if strings.Contains(path, "programs") {
			hasPrograms = true
		}
		if strings.Contains(path, "lib.rs") {
			hasLibRS = true
		}
	}

	if !hasAnchorToml {
		errors = append(errors, "Missing Anchor.toml configuration")
	}
	if !hasPrograms {
		errors = append(errors, "Missing programs/ directory")
	}
	if !hasLibRS {
		errors = append(errors, "Missing programs/*/src/lib.rs")
	}
	return errors
}

func sortedKeys(files map[string]string) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

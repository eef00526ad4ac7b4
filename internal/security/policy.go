// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Path policy checker for model-generated file sets

package security

import (
	"fmt"
	"path"
	"strings"
)

// PolicyChecker validates generated file paths before anything touches
// the filesystem. Model output is untrusted input; the project root is
// the containment boundary.
type PolicyChecker struct {
	config *PolicyConfig
}

// NewPolicyChecker creates a new policy checker
func NewPolicyChecker(config *PolicyConfig) *PolicyChecker {
	if config == nil {
		config = DefaultPolicy()
	}
	return &PolicyChecker{config: config}
}

// CheckFileSet validates every path and size in a generated file set
func (c *PolicyChecker) CheckFileSet(files map[string]string) *CheckResult {
	result := NewCheckResult()

	if len(files) == 0 {
		result.AddError("generated file set is empty")
		return result
	}
	if c.config.MaxFiles > 0 && len(files) > c.config.MaxFiles {
		result.AddError(fmt.Sprintf("too many generated files: %d (limit %d)", len(files), c.config.MaxFiles))
	}

	for p, content := range files {
		c.checkPath(p, result)

		if c.config.MaxFileSize > 0 && len(content) > c.config.MaxFileSize {
			result.AddError(fmt.Sprintf("%s: file too large (%d bytes, limit %d)", p, len(content), c.config.MaxFileSize))
		}
	}

	return result
}

// CheckPath validates a single relative path against the policy
func (c *PolicyChecker) CheckPath(p string) error {
	result := NewCheckResult()
	c.checkPath(p, result)
	if !result.Valid {
		return fmt.Errorf("%s", result.Errors[0])
	}
	return nil
}

func (c *PolicyChecker) checkPath(p string, result *CheckResult) {
	if p == "" {
		result.AddError("empty file path")
		return
	}

	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "\\") || hasDrivePrefix(p) {
		result.AddError(p + ": absolute paths are not allowed")
		return
	}

	// Clean before prefix checks so "src/../.git/config" is caught.
	clean := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		result.AddError(p + ": path escapes the project root")
		return
	}

	for _, prefix := range c.config.BlockedPrefixes {
		if strings.HasPrefix(clean+"/", prefix) {
			result.AddError(p + ": writes under " + prefix + " are not allowed")
			return
		}
	}

	for _, name := range c.config.BlockedNames {
		if clean == name {
			result.AddError(p + ": file is owned by the scaffolder")
			return
		}
	}

	if len(c.config.AllowedExtensions) > 0 {
		ext := strings.ToLower(path.Ext(clean))
		if ext == "" {
			// Extension-less files (Makefile, LICENSE) pass with a warning.
			result.AddWarning(p + ": file has no extension")
			return
		}
		for _, allowed := range c.config.AllowedExtensions {
			if ext == allowed {
				return
			}
		}
		result.AddError(p + ": extension " + ext + " is not allowed")
	}
}

func hasDrivePrefix(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}

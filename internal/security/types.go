// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Path policy types and configuration

package security

// PolicyConfig holds path policy settings for generated files
type PolicyConfig struct {
	BlockedPrefixes   []string // path prefixes that are never writable
	BlockedNames      []string // exact relative paths that are never writable
	AllowedExtensions []string // extensions generated files may have; empty allows all
	MaxFileSize       int      // bytes per file
	MaxFiles          int      // files per generation
}

// DefaultPolicy returns the default path policy for Anchor projects
func DefaultPolicy() *PolicyConfig {
	return &PolicyConfig{
		BlockedPrefixes: []string{
			".git/",
			"target/",
			"node_modules/",
		},
		BlockedNames: []string{
			".gitignore", // owned by the project scaffolder, not the model
		},
		AllowedExtensions: []string{
			".rs", ".toml", ".ts", ".js", ".json", ".md", ".yaml", ".yml",
		},
		MaxFileSize: 1 << 20, // 1MB
		MaxFiles:    200,
	}
}

// CheckResult is the outcome of checking a file set against policy
type CheckResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// NewCheckResult creates an empty, valid result
func NewCheckResult() *CheckResult {
	return &CheckResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

// AddError adds an error and marks the result invalid
func (r *CheckResult) AddError(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

// AddWarning adds a warning
func (r *CheckResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Static validation types

package validate

// MaxReportedErrors caps the compiler diagnostics carried into repair prompts
const MaxReportedErrors = 20

// Result is the outcome of one validation pass
type Result struct {
	Passed bool
	Errors []string
	Logs   string
}

// Check is one static check over the generated file set
type Check interface {
	Name() string
	Run(files map[string]string) []string
}

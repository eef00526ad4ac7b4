// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Compiler diagnostic extraction

package validate

import (
	"regexp"
	"strings"
)

var errorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`error\[[^\]]+\]: [^\n]+`),
	regexp.MustCompile(`error: [^\n]+`),
	regexp.MustCompile(`--> [^\n]+`),
}

// ExtractErrors pulls the error lines out of compiler output, capped
// at MaxReportedErrors so repair prompts stay focused.
func ExtractErrors(output string) []string {
	var errors []string
	for _, line := range strings.Split(output, "\n") {
		for _, pattern := range errorPatterns {
			if pattern.MatchString(line) {
				errors = append(errors, strings.TrimSpace(line))
				break
			}
		}
		if len(errors) >= MaxReportedErrors {
			break
		}
	}
	return errors
}

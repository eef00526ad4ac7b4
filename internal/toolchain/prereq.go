// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Prerequisite checker for tool existence and versions

package toolchain

import (
	"os/exec"
	"strings"
)

// ToolStatus is the check result for one tool
type ToolStatus struct {
	Name     string
	Found    bool
	Path     string
	Version  string
	Required bool
}

// CheckSummary aggregates tool check results
type CheckSummary struct {
	Results     []ToolStatus
	AllRequired bool // true when every required tool was found
	Missing     []string
}

// Checker verifies toolchain availability
type Checker struct {
	tools map[string]*Tool
}

// NewChecker creates a prerequisite checker over the default tool set
func NewChecker() *Checker {
	return &Checker{tools: DefaultTools()}
}

// NewCheckerWithTools creates a checker with custom tools
func NewCheckerWithTools(tools map[string]*Tool) *Checker {
	return &Checker{tools: tools}
}

// CheckAll checks every known tool
func (c *Checker) CheckAll() *CheckSummary {
	summary := &CheckSummary{AllRequired: true}
	for _, name := range []string{"rustc", "cargo", "solana", "anchor"} {
		tool, ok := c.tools[name]
		if !ok {
			continue
		}
		status := c.CheckTool(tool.Name)
		summary.Results = append(summary.Results, status)
		if !status.Found {
			summary.Missing = append(summary.Missing, tool.Name)
			if tool.Required {
				summary.AllRequired = false
			}
		}
	}
	return summary
}

// CheckTool checks one tool by name
func (c *Checker) CheckTool(name string) ToolStatus {
	status := ToolStatus{Name: name}

	tool, ok := c.tools[strings.ToLower(name)]
	if !ok {
		status.Found = commandExists(name)
		if status.Found {
			status.Path = whichCommand(name)
		}
		return status
	}

	status.Required = tool.Required
	if commandExists(tool.Command) {
		status.Found = true
		status.Path = whichCommand(tool.Command)
		status.Version = getVersion(tool.VersionCmd)
	}
	return status
}

// GetInstallGuide returns installation instructions for a tool
func (c *Checker) GetInstallGuide(name string) string {
	tool, ok := c.tools[strings.ToLower(name)]
	if !ok {
		return "No installation guide available for " + name
	}
	return tool.InstallGuide
}

// FormatMissing returns a formatted block of missing tools with install guides
func (c *Checker) FormatMissing(summary *CheckSummary) string {
	if len(summary.Missing) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Missing tools:\n\n")
	for _, name := range summary.Missing {
		sb.WriteString("─────────────────────────────────\n")
		sb.WriteString(name + "\n")
		sb.WriteString("─────────────────────────────────\n")
		sb.WriteString(c.GetInstallGuide(name))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// IsInstalled checks if a command exists in PATH
func IsInstalled(cmd string) bool {
	return commandExists(cmd)
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

func whichCommand(cmd string) string {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return ""
	}
	return path
}

// getVersion executes a version command and returns the first output line
func getVersion(versionCmd string) string {
	if versionCmd == "" {
		return ""
	}
	parts := strings.Fields(versionCmd)
	if len(parts) == 0 {
		return ""
	}

	out, err := exec.Command(parts[0], parts[1:]...).Output()
	if err != nil {
		return ""
	}
	output := strings.TrimSpace(string(out))
	if idx := strings.Index(output, "\n"); idx > 0 {
		output = output[:idx]
	}
	return output
}

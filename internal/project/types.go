// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Project directory types/constants

package project

const (
	// RunIDPrefix starts every generated run ID
	RunIDPrefix = "lp"
)

// readPatterns limits which generated files are read back before
// validation
var readPatterns = []string{".toml", ".rs", ".ts", ".json"}

// Project is the isolated output directory for a single run
type Project struct {
	RunID   string
	Root    string
	BaseDir string
	keep    bool
}

// Config holds settings for project creation
type Config struct {
	BaseDir    string // parent directory for run directories
	Name       string // optional fixed directory name instead of the run ID
	KeepOnFail bool   // preserve the directory when the run aborts
}

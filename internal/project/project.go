// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Project directory creation and run ID generation

package project

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	// idMutex ensures thread-safe run ID generation
	idMutex sync.Mutex
	// lastTimestamp prevents duplicate IDs in the same minute
	lastTimestamp string
	lastCounter   int
)

// ResetRunIDState resets the global run ID generation state (for testing)
func ResetRunIDState() {
	idMutex.Lock()
	defer idMutex.Unlock()
	lastTimestamp = ""
	lastCounter = 0
}

// GenerateRunID creates a unique run ID with format: lp-YYYYMMDD-HHMM-3hexchars
// or lp-YYYYMMDD-HHMM-NNN (counter format) for rapid successive calls.
// Thread-safe and guaranteed unique even with rapid consecutive calls.
func GenerateRunID() (string, error) {
	idMutex.Lock()
	defer idMutex.Unlock()

	now := time.Now()
	timestamp := now.Format("20060102-1504")

	if timestamp == lastTimestamp {
		lastCounter++
		return fmt.Sprintf("%s-%s-%03d", RunIDPrefix, timestamp, lastCounter), nil
	}

	randomBytes := make([]byte, 2)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	randomHex := hex.EncodeToString(randomBytes)[:3]

	lastTimestamp = timestamp
	lastCounter = 0

	return fmt.Sprintf("%s-%s-%s", RunIDPrefix, timestamp, randomHex), nil
}

// New creates an isolated project directory for one run
func New(config *Config) (*Project, error) {
	if config == nil || config.BaseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		base := &Config{BaseDir: filepath.Join(cwd, "contracts")}
		if config != nil {
			base.Name = config.Name
			base.KeepOnFail = config.KeepOnFail
		}
		config = base
	}

	runID, err := GenerateRunID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	dirName := runID
	if config.Name != "" {
		dirName = config.Name
	}

	root := filepath.Join(config.BaseDir, dirName)
	if _, err := os.Stat(root); err == nil && config.Name != "" {
		// Named directories must not collide with a previous run.
		return nil, fmt.Errorf("project directory %s already exists", root)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project directory %s: %w", root, err)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		_ = os.RemoveAll(root)
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	return &Project{
		RunID:   runID,
		Root:    abs,
		BaseDir: config.BaseDir,
		keep:    config.KeepOnFail,
	}, nil
}

// Exists checks if the project directory exists
func (p *Project) Exists() bool {
	info, err := os.Stat(p.Root)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ShouldKeepOnFail reports whether an aborted run preserves the directory
func (p *Project) ShouldKeepOnFail() bool {
	return p.keep
}

// Discard removes the project directory. Called for aborted runs
// unless keep-on-fail is set; successful runs always keep their output.
func (p *Project) Discard() error {
	if p.keep || !p.Exists() {
		return nil
	}
	if err := os.RemoveAll(p.Root); err != nil {
		return fmt.Errorf("failed to discard project %s: %w", p.Root, err)
	}
	return nil
}

// String returns a string representation of the project
func (p *Project) String() string {
	return fmt.Sprintf("Project{RunID: %s, Root: %s}", p.RunID, p.Root)
}

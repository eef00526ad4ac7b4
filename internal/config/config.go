// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Application settings: per-agent model routing, build and pipeline knobs

package config

import (
	"errors"
	"time"
)

// ErrMissingAPIKey is returned when generation needs a key and none is set
var ErrMissingAPIKey = errors.New("OPENROUTER_API_KEY not set (or provider-specific key); add it to the environment or pass --llm-token")

// Config is constructed once at process start and passed to every
// stage explicitly. Stages never read the environment themselves.
type Config struct {
	Models   ModelsConfig   `koanf:"models"`
	Build    BuildConfig    `koanf:"build"`
	Pipeline PipelineConfig `koanf:"pipeline"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ModelsConfig routes each agent to a model (cost-aware routing)
type ModelsConfig struct {
	SpecInterpreter string `koanf:"spec_interpreter"`
	ProjectPlanner  string `koanf:"project_planner"`
	CodeGenerator   string `koanf:"code_generator"`
	Debugger        string `koanf:"debugger"`
}

// BuildConfig holds toolchain settings
type BuildConfig struct {
	AnchorSbfRoot  string        `koanf:"anchor_sbf_root"`
	CommandTimeout time.Duration `koanf:"command_timeout"`
}

// PipelineConfig holds workflow engine settings
type PipelineConfig struct {
	MaxRetries int    `koanf:"max_retries"`
	OutputDir  string `koanf:"output_dir"`
	KeepOnFail bool   `koanf:"keep_on_fail"`
}

// LoggingConfig holds log destination settings
type LoggingConfig struct {
	Level string `koanf:"level"`
	Dir   string `koanf:"dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Models: ModelsConfig{
			SpecInterpreter: "google/gemini-2.5-pro",
			ProjectPlanner:  "google/gemini-2.5-pro",
			CodeGenerator:   "anthropic/claude-sonnet-4-20250514",
			Debugger:        "anthropic/claude-opus-4-20250514",
		},
		Build: BuildConfig{
			CommandTimeout: 5 * time.Minute,
		},
		Pipeline: PipelineConfig{
			MaxRetries: 1,
			OutputDir:  "./contracts",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   ".lamport",
		},
	}
}

// ModelFor returns the configured model for an agent name, or the
// empty string so the provider default applies
func (c *Config) ModelFor(agent string) string {
	switch agent {
	case "spec_interpreter":
		return c.Models.SpecInterpreter
	case "project_planner":
		return c.Models.ProjectPlanner
	case "code_generator":
		return c.Models.CodeGenerator
	case "debugger":
		return c.Models.Debugger
	}
	return ""
}

// Validate checks configuration bounds
func (c *Config) Validate() error {
	if c.Pipeline.MaxRetries < 0 {
		return errors.New("pipeline.max_retries must be non-negative")
	}
	if c.Build.CommandTimeout < 0 {
		return errors.New("build.command_timeout must be non-negative")
	}
	return nil
}

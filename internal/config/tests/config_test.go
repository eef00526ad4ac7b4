// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for configuration loading and precedence

package tests

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 1, cfg.Pipeline.MaxRetries)
	assert.Equal(t, "./contracts", cfg.Pipeline.OutputDir)
	assert.Equal(t, 5*time.Minute, cfg.Build.CommandTimeout)
	assert.NotEmpty(t, cfg.Models.SpecInterpreter)
	assert.NotEmpty(t, cfg.Models.Debugger)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
models:
  debugger: some/other-model
pipeline:
  max_retries: 3
  keep_on_fail: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "some/other-model", cfg.Models.Debugger)
	assert.Equal(t, 3, cfg.Pipeline.MaxRetries)
	assert.True(t, cfg.Pipeline.KeepOnFail)
	// Untouched values keep their defaults.
	assert.Equal(t, "./contracts", cfg.Pipeline.OutputDir)
	assert.NotEmpty(t, cfg.Models.SpecInterpreter)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  max_retries: 3\n"), 0644))

	t.Setenv("LAMPORT_PIPELINE_MAX_RETRIES", "5")
	t.Setenv("LAMPORT_MODELS_CODE_GENERATOR", "env/model")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Pipeline.MaxRetries)
	assert.Equal(t, "env/model", cfg.Models.CodeGenerator)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  max_retries: -1\n"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestModelFor(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, cfg.Models.Debugger, cfg.ModelFor("debugger"))
	assert.Equal(t, cfg.Models.CodeGenerator, cfg.ModelFor("code_generator"))
	assert.Empty(t, cfg.ModelFor("unknown_agent"))
}

func TestRequireAPIKey(t *testing.T) {
	for _, env := range []string{"OPENROUTER_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(env, "")
	}
	_, err := config.RequireAPIKey()
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)

	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	key, err := config.RequireAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", key)
}

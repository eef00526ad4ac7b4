// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for the run logger and LLM call audit log

package tests

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/logging"
)

func TestNewLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()

	log, closer, err := logging.New(logging.Options{Level: "info", Dir: dir})
	require.NoError(t, err)

	log.Info("pipeline started")
	log.Debug("this goes to the file core only")
	closer()

	data, err := os.ReadFile(filepath.Join(dir, "lamport.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pipeline started")
	assert.Contains(t, string(data), "file core only")
}

func TestCallLoggerWritesJSONL(t *testing.T) {
	dir := t.TempDir()

	calls := logging.NewCallLogger(dir)
	calls.Record(logging.CallRecord{
		Agent:      "spec_interpreter",
		Model:      "mock",
		PromptLen:  128,
		OutputLen:  256,
		DurationMS: 42,
		Success:    true,
	})
	calls.Record(logging.CallRecord{
		Agent:   "debugger",
		Success: false,
		Error:   "rate limited",
	})
	require.NoError(t, calls.Close())

	f, err := os.Open(filepath.Join(dir, "llm_calls.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	var records []logging.CallRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec logging.CallRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}

	require.Len(t, records, 2)
	assert.Equal(t, "spec_interpreter", records[0].Agent)
	assert.Equal(t, 128, records[0].PromptLen)
	assert.NotEmpty(t, records[0].Timestamp)
	assert.Equal(t, "rate limited", records[1].Error)
}

func TestNilCallLoggerIsNoOp(t *testing.T) {
	var calls *logging.CallLogger
	assert.NotPanics(t, func() {
		calls.Record(logging.CallRecord{Agent: "x"})
	})
	assert.NoError(t, calls.Close())

	assert.Nil(t, logging.NewCallLogger(""))
}

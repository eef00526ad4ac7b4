// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// JSONL audit log of every LLM call

package logging

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// CallRecord is one JSONL entry in the LLM call log. Prompts are
// recorded by size, not content: the log is an audit trail, not a
// prompt dump.
type CallRecord struct {
	Timestamp  string `json:"timestamp"`
	Agent      string `json:"agent"`
	Model      string `json:"model"`
	PromptLen  int    `json:"prompt_len"`
	OutputLen  int    `json:"output_len"`
	DurationMS int64  `json:"duration_ms"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// CallLogger appends CallRecords to a rotating JSONL file
type CallLogger struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// NewCallLogger creates a call logger writing under dir.
// A nil *CallLogger is a valid no-op logger.
func NewCallLogger(dir string) *CallLogger {
	if dir == "" {
		return nil
	}
	return &CallLogger{
		w: &lumberjack.Logger{
			Filename:   filepath.Join(dir, "llm_calls.jsonl"),
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			Compress:   true,
		},
	}
}

// Record appends one entry. Errors are swallowed: audit logging must
// never fail a run.
func (l *CallLogger) Record(rec CallRecord) {
	if l == nil {
		return
	}
	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().Format(time.RFC3339)
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(line, '\n'))
}

// Close releases the underlying file
func (l *CallLogger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Common utilities shared across providers

package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony-level/lamport/internal/llm"
)

// TruncateForError truncates a string for error messages
func TruncateForError(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// retryBackoff is the pause between transient-failure retries
const retryBackoff = 500 * time.Millisecond

// withTransientRetry runs call up to 1+llm.TransientRetries times,
// stopping early on non-retryable failures (auth errors, timeout of
// the whole request context).
func withTransientRetry(ctx context.Context, verbose bool, name string, call func() (*llm.Response, error)) (*llm.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= 1+llm.TransientRetries; attempt++ {
		resp, err := call()
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if verbose {
			fmt.Printf("  [%s] Attempt %d failed: %v\n", name, attempt, err)
		}

		if err == llm.ErrTimeout || !isRetryable(err) {
			break
		}
		select {
		case <-ctx.Done():
			return nil, llm.ErrTimeout
		case <-time.After(retryBackoff):
		}
	}
	return nil, fmt.Errorf("%s request failed: %w", name, lastErr)
}

// isRetryable reports whether an error looks transient
func isRetryable(err error) bool {
	msg := err.Error()
	if strings.Contains(msg, "401") || strings.Contains(msg, "403") {
		return false
	}
	if strings.Contains(msg, "400") || strings.Contains(msg, "404") {
		return false
	}
	return true
}

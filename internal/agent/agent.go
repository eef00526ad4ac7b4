// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Shared LLM agent plumbing

package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/sony-level/lamport/internal/llm"
	"github.com/sony-level/lamport/internal/logging"
)

// base carries what every LLM-backed stage needs: a client, the model
// to request, and the call logger
type base struct {
	client llm.Client
	model  string
	calls  *logging.CallLogger
}

// Options configures an agent
type Options struct {
	Client llm.Client
	Model  string // model override for this agent, empty uses provider default
	Calls  *logging.CallLogger
}

func newBase(opts Options) base {
	return base{
		client: opts.Client,
		model:  opts.Model,
		calls:  opts.Calls,
	}
}

// complete performs one logged completion. The record captures sizes
// and timing, never prompt or output content.
func (b *base) complete(ctx context.Context, agentName, system, prompt string) (string, error) {
	req := &llm.Request{
		System: system,
		Prompt: prompt,
		Model:  b.model,
	}

	start := time.Now()
	resp, err := b.client.Complete(ctx, req)
	rec := logging.CallRecord{
		Timestamp:  start.UTC().Format(time.RFC3339),
		Agent:      agentName,
		Model:      b.model,
		PromptLen:  len(system) + len(prompt),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		rec.Error = err.Error()
		b.calls.Record(rec)
		return "", fmt.Errorf("%s: completion failed: %w", agentName, err)
	}

	rec.Success = true
	rec.OutputLen = len(resp.Content)
	if resp.Model != "" {
		rec.Model = resp.Model
	}
	b.calls.Record(rec)
	return resp.Content, nil
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Mock provider for offline mode and testing

package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sony-level/lamport/internal/llm"
)

// MockClient returns canned completions keyed off prompt markers so the
// whole pipeline can run offline
type MockClient struct {
	fixed map[string]string // marker -> response, for tests
}

// NewMockClient creates a new mock client
func NewMockClient() *MockClient {
	return &MockClient{}
}

// NewMockClientWithResponses creates a mock with fixed responses.
// The first marker found in the prompt selects the response.
func NewMockClientWithResponses(responses map[string]string) *MockClient {
	return &MockClient{fixed: responses}
}

// Name returns the provider name
func (c *MockClient) Name() string {
	return "mock"
}

// Complete returns a canned completion for the request
func (c *MockClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := req.System + "\n" + req.Prompt

	for marker, response := range c.fixed {
		if strings.Contains(text, marker) {
			return &llm.Response{Content: response, Model: "mock"}, nil
		}
	}

	var content string
	switch {
	case strings.Contains(text, "specification interpreter"):
		content = c.mockSpec(req.Prompt)
	case strings.Contains(text, "project structure"):
		content = mockScaffold
	case strings.Contains(text, "instruction implementations"):
		content = mockProgram
	case strings.Contains(text, "analyze build and validation errors"):
		content = mockPatch
	default:
		content = `{"note": "mock response"}`
	}

	return &llm.Response{Content: content, Model: "mock"}, nil
}

// mockSpec derives a minimal ContractSpec from the raw request so runs
// with different inputs stay distinguishable
func (c *MockClient) mockSpec(prompt string) string {
	name := "Mock Token"
	symbol := "MCK"
	features := []string{"transferable"}
	lower := strings.ToLower(prompt)
	for _, f := range []string{"mintable", "burnable", "pausable", "freezable", "capped", "ownable"} {
		if strings.Contains(lower, f) {
			features = append(features, f)
		}
	}

	out, _ := json.Marshal(map[string]any{
		"name":     name,
		"symbol":   symbol,
		"decimals": 9,
		"features": features,
	})
	return string(out)
}

const mockScaffold = `{
  "files": {
    "Anchor.toml": "[programs.localnet]\nmock_token = \"Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS\"\n\n[provider]\ncluster = \"localnet\"\nwallet = \"~/.config/solana/id.json\"\n",
    "Cargo.toml": "[workspace]\nmembers = [\"programs/*\"]\n",
    "programs/mock_token/Cargo.toml": "[package]\nname = \"mock-token\"\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[lib]\ncrate-type = [\"cdylib\", \"lib\"]\n\n[dependencies]\nanchor-lang = \"0.30.1\"\n",
    "programs/mock_token/src/lib.rs": "use anchor_lang::prelude::*;\n\ndeclare_id!(\"Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS\");\n\n#[program]\npub mod mock_token {\n    use super::*;\n}\n",
    "tests/mock_token.ts": "// integration tests\n"
  }
}`

const mockProgram = `{
  "files": {
    "programs/mock_token/src/lib.rs": "use anchor_lang::prelude::*;\n\npub mod instructions;\n\nuse instructions::*;\n\ndeclare_id!(\"Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS\");\n\n#[program]\npub mod mock_token {\n    use super::*;\n\n    pub fn initialize(ctx: Context<Initialize>) -> Result<()> {\n        instructions::initialize::handler(ctx)\n    }\n}\n",
    "programs/mock_token/src/instructions/mod.rs": "use anchor_lang::prelude::*;\n\npub mod initialize;\n\npub use initialize::*;\n\n#[derive(Accounts)]\npub struct Initialize {}\n",
    "programs/mock_token/src/instructions/initialize.rs": "use anchor_lang::prelude::*;\n\nuse super::Initialize;\n\npub fn handler(_ctx: Context<Initialize>) -> Result<()> {\n    Ok(())\n}\n"
  }
}`

const mockPatch = `{
  "patches": [
    {
      "path": "programs/mock_token/src/lib.rs",
      "content": "use anchor_lang::prelude::*;\n\ndeclare_id!(\"Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS\");\n\n#[program]\npub mod mock_token {\n    use super::*;\n}\n",
      "reason": "Reset lib.rs to a minimal compiling module"
    }
  ],
  "analysis": "Mock repair"
}`

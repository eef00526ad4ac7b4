/*
Copyright © 2026 ソニーレベル <C7kali3@gmail.com>

*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	outputDir  string
	verbose    bool

	// LLM flags
	llmProvider string
	llmEndpoint string
	llmModel    string
	llmToken    string
	mockMode    bool

	// Pipeline flags
	projectName string
	maxRetries  int
	keepOnFail  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lamport",
	Short: "Generate buildable Solana smart contracts from natural language",
	Long: `lamport is a command line tool that turns a natural language
description into a buildable Anchor/Rust smart contract project.

It interprets the description into a structured token spec, plans an
Anchor workspace, generates the Rust program, validates and compiles
it, and repairs compile errors within a bounded retry budget.

Examples:
  lamport generate "a mintable token called MyToken with symbol MYT"
  lamport generate "a capped, burnable token" -n my_token -o ./out
  lamport generate "a token" --mock
  lamport check`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetLLMToken returns the LLM token from flag or environment variable
func GetLLMToken() string {
	if llmToken != "" {
		return llmToken
	}
	return os.Getenv("LAMPORT_LLM_TOKEN")
}

func init() {
	// Persistent flags - available to all subcommands
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// LLM provider flags
	// Default is empty string to enable auto-selection: openrouter > anthropic > openai > ollama > mock
	rootCmd.PersistentFlags().StringVar(&llmProvider, "provider", "", "LLM provider: openrouter, anthropic, openai, ollama, http, mock (default: auto-select)")
	rootCmd.PersistentFlags().StringVar(&llmEndpoint, "llm-endpoint", "", "HTTP endpoint for custom LLM provider")
	rootCmd.PersistentFlags().StringVar(&llmModel, "model", "", "Model name override for all agents")
	rootCmd.PersistentFlags().StringVar(&llmToken, "llm-token", "", "Authentication token for LLM (or env: OPENROUTER_API_KEY, ANTHROPIC_API_KEY, etc.)")
}

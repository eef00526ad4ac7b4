/*
Copyright © 2026 ソニーレベル <c7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sony-level/lamport/internal/config"
	"github.com/sony-level/lamport/internal/llm"
	"github.com/sony-level/lamport/internal/toolchain"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check toolchain and API key availability",
	Long: `Verify that the Solana development toolchain is installed and that
an LLM API key is available, without generating anything.

Examples:
  lamport check
  lamport check -v`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeCheck()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func executeCheck() error {
	checker := toolchain.NewChecker()
	summary := checker.CheckAll()

	fmt.Println("Toolchain:")
	for _, status := range summary.Results {
		mark := "✗"
		if status.Found {
			mark = "✓"
		}
		requirement := "required"
		if !status.Required {
			requirement = "optional"
		}
		fmt.Printf("  %s %-8s (%s)", mark, status.Name, requirement)
		if status.Version != "" {
			fmt.Printf("  %s", status.Version)
		}
		if verbose && status.Path != "" {
			fmt.Printf("  [%s]", status.Path)
		}
		fmt.Println()
	}

	fmt.Println("\nLLM providers:")
	keyFound := false
	for _, env := range []string{"OPENROUTER_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY"} {
		mark := "✗"
		if os.Getenv(env) != "" {
			mark = "✓"
			keyFound = true
		}
		fmt.Printf("  %s %s\n", mark, env)
	}
	if !keyFound {
		if _, err := config.RequireAPIKey(); err != nil {
			fmt.Printf("  ⚠ %v\n", err)
		}
	}
	fmt.Printf("  auto-selected provider: %s\n", llm.AutoSelect())

	if guide := checker.FormatMissing(summary); guide != "" {
		fmt.Println()
		fmt.Print(guide)
	}

	if !summary.AllRequired {
		os.Exit(1)
	}
	fmt.Println("\nAll required tools are available.")
	return nil
}

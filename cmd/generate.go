/*
Copyright © 2026 ソニーレベル <c7kali3@gmail.com>

*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sony-level/lamport/internal/config"
	"github.com/sony-level/lamport/internal/llm"
	"github.com/sony-level/lamport/internal/logging"
	"github.com/sony-level/lamport/internal/pipeline"
	"github.com/sony-level/lamport/internal/project"
	"github.com/sony-level/lamport/internal/state"
	"github.com/sony-level/lamport/internal/toolchain"
	"github.com/sony-level/lamport/internal/workflow"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <description>",
	Short: "Generate a contract project from a description",
	Long: `Interpret a natural language description, plan an Anchor workspace,
generate the Rust program, then validate and build it. Compile errors
are repaired within the retry budget.

Examples:
  lamport generate "a mintable token called MyToken with symbol MYT"
  lamport generate "a capped, burnable token" -n my_token
  lamport generate "a token" --mock -v
  lamport generate "a pausable token" --max-retries 2 --keep-on-fail`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeGenerate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&projectName, "name", "n", "", "Project directory name (default: derived run ID)")
	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory for generated projects (default: ./contracts)")
	generateCmd.Flags().IntVar(&maxRetries, "max-retries", workflow.DefaultMaxRetries, "Repair attempts shared across validation and build failures")
	generateCmd.Flags().BoolVar(&mockMode, "mock", false, "Use the mock LLM provider (no API calls)")
	generateCmd.Flags().BoolVar(&keepOnFail, "keep-on-fail", false, "Keep the project directory when the run aborts")
}

func executeGenerate(cmd *cobra.Command, userSpec string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyGenerateFlags(cmd, cfg)

	log, closeLog, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Dir:     cfg.Logging.Dir,
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()

	providerType := llm.ProviderType(llmProvider)
	if mockMode {
		providerType = llm.ProviderMock
	}
	if providerType == "" {
		providerType = llm.AutoSelect()
	}

	if providerType != llm.ProviderMock && providerType != llm.ProviderOllama && GetLLMToken() == "" {
		if _, err := config.RequireAPIKey(); err != nil {
			return err
		}
	}

	if !toolchain.IsInstalled("cargo") {
		return fmt.Errorf("cargo not found; install the Rust toolchain (run 'lamport check' for details)")
	}

	client, err := llm.NewClient(&llm.Config{
		Type:     providerType,
		Endpoint: llmEndpoint,
		Model:    llmModel,
		Token:    GetLLMToken(),
		Verbose:  verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	proj, err := project.New(&project.Config{
		BaseDir:    cfg.Pipeline.OutputDir,
		Name:       projectName,
		KeepOnFail: cfg.Pipeline.KeepOnFail,
	})
	if err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := proj.InitRepo(); err != nil {
		log.Warn("project versioning unavailable: " + err.Error())
	}

	calls := logging.NewCallLogger(cfg.Logging.Dir)
	defer calls.Close()

	fmt.Printf("Run ID: %s\n", proj.RunID)
	fmt.Printf("Provider: %s\n", client.Name())
	fmt.Printf("Output: %s\n", proj.Root)
	fmt.Println()

	engine, err := pipeline.New(pipeline.Options{
		Config:  cfg,
		Client:  client,
		Project: proj,
		Calls:   calls,
		Log:     log,
		Hooks:   progressHooks(),
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final := engine.Run(ctx, state.New(userSpec, projectName, proj.Root))

	displayResults(final, proj)

	if final.Phase != state.PhaseBuilt {
		if err := proj.Discard(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cleanup failed: %v\n", err)
		}
		os.Exit(1)
	}
	return nil
}

// applyGenerateFlags lets command line flags win over file and env config
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("max-retries") {
		cfg.Pipeline.MaxRetries = maxRetries
	}
	if outputDir != "" {
		cfg.Pipeline.OutputDir = outputDir
	}
	if keepOnFail {
		cfg.Pipeline.KeepOnFail = true
	}
}

// phaseLabels maps engine phases to display names
var phaseLabels = map[state.Phase]string{
	state.PhaseInterpret: "Spec Interpreter",
	state.PhasePlan:      "Project Planner",
	state.PhaseGenerate:  "Code Generator",
	state.PhaseValidate:  "Static Validator",
	state.PhaseBuild:     "Build",
	state.PhaseRepair:    "Debugger",
}

func progressHooks() workflow.Hooks {
	return workflow.Hooks{
		OnStageStart: func(phase state.Phase) {
			if label, ok := phaseLabels[phase]; ok {
				fmt.Printf("→ %s...\n", label)
			}
		},
		OnStageComplete: func(phase state.Phase, outcome workflow.Outcome) {
			label, ok := phaseLabels[phase]
			if !ok {
				return
			}
			if outcome == workflow.OutcomeOK {
				fmt.Printf("  ✓ %s\n", label)
			} else {
				fmt.Printf("  ✗ %s\n", label)
			}
		},
	}
}

func displayResults(final *state.WorkflowState, proj *project.Project) {
	fmt.Println()
	if final.Phase == state.PhaseBuilt {
		fmt.Println("✓ Build successful!")
		fmt.Printf("  Project: %s\n", final.ProjectName)
		fmt.Printf("  Output:  %s\n", proj.Root)
		if final.Build != nil && final.Build.Artifact != "" {
			fmt.Printf("  Program: %s\n", final.Build.Artifact)
		}
	} else {
		fmt.Println("⚠ Build failed")
		fmt.Printf("  Output directory: %s\n", proj.Root)
		fmt.Printf("  Files generated:  %d\n", len(final.Files))
		if diag := final.LastDiagnostic(); diag != "" {
			fmt.Printf("\nError: %s\n", firstLines(diag, 20))
		}
	}

	if len(final.Files) > 0 && verbose {
		fmt.Println("\nGenerated files:")
		paths := make([]string, 0, len(final.Files))
		for p := range final.Files {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Printf("  %-50s %6d bytes\n", p, len(final.Files[p]))
		}
	}
}

func firstLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n..."
}

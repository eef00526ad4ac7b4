// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Pipeline assembly: agents, validation and build wired into the engine

package pipeline

import (
	"go.uber.org/zap"

	"github.com/sony-level/lamport/internal/agent"
	"github.com/sony-level/lamport/internal/config"
	"github.com/sony-level/lamport/internal/llm"
	"github.com/sony-level/lamport/internal/logging"
	"github.com/sony-level/lamport/internal/project"
	"github.com/sony-level/lamport/internal/security"
	"github.com/sony-level/lamport/internal/toolchain"
	"github.com/sony-level/lamport/internal/validate"
	"github.com/sony-level/lamport/internal/workflow"
)

// Options collects everything a full pipeline needs
type Options struct {
	Config  *config.Config
	Client  llm.Client
	Project *project.Project
	Calls   *logging.CallLogger
	Log     *zap.Logger
	Hooks   workflow.Hooks
	Verbose bool
}

// New wires the four agents and the toolchain stages into an engine
func New(opts Options) (*workflow.Engine, error) {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	runner := toolchain.NewRunner(&toolchain.RunnerConfig{
		WorkingDir: opts.Project.Root,
		Timeout:    cfg.Build.CommandTimeout,
		Verbose:    opts.Verbose,
	})
	builder := toolchain.NewBuilder(runner, opts.Project.Root, cfg.Build.AnchorSbfRoot)
	validator := validate.New(builder)
	policy := security.NewPolicyChecker(security.DefaultPolicy())

	agentOpts := func(name string) agent.Options {
		return agent.Options{
			Client: opts.Client,
			Model:  cfg.ModelFor(name),
			Calls:  opts.Calls,
		}
	}

	return workflow.New(
		&workflow.Config{
			MaxRetries: cfg.Pipeline.MaxRetries,
			Hooks:      opts.Hooks,
		},
		log,
		workflow.Stages{
			Interpret: agent.NewInterpreter(agentOpts("spec_interpreter")),
			Plan:      agent.NewPlanner(agentOpts("project_planner")),
			Generate:  agent.NewGenerator(agentOpts("code_generator")),
			Validate:  NewValidateStage(opts.Project, policy, validator, log),
			Build:     NewBuildStage(builder, log),
			Repair:    agent.NewDebugger(agentOpts("debugger")),
		},
	)
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// State-machine runner for the generation pipeline

package workflow

import (
	"context"
	"fmt"

	"github.com/sony-level/lamport/internal/state"
	"go.uber.org/zap"
)

// Engine drives a WorkflowState through the transition table until a
// terminal phase is reached. It is the sole owner of the retry counter
// and of abort decisions.
type Engine struct {
	stages     map[state.Phase]Stage
	maxRetries int
	hooks      Hooks
	log        *zap.Logger
}

// New creates an engine over the given stage bindings
func New(config *Config, log *zap.Logger, stages Stages) (*Engine, error) {
	if config == nil {
		config = &Config{MaxRetries: DefaultMaxRetries}
	}
	if config.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must be non-negative, got %d", config.MaxRetries)
	}
	if log == nil {
		log = zap.NewNop()
	}

	byPhase := map[state.Phase]Stage{
		state.PhaseInterpret: stages.Interpret,
		state.PhasePlan:      stages.Plan,
		state.PhaseGenerate:  stages.Generate,
		state.PhaseValidate:  stages.Validate,
		state.PhaseBuild:     stages.Build,
		state.PhaseRepair:    stages.Repair,
	}
	for phase, s := range byPhase {
		if s == nil {
			return nil, fmt.Errorf("missing stage for phase %s", phase)
		}
	}

	return &Engine{
		stages:     byPhase,
		maxRetries: config.MaxRetries,
		hooks:      config.Hooks,
		log:        log,
	}, nil
}

// Run executes the pipeline from the given initial state and returns
// the terminal state. The returned state's Phase is always PhaseBuilt
// or PhaseAborted. Cancellation is honored between stages only.
func (e *Engine) Run(ctx context.Context, initial *state.WorkflowState) *state.WorkflowState {
	st := initial.Clone()
	if st.Phase == "" {
		st.Phase = state.PhaseInterpret
	}

	for !st.Phase.IsTerminal() {
		if err := ctx.Err(); err != nil {
			st.ErrMessage = "run cancelled: " + err.Error()
			st.Phase = state.PhaseAborted
			break
		}

		stage := e.stages[st.Phase]
		phase := st.Phase

		if e.hooks.OnStageStart != nil {
			e.hooks.OnStageStart(phase)
		}

		// The engine's own increment: one unit per repair invocation.
		if phase == state.PhaseRepair {
			st.RetryCount++
		}

		delta, err := stage.Run(ctx, st.Clone())

		merged, violations := st.Merge(delta, stage.AllowedFields())
		for _, v := range violations {
			e.log.Warn("stage attempted to write disallowed field",
				zap.String("stage", stage.Name()),
				zap.String("field", string(v.Field)))
		}

		outcome := e.outcomeOf(phase, merged, err)
		if err != nil {
			merged.ErrMessage = err.Error()
			e.log.Error("stage failed",
				zap.String("stage", stage.Name()),
				zap.Error(err))
		}

		merged.Phase = e.next(phase, outcome, err, merged)
		st = merged

		e.log.Debug("stage complete",
			zap.String("stage", stage.Name()),
			zap.String("outcome", string(outcome)),
			zap.String("next", string(st.Phase)),
			zap.Int("retries", st.RetryCount))

		if e.hooks.OnStageComplete != nil {
			e.hooks.OnStageComplete(phase, outcome)
		}
	}

	return st
}

// outcomeOf classifies the stage result. Validation and build report
// failure through their result records even when the stage itself
// returned no error.
func (e *Engine) outcomeOf(phase state.Phase, st *state.WorkflowState, err error) Outcome {
	if err != nil {
		return OutcomeFail
	}
	switch phase {
	case state.PhaseValidate:
		if st.Validation == nil || !st.Validation.Passed {
			return OutcomeFail
		}
	case state.PhaseBuild:
		if st.Build == nil || !st.Build.Success {
			return OutcomeFail
		}
	}
	return OutcomeOK
}

// next resolves the transition, applying the retry-budget policy on
// the failure edges out of validate and build.
func (e *Engine) next(phase state.Phase, outcome Outcome, err error, st *state.WorkflowState) state.Phase {
	target, ok := transitions[transitionKey{phase, outcome}]
	if !ok {
		// Unknown edge: fail safe.
		return state.PhaseAborted
	}

	if target == state.PhaseRepair {
		// A hard stage error (toolchain missing, LLM boundary broken)
		// is not a code defect; repair cannot help.
		if err != nil {
			return state.PhaseAborted
		}
		if st.RetryCount >= e.maxRetries {
			if st.ErrMessage == "" {
				st.ErrMessage = fmt.Sprintf("retry budget exhausted after %d repair attempt(s)", st.RetryCount)
			}
			return state.PhaseAborted
		}
	}

	return target
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workflow engine types: stages, outcomes, transition table

package workflow

import (
	"context"

	"github.com/sony-level/lamport/internal/state"
)

// DefaultMaxRetries is the shared repair budget for validation and
// build failures. One retry max unless configured otherwise.
const DefaultMaxRetries = 1

// Outcome classifies a completed stage
type Outcome string

const (
	OutcomeOK   Outcome = "ok"
	OutcomeFail Outcome = "fail"
)

// Stage is one pipeline step. Run receives an isolated copy of the
// state and returns a delta; it must be idempotent for identical input
// state and identical external-call results, and must never terminate
// the process on failure - the engine owns abort decisions.
type Stage interface {
	Name() string
	AllowedFields() state.FieldSet
	Run(ctx context.Context, st *state.WorkflowState) (*state.Delta, error)
}

// Stages binds one Stage to each non-terminal phase
type Stages struct {
	Interpret Stage
	Plan      Stage
	Generate  Stage
	Validate  Stage
	Build     Stage
	Repair    Stage
}

// Hooks receive progress notifications from the engine
type Hooks struct {
	OnStageStart    func(phase state.Phase)
	OnStageComplete func(phase state.Phase, outcome Outcome)
}

// Config configures the engine
type Config struct {
	MaxRetries int
	Hooks      Hooks
}

type transitionKey struct {
	phase   state.Phase
	outcome Outcome
}

// transitions is the fixed pipeline graph. Failure edges out of
// validate and build are budget-dependent and resolved by the engine;
// the table holds the in-budget target.
var transitions = map[transitionKey]state.Phase{
	{state.PhaseInterpret, OutcomeOK}: state.PhasePlan,
	{state.PhasePlan, OutcomeOK}:      state.PhaseGenerate,
	{state.PhaseGenerate, OutcomeOK}:  state.PhaseValidate,
	{state.PhaseValidate, OutcomeOK}:  state.PhaseBuild,
	{state.PhaseBuild, OutcomeOK}:     state.PhaseBuilt,

	// Interpret/plan/generate have no artifact to repair yet; their
	// failures end the run without spending the budget.
	{state.PhaseInterpret, OutcomeFail}: state.PhaseAborted,
	{state.PhasePlan, OutcomeFail}:      state.PhaseAborted,
	{state.PhaseGenerate, OutcomeFail}:  state.PhaseAborted,

	// Repair output always re-enters at validate.
	{state.PhaseRepair, OutcomeOK}:   state.PhaseValidate,
	{state.PhaseRepair, OutcomeFail}: state.PhaseAborted,

	{state.PhaseValidate, OutcomeFail}: state.PhaseRepair,
	{state.PhaseBuild, OutcomeFail}:    state.PhaseRepair,
}

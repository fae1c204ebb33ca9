// Package pipeline composes the six engine stages into one synchronous run:
// Validate -> Generate -> Analyze -> Correct -> Associate -> Record. Any
// stage error aborts the run before anything is recorded.
package pipeline

import (
	"fmt"
	"time"

	association "Facade/internal/calc/association"
	correction "Facade/internal/calc/correction"
	geometry "Facade/internal/calc/geometry"
	params "Facade/internal/calc/params"
	structural "Facade/internal/calc/structural"
	trace "Facade/internal/calc/trace"
)

// Engine defaults, applied when the input leaves an override at zero.
const (
	DefaultToleranceMM   = 0.05
	DefaultMaxIterations = 50
)

// Input is the full request schema: one parameter set plus explicitly
// enumerated overrides, each defaulted when absent.
type Input struct {
	Params          params.Set            `json:"params"`
	Rules           *params.Rules         `json:"rules,omitempty"`
	ToleranceMM     float64               `json:"tolerance_mm,omitempty"`
	MaxIterations   int                   `json:"max_iterations,omitempty"`
	Damping         float64               `json:"damping,omitempty"`
	SafetyThreshold float64               `json:"safety_threshold,omitempty"`
	Baseline        *association.Baseline `json:"baseline,omitempty"`
}

// Result bundles every stage output for direct rendering by the caller.
type Result struct {
	Validation  params.Validation  `json:"validation"`
	Geometry    geometry.Model     `json:"geometry"`
	Structural  structural.Metrics `json:"structural"`
	Correction  correction.Result  `json:"correction"`
	Association association.Score  `json:"association"`
}

func (in Input) rules() params.Rules {
	if in.Rules != nil {
		return *in.Rules
	}
	return params.DefaultRules()
}

func (in Input) structuralConfig() structural.Config {
	cfg := structural.DefaultConfig()
	if in.SafetyThreshold > 0 {
		cfg.SafetyThreshold = in.SafetyThreshold
	}
	return cfg
}

func (in Input) correctionKnobs() (tol float64, maxIter int, damping float64) {
	tol, maxIter, damping = DefaultToleranceMM, DefaultMaxIterations, correction.DefaultDamping
	if in.ToleranceMM != 0 {
		tol = in.ToleranceMM
	}
	if in.MaxIterations != 0 {
		maxIter = in.MaxIterations
	}
	if in.Damping != 0 {
		damping = in.Damping
	}
	return tol, maxIter, damping
}

func (in Input) baseline() association.Baseline {
	if in.Baseline != nil {
		return *in.Baseline
	}
	return association.Baseline{}
}

// Run executes the full engine on one input. Pure with respect to its
// arguments; recording is left to the caller, which owns the trace.
func Run(in Input) (Result, error) {
	rules := in.rules()

	validation, err := params.Validate(in.Params, rules)
	if err != nil {
		return Result{}, fmt.Errorf("validate: %w", err)
	}

	model, err := geometry.Generate(in.Params)
	if err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}

	metrics, err := structural.Analyze(model, in.Params, in.structuralConfig())
	if err != nil {
		return Result{}, fmt.Errorf("analyze: %w", err)
	}

	tol, maxIter, damping := in.correctionKnobs()
	corrected, err := correction.CorrectDamped(metrics, tol, maxIter, damping)
	if err != nil {
		return Result{}, fmt.Errorf("correct: %w", err)
	}

	score := association.Associate(model, metrics, corrected, in.baseline())

	return Result{
		Validation:  validation,
		Geometry:    model,
		Structural:  metrics,
		Correction:  corrected,
		Association: score,
	}, nil
}

// NewEntry builds the trace summary for a completed run.
func NewEntry(ts time.Time, in params.Set, r Result, remark string) trace.Entry {
	return trace.Entry{
		Timestamp:        ts,
		ProfileID:        in.ID,
		ProfileName:      in.Name,
		AggregateScore:   r.Validation.AggregateScore,
		StabilityIndex:   r.Structural.StabilityIndex,
		AssemblyFitScore: r.Correction.AssemblyFitScore,
		Converged:        r.Correction.Converged,
		Remark:           remark,
	}
}

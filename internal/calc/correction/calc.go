package correction

import (
	"errors"
	"fmt"

	structural "Facade/internal/calc/structural"
)

// ErrInvalidTolerance rejects a non-positive tolerance, iteration budget,
// or a damping factor outside (0,1).
var ErrInvalidTolerance = errors.New("invalid correction tolerance")

// DefaultDamping is the fraction of the residual removed per iteration.
// Any value below 1 makes the residual sequence non-increasing.
const DefaultDamping = 0.28

// Index weights and the residual scale that turns an index shortfall into a
// deviation in millimetres.
const (
	windWeight      = 0.35
	deadWeight      = 0.25
	stabilityWeight = 0.40
	residualScaleMM = 0.12
)

// Step is one damped adjustment, kept for display.
type Step struct {
	Iteration    int     `json:"iteration"`
	ResidualMM   float64 `json:"residual_mm"`
	AdjustmentMM float64 `json:"adjustment_mm"`
}

// Result of the iterative correction. IterationsUsed never exceeds the
// configured maximum; Converged=false means the final residual still
// exceeds the tolerance and the result is best-effort, not an error.
type Result struct {
	Steps               []Step  `json:"steps"`
	IterationsUsed      int     `json:"iterations_used"`
	ResidualDeviationMM float64 `json:"residual_deviation_mm"`
	AssemblyFitScore    float64 `json:"assembly_fit_score"`
	Converged           bool    `json:"converged"`
}

// Correct runs the damped adjustment with the default damping factor.
func Correct(m structural.Metrics, tolerance float64, maxIterations int) (Result, error) {
	return CorrectDamped(m, tolerance, maxIterations, DefaultDamping)
}

// CorrectDamped iteratively reduces the residual deviation. Each step
// removes damping*residual, so the residual is res0*(1-damping)^n:
// strictly non-increasing and convergent for any damping in (0,1).
// The loop stops at residual <= tolerance or at the iteration budget,
// whichever comes first. Deterministic for fixed inputs.
func CorrectDamped(m structural.Metrics, tolerance float64, maxIterations int, damping float64) (Result, error) {
	if tolerance <= 0 {
		return Result{}, fmt.Errorf("%w: tolerance must be positive", ErrInvalidTolerance)
	}
	if maxIterations <= 0 {
		return Result{}, fmt.Errorf("%w: max iterations must be positive", ErrInvalidTolerance)
	}
	if damping <= 0 || damping >= 1 {
		return Result{}, fmt.Errorf("%w: damping must lie in (0,1)", ErrInvalidTolerance)
	}

	residual := initialResidualMM(m)
	steps := make([]Step, 0, maxIterations)
	used := 0
	for used < maxIterations && residual > tolerance {
		used++
		adjustment := residual * damping
		residual -= adjustment
		steps = append(steps, Step{Iteration: used, ResidualMM: residual, AdjustmentMM: adjustment})
	}

	return Result{
		Steps:               steps,
		IterationsUsed:      used,
		ResidualDeviationMM: residual,
		AssemblyFitScore:    fitScore(residual),
		Converged:           residual <= tolerance,
	}, nil
}

// initialResidualMM measures how far each index sits below its target band
// top (100), combined with fixed weights.
func initialResidualMM(m structural.Metrics) float64 {
	shortfall := (100-m.WindPressureIndex)*windWeight +
		(100-m.DeadLoadIndex)*deadWeight +
		(100-m.StabilityIndex)*stabilityWeight
	if shortfall < 0 {
		shortfall = 0
	}
	return shortfall * residualScaleMM
}

// fitScore maps the final residual to an assembly-fit score. Monotonically
// decreasing in the residual, bounded to [0,100].
func fitScore(residualMM float64) float64 {
	score := 100 - residualMM*12
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

package correction_test

import (
	"testing"

	correction "Facade/internal/calc/correction"
	geometry "Facade/internal/calc/geometry"
	params "Facade/internal/calc/params"
	structural "Facade/internal/calc/structural"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inBandMetrics(t *testing.T) structural.Metrics {
	t.Helper()
	set := params.Set{
		ID:               "QA-01",
		ModuleWidthM:     1.5,
		ModuleHeightM:    3.0,
		ModuleDepthM:     0.24,
		CurvatureRadiusM: 28.0,
		TiltAngleDeg:     3.5,
		MullionSpacingM:  1.42,
		PanelThicknessM:  0.021,
		WindZone:         params.WindZoneHigh,
		Material:         params.MaterialAluminum,
	}
	m, err := geometry.Generate(set)
	require.NoError(t, err)
	metrics, err := structural.Analyze(m, set, structural.DefaultConfig())
	require.NoError(t, err)
	return metrics
}

// outOfBandMetrics sits far below every target band.
func outOfBandMetrics() structural.Metrics {
	return structural.Metrics{WindPressureIndex: 0, DeadLoadIndex: 0, StabilityIndex: 0}
}

// TestCorrect_ConvergesWithinBudget verifies in-band metrics converge well
// inside a 50-iteration budget at 0.01mm tolerance.
func TestCorrect_ConvergesWithinBudget(t *testing.T) {
	res, err := correction.Correct(inBandMetrics(t), 0.01, 50)
	require.NoError(t, err)

	assert.True(t, res.Converged, "in-band metrics must converge")
	assert.LessOrEqual(t, res.IterationsUsed, 50)
	assert.LessOrEqual(t, res.ResidualDeviationMM, 0.01)
}

// TestCorrect_BudgetExhaustion checks a one-iteration budget on far
// out-of-band metrics returns a flagged, non-converged result, not an error.
func TestCorrect_BudgetExhaustion(t *testing.T) {
	res, err := correction.Correct(outOfBandMetrics(), 0.01, 1)
	require.NoError(t, err, "non-convergence is data, not a fault")

	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.IterationsUsed)
	assert.Greater(t, res.ResidualDeviationMM, 0.01, "non-convergence implies residual above tolerance")
}

// TestCorrect_ResidualMonotone verifies the residual never increases across
// iterations for a damping factor below 1.
func TestCorrect_ResidualMonotone(t *testing.T) {
	res, err := correction.CorrectDamped(outOfBandMetrics(), 1e-6, 40, 0.15)
	require.NoError(t, err)

	prev := res.Steps[0].ResidualMM
	for _, step := range res.Steps[1:] {
		assert.LessOrEqual(t, step.ResidualMM, prev, "iteration %d", step.Iteration)
		prev = step.ResidualMM
	}
}

// TestCorrect_FitBounds checks the assembly-fit score stays in [0,100] for
// both clean and hopeless inputs.
func TestCorrect_FitBounds(t *testing.T) {
	clean, err := correction.Correct(inBandMetrics(t), 0.01, 50)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, clean.AssemblyFitScore, 0.0)
	assert.LessOrEqual(t, clean.AssemblyFitScore, 100.0)

	rough, err := correction.Correct(outOfBandMetrics(), 0.01, 1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rough.AssemblyFitScore, 0.0)
	assert.LessOrEqual(t, rough.AssemblyFitScore, 100.0)
	assert.Less(t, rough.AssemblyFitScore, clean.AssemblyFitScore, "fit decreases with residual")
}

// TestCorrect_InvalidKnobs rejects non-positive tolerance or budget and a
// damping factor outside (0,1).
func TestCorrect_InvalidKnobs(t *testing.T) {
	_, err := correction.Correct(outOfBandMetrics(), 0, 10)
	assert.ErrorIs(t, err, correction.ErrInvalidTolerance)

	_, err = correction.Correct(outOfBandMetrics(), 0.01, 0)
	assert.ErrorIs(t, err, correction.ErrInvalidTolerance)

	_, err = correction.CorrectDamped(outOfBandMetrics(), 0.01, 10, 1.2)
	assert.ErrorIs(t, err, correction.ErrInvalidTolerance)
}

// TestCorrect_Deterministic checks repeated correction of identical inputs
// is identical.
func TestCorrect_Deterministic(t *testing.T) {
	a, errA := correction.Correct(outOfBandMetrics(), 0.05, 20)
	b, errB := correction.Correct(outOfBandMetrics(), 0.05, 20)
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, a, b)
}

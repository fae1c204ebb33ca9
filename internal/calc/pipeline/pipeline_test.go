package pipeline_test

import (
	"testing"
	"time"

	association "Facade/internal/calc/association"
	correction "Facade/internal/calc/correction"
	params "Facade/internal/calc/params"
	pipeline "Facade/internal/calc/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() pipeline.Input {
	return pipeline.Input{
		Params: params.Set{
			ID:               "QA-01",
			Name:             "Reference Unit",
			ModuleWidthM:     1.5,
			ModuleHeightM:    3.0,
			ModuleDepthM:     0.24,
			CurvatureRadiusM: 28.0,
			TiltAngleDeg:     3.5,
			MullionSpacingM:  1.42,
			PanelThicknessM:  0.021,
			WindZone:         params.WindZoneHigh,
			ThermalGradientC: 16.0,
			Material:         params.MaterialAluminum,
		},
		Baseline: &association.Baseline{Stages: map[string]float64{
			"Concept":      0.9,
			"Design Freeze": 0.85,
			"Mockup":       0.9,
			"Fabrication":  0.92,
			"Installation": 0.88,
		}},
	}
}

// TestRun_FullPipeline verifies a clean end-to-end run with every score
// inside its declared bounds.
func TestRun_FullPipeline(t *testing.T) {
	res, err := pipeline.Run(sampleInput())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Validation.AggregateScore, 0.0)
	assert.LessOrEqual(t, res.Validation.AggregateScore, 100.0)
	assert.Len(t, res.Structural.Stress, len(res.Geometry.Nodes))
	assert.GreaterOrEqual(t, res.Correction.AssemblyFitScore, 0.0)
	assert.LessOrEqual(t, res.Correction.AssemblyFitScore, 100.0)
	for _, sc := range res.Association.Correlations {
		assert.GreaterOrEqual(t, sc.Correlation, 0.0, sc.Stage)
		assert.LessOrEqual(t, sc.Correlation, 1.0, sc.Stage)
	}
}

// TestRun_Deterministic checks two full runs of identical inputs produce
// identical result bundles.
func TestRun_Deterministic(t *testing.T) {
	a, errA := pipeline.Run(sampleInput())
	b, errB := pipeline.Run(sampleInput())
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b, "pipeline must be deterministic")
}

// TestRun_AbortsBeforeGeometry ensures a domain failure surfaces from the
// validation stage and no downstream stage output leaks out.
func TestRun_AbortsBeforeGeometry(t *testing.T) {
	in := sampleInput()
	in.Params.PanelThicknessM = -0.02

	res, err := pipeline.Run(in)
	assert.ErrorIs(t, err, params.ErrOutOfDomain)
	assert.Zero(t, res, "failed run returns an empty bundle")
}

// TestRun_InvalidOverride rejects a negative tolerance override.
func TestRun_InvalidOverride(t *testing.T) {
	in := sampleInput()
	in.ToleranceMM = -1

	_, err := pipeline.Run(in)
	assert.ErrorIs(t, err, correction.ErrInvalidTolerance)
}

// TestRun_DefaultsApplied checks the zero-valued overrides fall back to the
// documented defaults rather than failing.
func TestRun_DefaultsApplied(t *testing.T) {
	in := sampleInput()
	in.Rules = nil
	in.ToleranceMM = 0
	in.MaxIterations = 0
	in.Baseline = nil

	res, err := pipeline.Run(in)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Correction.IterationsUsed, pipeline.DefaultMaxIterations)
	for _, sc := range res.Association.Correlations {
		assert.Equal(t, 0.0, sc.Correlation, "no baseline means zero correlations")
	}
}

// TestSessionStore_AppendAndSnapshot verifies per-session isolation and the
// 12-entry bound through the store.
func TestSessionStore_AppendAndSnapshot(t *testing.T) {
	store := pipeline.NewSessionStore()
	res, err := pipeline.Run(sampleInput())
	require.NoError(t, err)

	entry := pipeline.NewEntry(time.Unix(1000, 0), sampleInput().Params, res, "test run")
	for i := 0; i < 15; i++ {
		store.Append(7, entry)
	}
	store.Append(8, entry)

	assert.Len(t, store.Snapshot(7), 12, "capacity enforced per session")
	assert.Len(t, store.Snapshot(8), 1, "sessions are isolated")
	assert.Empty(t, store.Snapshot(9))

	snap := store.Snapshot(7)
	assert.Equal(t, "QA-01", snap[0].ProfileID)
	assert.Equal(t, res.Correction.Converged, snap[0].Converged)
}

package geometry_test

import (
	"testing"

	geometry "Facade/internal/calc/geometry"
	params "Facade/internal/calc/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() params.Set {
	return params.Set{
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
	}
}

// TestGenerate_WeightsSumToOne verifies both the route distribution and the
// per-node path weights are normalized within floating tolerance.
func TestGenerate_WeightsSumToOne(t *testing.T) {
	m, err := geometry.Generate(sampleSet())
	require.NoError(t, err)

	routeSum := 0.0
	for _, r := range m.PathWeights {
		assert.GreaterOrEqual(t, r.Weight, 0.0, r.Name)
		routeSum += r.Weight
	}
	assert.InDelta(t, 1.0, routeSum, 1e-6, "route weights must sum to 1")

	nodeSum := 0.0
	for _, n := range m.Nodes {
		assert.GreaterOrEqual(t, n.PathWeight, 0.0)
		nodeSum += n.PathWeight
	}
	assert.InDelta(t, 1.0, nodeSum, 1e-6, "node path weights must sum to 1")
}

// TestGenerate_Subdivision checks the transom count follows spacing and
// span, and the node sequence covers both edges.
func TestGenerate_Subdivision(t *testing.T) {
	m, err := geometry.Generate(sampleSet())
	require.NoError(t, err)

	assert.Equal(t, 2, m.Subdivisions, "3.0m span at 1.42m spacing gives 2 lines")
	assert.Len(t, m.Nodes, m.Subdivisions+2)
	assert.Equal(t, 0.0, m.Nodes[0].ElevationM)
	assert.InDelta(t, 3.0, m.Nodes[len(m.Nodes)-1].ElevationM, 1e-9)
}

// TestGenerate_DerivedQuantities sanity-checks area, perimeter and volume.
func TestGenerate_DerivedQuantities(t *testing.T) {
	m, err := geometry.Generate(sampleSet())
	require.NoError(t, err)

	assert.InDelta(t, 4.5, m.ProjectedAreaM2, 1e-9)
	assert.InDelta(t, 9.0, m.PerimeterM, 1e-9)
	assert.InDelta(t, 1.08, m.EnvelopeVolumeM3, 1e-9)
	assert.Greater(t, m.FrameWeightKN, 0.0)
	assert.Len(t, m.OutlineM, 4)
}

// TestGenerate_CollapsedDimensions ensures zero or negative dimensions fail
// with ErrDegenerateGeometry before any synthesis.
func TestGenerate_CollapsedDimensions(t *testing.T) {
	s := sampleSet()
	s.ModuleWidthM = 0
	_, err := geometry.Generate(s)
	assert.ErrorIs(t, err, geometry.ErrDegenerateGeometry)

	s = sampleSet()
	s.PanelThicknessM = -0.01
	_, err = geometry.Generate(s)
	assert.ErrorIs(t, err, geometry.ErrDegenerateGeometry)
}

// TestGenerate_NonPositiveSubdivision ensures spacing wider than the span
// yields ErrDegenerateGeometry rather than an empty node sequence.
func TestGenerate_NonPositiveSubdivision(t *testing.T) {
	s := sampleSet()
	s.MullionSpacingM = 3.5

	_, err := geometry.Generate(s)
	assert.ErrorIs(t, err, geometry.ErrDegenerateGeometry)
}

// TestGenerate_Deterministic checks the same set always yields the same
// model.
func TestGenerate_Deterministic(t *testing.T) {
	a, errA := geometry.Generate(sampleSet())
	b, errB := geometry.Generate(sampleSet())
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, a, b, "geometry synthesis must be deterministic")
}

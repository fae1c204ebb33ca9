package batch_test

import (
	"testing"

	batch "Facade/internal/calc/batch"
	params "Facade/internal/calc/params"
	pipeline "Facade/internal/calc/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(width float64) pipeline.Input {
	return pipeline.Input{
		Params: params.Set{
			ID:               "B-01",
			ModuleWidthM:     width,
			ModuleHeightM:    3.0,
			ModuleDepthM:     0.24,
			CurvatureRadiusM: 28.0,
			TiltAngleDeg:     3.5,
			MullionSpacingM:  1.42,
			PanelThicknessM:  0.021,
			WindZone:         params.WindZoneMedium,
			Material:         params.MaterialGlass,
		},
	}
}

// TestCalculate_RunsEveryItem verifies one result per input item.
func TestCalculate_RunsEveryItem(t *testing.T) {
	res, err := batch.Calculate(batch.Input{Items: []pipeline.Input{item(1.2), item(1.5)}})
	require.NoError(t, err)
	assert.Len(t, res.Results, 2)
}

// TestCalculate_EmptyBatch rejects an empty item list.
func TestCalculate_EmptyBatch(t *testing.T) {
	_, err := batch.Calculate(batch.Input{})
	assert.Error(t, err)
}

// TestCalculate_AbortsOnBadItem ensures the first failing item aborts the
// whole batch.
func TestCalculate_AbortsOnBadItem(t *testing.T) {
	bad := item(-1)
	_, err := batch.Calculate(batch.Input{Items: []pipeline.Input{item(1.2), bad}})
	assert.Error(t, err)
}

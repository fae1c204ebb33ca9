package params_test

import (
	"testing"

	params "Facade/internal/calc/params"
	"github.com/stretchr/testify/assert"
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

// TestValidate_WithinDomain verifies a 1.5m x 3.0m high-wind-zone unit
// scores without error and stays inside the score bounds.
func TestValidate_WithinDomain(t *testing.T) {
	res, err := params.Validate(sampleSet(), params.DefaultRules())
	assert.NoError(t, err, "within-domain set must validate")
	assert.GreaterOrEqual(t, res.AggregateScore, 0.0)
	assert.LessOrEqual(t, res.AggregateScore, 100.0)
	assert.GreaterOrEqual(t, res.RuleMatchScore, 0.0)
	assert.LessOrEqual(t, res.RuleMatchScore, 100.0)
	assert.Equal(t, 100.0, res.CompletenessScore, "fully specified set covers all auxiliary fields")
	for _, ind := range res.Indicators {
		assert.GreaterOrEqual(t, ind.Score, 0.0, ind.Field)
		assert.LessOrEqual(t, ind.Score, 100.0, ind.Field)
	}
}

// TestValidate_NegativeThickness ensures a negative dimension is a hard
// ErrOutOfDomain failure, not merely a low score.
func TestValidate_NegativeThickness(t *testing.T) {
	s := sampleSet()
	s.PanelThicknessM = -0.02

	_, err := params.Validate(s, params.DefaultRules())
	assert.ErrorIs(t, err, params.ErrOutOfDomain, "negative thickness must be out of domain")
}

// TestValidate_MissingField ensures an absent rule-referenced field fails
// with ErrMissingParameter.
func TestValidate_MissingField(t *testing.T) {
	s := sampleSet()
	s.ModuleDepthM = 0

	_, err := params.Validate(s, params.DefaultRules())
	assert.ErrorIs(t, err, params.ErrMissingParameter, "unset depth must be reported missing")
}

// TestValidate_UnknownEnums rejects wind zones and materials outside the
// declared domains.
func TestValidate_UnknownEnums(t *testing.T) {
	s := sampleSet()
	s.Material = "titanium"
	_, err := params.Validate(s, params.DefaultRules())
	assert.ErrorIs(t, err, params.ErrOutOfDomain)

	s = sampleSet()
	s.WindZone = "hurricane"
	_, err = params.Validate(s, params.DefaultRules())
	assert.ErrorIs(t, err, params.ErrOutOfDomain)
}

// TestValidate_BadRules rejects a malformed rule band before scoring.
func TestValidate_BadRules(t *testing.T) {
	rules := params.DefaultRules()
	rules.ModuleWidth = params.Band{Target: 1.2, Min: 2.0, Max: 1.0, Weight: 1.0}

	_, err := params.Validate(sampleSet(), rules)
	assert.Error(t, err, "inverted band must be rejected")
}

// TestValidate_Deterministic checks two invocations produce identical
// results for fixed inputs.
func TestValidate_Deterministic(t *testing.T) {
	a, errA := params.Validate(sampleSet(), params.DefaultRules())
	b, errB := params.Validate(sampleSet(), params.DefaultRules())
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, a, b, "validation must be deterministic")
}

// TestDesignWindSpeed_ZoneMapping checks the zone defaults and that an
// explicit speed overrides the class.
func TestDesignWindSpeed_ZoneMapping(t *testing.T) {
	s := sampleSet()
	assert.Equal(t, 42.0, s.DesignWindSpeedMS(), "high zone maps to 42 m/s")

	s.WindSpeedMS = 38.0
	assert.Equal(t, 38.0, s.DesignWindSpeedMS(), "explicit speed wins")

	s.WindSpeedMS = 0
	s.WindZone = ""
	assert.Equal(t, 32.0, s.DesignWindSpeedMS(), "unset zone defaults to medium")
}

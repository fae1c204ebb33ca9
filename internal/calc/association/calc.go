package association

import (
	correction "Facade/internal/calc/correction"
	geometry "Facade/internal/calc/geometry"
	structural "Facade/internal/calc/structural"
)

// Stages is the design-to-field timeline, in pipeline order.
var Stages = []string{"Concept", "Design Freeze", "Mockup", "Fabrication", "Installation"}

// Baseline holds the expected reference value per stage, in [0,1].
// Loaded from the preset dataset by the caller; the engine only reads it.
type Baseline struct {
	Stages map[string]float64 `json:"stages"`
}

type StageCorrelation struct {
	Stage       string  `json:"stage"`
	Correlation float64 `json:"correlation"`
}

// ComparisonRow pairs a baseline expectation with the computed value.
type ComparisonRow struct {
	Stage    string  `json:"stage"`
	Expected float64 `json:"expected"`
	Observed float64 `json:"observed"`
	Delta    float64 `json:"delta"`
}

// Score is the per-stage correlation vector plus the design-vs-field table.
type Score struct {
	Correlations []StageCorrelation `json:"correlations"`
	Comparison   []ComparisonRow    `json:"comparison"`
}

// Associate correlates the computed pipeline values with the baseline
// references. A stage missing from the baseline scores 0 and leaves the
// other stages untouched; partial results beat none, so there is no
// failure mode here.
func Associate(g geometry.Model, m structural.Metrics, c correction.Result, baseline Baseline) Score {
	observed := observedByStage(g, m, c)

	correlations := make([]StageCorrelation, 0, len(Stages))
	comparison := make([]ComparisonRow, 0, len(Stages))
	for i, stage := range Stages {
		obs := observed[i]
		expected, ok := baseline.Stages[stage]
		corr := 0.0
		if ok && expected > 0 {
			corr = clamp01(1 - abs(expected-obs)/expected)
		}
		correlations = append(correlations, StageCorrelation{Stage: stage, Correlation: corr})
		comparison = append(comparison, ComparisonRow{
			Stage:    stage,
			Expected: expected,
			Observed: obs,
			Delta:    obs - expected,
		})
	}
	return Score{Correlations: correlations, Comparison: comparison}
}

// observedByStage projects the pipeline outputs onto the timeline, one
// normalized value per stage.
func observedByStage(g geometry.Model, m structural.Metrics, c correction.Result) []float64 {
	installFit := 1 - c.ResidualDeviationMM/10
	return []float64{
		clamp01(m.StabilityIndex / 100),
		clamp01(m.WindPressureIndex / 100),
		clamp01(m.DeadLoadIndex / 100),
		clamp01(c.AssemblyFitScore / 100),
		clamp01(installFit * (0.6 + 0.4*g.Coefficients.MullionCoupling)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

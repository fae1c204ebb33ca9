package params

import (
	"errors"
	"fmt"
	"math"
)

// Validation failure kinds, surfaced verbatim to the caller.
var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrOutOfDomain      = errors.New("parameter out of physical domain")
)

type WindZone string

const (
	WindZoneLow    WindZone = "low"
	WindZoneMedium WindZone = "medium"
	WindZoneHigh   WindZone = "high"
	WindZoneSevere WindZone = "severe"
)

type Material string

const (
	MaterialAluminum Material = "aluminum"
	MaterialGlass    Material = "glass"
	MaterialSteel    Material = "steel"
)

// Set is one curtain-wall unit parameter set. Immutable for a pipeline run.
type Set struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ModuleWidthM     float64  `json:"module_width_m"`
	ModuleHeightM    float64  `json:"module_height_m"`
	ModuleDepthM     float64  `json:"module_depth_m"`
	CurvatureRadiusM float64  `json:"curvature_radius_m"`
	TiltAngleDeg     float64  `json:"tilt_angle_deg"`
	MullionSpacingM  float64  `json:"mullion_spacing_m"`
	PanelThicknessM  float64  `json:"panel_thickness_m"`
	WindZone         WindZone `json:"wind_zone"`
	WindSpeedMS      float64  `json:"wind_speed_ms"` // optional override of the zone speed
	ThermalGradientC float64  `json:"thermal_gradient_c"`
	Material         Material `json:"material"`
}

// DesignWindSpeedMS resolves the design wind speed: an explicit override
// wins, otherwise the zone class maps to its default speed.
func (s Set) DesignWindSpeedMS() float64 {
	if s.WindSpeedMS > 0 {
		return s.WindSpeedMS
	}
	switch s.WindZone {
	case WindZoneLow:
		return 24
	case WindZoneHigh:
		return 42
	case WindZoneSevere:
		return 52
	default:
		return 32
	}
}

// Band is the scoring rule for one field: full score near Target, linear
// penalty growing with distance, [Min,Max] being the designer comfort range.
type Band struct {
	Target float64 `json:"target"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Weight float64 `json:"weight"`
}

// Rules enumerates every scored dimension. No free-form maps: overrides
// replace whole named bands.
type Rules struct {
	ModuleWidth     Band `json:"module_width"`
	ModuleHeight    Band `json:"module_height"`
	ModuleDepth     Band `json:"module_depth"`
	CurvatureRadius Band `json:"curvature_radius"`
	TiltAngle       Band `json:"tilt_angle"`
	MullionSpacing  Band `json:"mullion_spacing"`
	PanelThickness  Band `json:"panel_thickness"`
}

// DefaultRules returns the reference rule table (metres and degrees).
func DefaultRules() Rules {
	return Rules{
		ModuleWidth:     Band{Target: 1.2, Min: 0.8, Max: 1.8, Weight: 1.0},
		ModuleHeight:    Band{Target: 3.2, Min: 2.4, Max: 4.2, Weight: 1.2},
		ModuleDepth:     Band{Target: 0.26, Min: 0.18, Max: 0.35, Weight: 0.9},
		CurvatureRadius: Band{Target: 36.0, Min: 8.0, Max: 60.0, Weight: 1.1},
		TiltAngle:       Band{Target: 4.5, Min: -3.0, Max: 9.0, Weight: 0.8},
		MullionSpacing:  Band{Target: 1.5, Min: 1.0, Max: 2.2, Weight: 0.7},
		PanelThickness:  Band{Target: 0.022, Min: 0.016, Max: 0.032, Weight: 0.9},
	}
}

// Validate rejects malformed bands before any scoring happens.
func (r Rules) Validate() error {
	for _, row := range ruleRows(r, Set{}) {
		if row.band.Min >= row.band.Max {
			return fmt.Errorf("%w: rule band %s has min >= max", ErrOutOfDomain, row.field)
		}
		if row.band.Weight <= 0 {
			return fmt.Errorf("%w: rule band %s has non-positive weight", ErrOutOfDomain, row.field)
		}
	}
	return nil
}

type Indicator struct {
	Field string  `json:"field"`
	Score float64 `json:"score"`
}

// Validation is the scoring output consumed by the geometry stage and the UI.
type Validation struct {
	CompletenessScore float64     `json:"completeness_score"`
	RuleMatchScore    float64     `json:"rule_match_score"`
	AggregateScore    float64     `json:"aggregate_score"`
	Indicators        []Indicator `json:"indicators"`
	Notes             string      `json:"notes"`
}

type ruleRow struct {
	field    string
	band     Band
	value    float64
	required bool
	// physical domain, independent of the scoring band
	domainMin float64
	domainMax float64
}

func ruleRows(r Rules, s Set) []ruleRow {
	return []ruleRow{
		{"module_width_m", r.ModuleWidth, s.ModuleWidthM, true, 0, 20},
		{"module_height_m", r.ModuleHeight, s.ModuleHeightM, true, 0, 40},
		{"module_depth_m", r.ModuleDepth, s.ModuleDepthM, true, 0, 5},
		{"curvature_radius_m", r.CurvatureRadius, s.CurvatureRadiusM, true, 0, 1000},
		{"tilt_angle_deg", r.TiltAngle, s.TiltAngleDeg, false, -90, 90},
		{"mullion_spacing_m", r.MullionSpacing, s.MullionSpacingM, true, 0, 20},
		{"panel_thickness_m", r.PanelThickness, s.PanelThicknessM, true, 0, 1},
	}
}

// Validate scores a parameter set against the rule table.
//
// Scoring (documented choice, the reference curves were only described at
// feature level): per-field gap = |value-target| / (spread/2) capped at 1.8,
// indicator = 100 - gap*55*weight clamped to [0,100]; rule match =
// max(0, 100 - sum(gap*weight)*18); aggregate = weighted mean of the
// indicators with band weights normalized to sum 1.0.
//
// Missing required fields fail with ErrMissingParameter; values outside the
// physical domain fail with ErrOutOfDomain. Both abort before geometry.
func Validate(s Set, rules Rules) (Validation, error) {
	if err := rules.Validate(); err != nil {
		return Validation{}, err
	}
	if err := checkDomain(s, rules); err != nil {
		return Validation{}, err
	}

	rows := ruleRows(rules, s)
	indicators := make([]Indicator, 0, len(rows))
	penalty := 0.0
	weightSum := 0.0
	weighted := 0.0
	for _, row := range rows {
		spread := row.band.Max - row.band.Min
		gap := math.Abs(row.value-row.band.Target) / (spread / 2)
		if gap > 1.8 {
			gap = 1.8
		}
		score := clamp(100-gap*55*row.band.Weight, 0, 100)
		indicators = append(indicators, Indicator{Field: row.field, Score: round2(score)})
		penalty += gap * row.band.Weight
		weightSum += row.band.Weight
		weighted += score * row.band.Weight
	}

	ruleMatch := round2(math.Max(0, 100-penalty*18))
	aggregate := round2(weighted / weightSum)
	completeness := completenessScore(s)

	notes := "Review highlighted inputs to strengthen rule alignment"
	if completeness > 90 && ruleMatch > 72 {
		notes = "Parameter coverage satisfactory; proceed to geometry synthesis"
	}

	return Validation{
		CompletenessScore: completeness,
		RuleMatchScore:    ruleMatch,
		AggregateScore:    aggregate,
		Indicators:        indicators,
		Notes:             notes,
	}, nil
}

func checkDomain(s Set, rules Rules) error {
	for _, row := range ruleRows(rules, s) {
		if row.required && row.value == 0 {
			return fmt.Errorf("%w: %s", ErrMissingParameter, row.field)
		}
		if row.value < row.domainMin || row.value > row.domainMax {
			return fmt.Errorf("%w: %s", ErrOutOfDomain, row.field)
		}
	}
	switch s.WindZone {
	case "", WindZoneLow, WindZoneMedium, WindZoneHigh, WindZoneSevere:
	default:
		return fmt.Errorf("%w: wind_zone %q", ErrOutOfDomain, s.WindZone)
	}
	switch s.Material {
	case "", MaterialAluminum, MaterialGlass, MaterialSteel:
	default:
		return fmt.Errorf("%w: material %q", ErrOutOfDomain, s.Material)
	}
	if s.WindSpeedMS < 0 || s.WindSpeedMS > 120 {
		return fmt.Errorf("%w: wind_speed_ms", ErrOutOfDomain)
	}
	if s.ThermalGradientC < 0 || s.ThermalGradientC > 80 {
		return fmt.Errorf("%w: thermal_gradient_c", ErrOutOfDomain)
	}
	return nil
}

// completenessScore covers the auxiliary inputs that default when absent;
// the rule-referenced fields are hard-required, so only these can lower it.
func completenessScore(s Set) float64 {
	present := 0
	if s.WindZone != "" || s.WindSpeedMS > 0 {
		present++
	}
	if s.ThermalGradientC > 0 {
		present++
	}
	if s.Material != "" {
		present++
	}
	if s.ID != "" || s.Name != "" {
		present++
	}
	return round2(100 * float64(7+present) / 11)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

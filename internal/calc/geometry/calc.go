package geometry

import (
	"errors"
	"fmt"
	"math"

	params "Facade/internal/calc/params"
)

// ErrDegenerateGeometry covers collapsed dimensions, a non-positive mullion
// subdivision count, and degenerate weight sums. Internal numeric hazards
// (division by a zero weight sum) surface as this error, never as a panic.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// densityKNM3 is the self-weight proxy per material (kN/m3).
var densityKNM3 = map[params.Material]float64{
	params.MaterialAluminum: 27.0,
	params.MaterialGlass:    25.0,
	params.MaterialSteel:    78.5,
}

const defaultDensityKNM3 = 30.0

// Node is one stress-sampling point on a horizontal framing line.
type Node struct {
	Index      int     `json:"index"`
	ElevationM float64 `json:"elevation_m"`
	PathWeight float64 `json:"path_weight"`
}

// Route is one structural load path with its normalized weight share.
type Route struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type Coefficients struct {
	CurvatureInfluence float64 `json:"curvature_influence"`
	TiltResponse       float64 `json:"tilt_response"`
	MullionCoupling    float64 `json:"mullion_coupling"`
	ThicknessRatio     float64 `json:"thickness_ratio"`
}

// Model is the synthesized unit geometry. Route weights and node path
// weights each sum to 1.0 within floating tolerance.
type Model struct {
	OutlineM         [][2]float64 `json:"outline_m"`
	ProjectedAreaM2  float64      `json:"projected_area_m2"`
	PerimeterM       float64      `json:"perimeter_m"`
	EnvelopeVolumeM3 float64      `json:"envelope_volume_m3"`
	FrameWeightKN    float64      `json:"frame_weight_kn"`
	Subdivisions     int          `json:"subdivisions"`
	Nodes            []Node       `json:"nodes"`
	PathWeights      []Route      `json:"path_weights"`
	Coefficients     Coefficients `json:"coefficients"`
}

// Generate synthesizes the unit geometry from a parameter set. Deterministic:
// the same set always yields the same model down to floating-point rounding.
func Generate(in params.Set) (Model, error) {
	if in.ModuleWidthM <= 0 || in.ModuleHeightM <= 0 || in.ModuleDepthM <= 0 {
		return Model{}, fmt.Errorf("%w: collapsed module dimensions", ErrDegenerateGeometry)
	}
	if in.MullionSpacingM <= 0 || in.PanelThicknessM <= 0 {
		return Model{}, fmt.Errorf("%w: collapsed framing dimensions", ErrDegenerateGeometry)
	}

	w, h := in.ModuleWidthM, in.ModuleHeightM
	area := w * h
	volume := area * in.ModuleDepthM
	curvature := 1 / math.Max(in.CurvatureRadiusM, 1)
	tiltRad := in.TiltAngleDeg * math.Pi / 180

	density, ok := densityKNM3[in.Material]
	if !ok {
		density = defaultDensityKNM3
	}
	frameWeight := volume * density * 0.85

	// Transom lines at spacing intervals along the span.
	sub := int(h / in.MullionSpacingM)
	if sub <= 0 {
		return Model{}, fmt.Errorf("%w: non-positive subdivision count", ErrDegenerateGeometry)
	}

	nodes, err := buildNodes(sub, h)
	if err != nil {
		return Model{}, err
	}

	routes, err := buildRoutes(area, volume, frameWeight, curvature, tiltRad, in.PanelThicknessM)
	if err != nil {
		return Model{}, err
	}

	return Model{
		OutlineM:         [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}},
		ProjectedAreaM2:  area,
		PerimeterM:       2 * (w + h),
		EnvelopeVolumeM3: volume,
		FrameWeightKN:    frameWeight,
		Subdivisions:     sub,
		Nodes:            nodes,
		PathWeights:      routes,
		Coefficients: Coefficients{
			CurvatureInfluence: curvature * 120,
			TiltResponse:       math.Sin(tiltRad) * 45,
			MullionCoupling:    in.MullionSpacingM / w,
			ThicknessRatio:     in.PanelThicknessM / in.ModuleDepthM,
		},
	}, nil
}

// buildNodes places one node per transom line plus both edge lines. Edge
// nodes carry half a tributary span, interior nodes a full one.
func buildNodes(sub int, heightM float64) ([]Node, error) {
	count := sub + 2
	raw := make([]float64, count)
	sum := 0.0
	for i := range raw {
		raw[i] = 1.0
		if i == 0 || i == count-1 {
			raw[i] = 0.5
		}
		sum += raw[i]
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: node weight sum", ErrDegenerateGeometry)
	}
	nodes := make([]Node, count)
	for i := range nodes {
		nodes[i] = Node{
			Index:      i + 1,
			ElevationM: heightM * float64(i) / float64(count-1),
			PathWeight: raw[i] / sum,
		}
	}
	return nodes, nil
}

// buildRoutes assigns each load path a weight proportional to its span/load
// share and normalizes the distribution.
func buildRoutes(area, volume, frameWeight, curvature, tiltRad, thickness float64) ([]Route, error) {
	routes := []Route{
		{Name: "panel_field", Weight: area},
		{Name: "envelope", Weight: volume * (1 + curvature*12)},
		{Name: "frame", Weight: frameWeight * (0.5 + math.Abs(tiltRad))},
		{Name: "thickness", Weight: thickness * 10},
	}
	sum := 0.0
	for _, r := range routes {
		sum += r.Weight
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: route weight sum", ErrDegenerateGeometry)
	}
	for i := range routes {
		routes[i].Weight /= sum
	}
	return routes, nil
}

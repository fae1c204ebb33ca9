package structural

import (
	"fmt"
	"math"

	geometry "Facade/internal/calc/geometry"
	params "Facade/internal/calc/params"
)

// Config holds the analyzer knobs. Breaching SafetyThreshold flags the
// index in the result; it never raises an error, engineers explore
// out-of-spec designs on purpose.
type Config struct {
	SafetyThreshold float64 `json:"safety_threshold"`
}

func DefaultConfig() Config {
	return Config{SafetyThreshold: 55}
}

// NodeStress is one sample of the per-node stress sequence.
type NodeStress struct {
	Node        int     `json:"node"`
	ElevationM  float64 `json:"elevation_m"`
	BaselineKN  float64 `json:"baseline_kn"`
	GeneratedKN float64 `json:"generated_kn"`
	OptimizedKN float64 `json:"optimized_kn"`
}

// Metrics bundles the three bounded indices and the stress sequence.
// len(Stress) always equals the geometry node count.
type Metrics struct {
	WindPressureKPa   float64      `json:"wind_pressure_kpa"`
	WindPressureIndex float64      `json:"wind_pressure_index"`
	DeadLoadKN        float64      `json:"dead_load_kn"`
	DeadLoadIndex     float64      `json:"dead_load_index"`
	StabilityIndex    float64      `json:"stability_index"`
	Stress            []NodeStress `json:"stress"`
	Flags             []string     `json:"flags,omitempty"`
}

// Analyze computes the load/stability indices for a generated unit.
//
// Wind pressure follows 0.613*v^2 with an exposure factor growing with
// height; the dead load comes from the frame self-weight; stability
// penalizes aspect ratios and mullion coupling outside their safe bands.
// All indices are clamped to [0,100]. Load is distributed across nodes
// proportional to each node's path weight.
func Analyze(g geometry.Model, in params.Set, cfg Config) (Metrics, error) {
	if len(g.Nodes) < 2 {
		return Metrics{}, fmt.Errorf("%w: node sequence too short", geometry.ErrDegenerateGeometry)
	}

	v := in.DesignWindSpeedMS()
	exposure := 0.5 + in.ModuleHeightM/12
	windPressure := 0.613 * v * v * exposure / 1000 // kPa
	windLoad := windPressure * g.ProjectedAreaM2
	windIndex := clamp(100-windLoad*4, 0, 100)

	deadLoad := g.FrameWeightKN * 0.0098
	deadIndex := clamp(100-deadLoad*30, 0, 100)

	stability := stabilityIndex(in)

	baseline := math.Sqrt(windPressure*windPressure + deadLoad*deadLoad)
	amplify := 1 + g.Coefficients.CurvatureInfluence/400
	n := len(g.Nodes)
	stress := make([]NodeStress, n)
	for i, node := range g.Nodes {
		share := node.PathWeight * float64(n)
		gradient := 1 + float64(i)/float64(n-1)*0.32
		generated := baseline * share * gradient * amplify
		stress[i] = NodeStress{
			Node:        node.Index,
			ElevationM:  node.ElevationM,
			BaselineKN:  baseline * gradient,
			GeneratedKN: generated,
			OptimizedKN: generated * (0.92 - float64(i)*0.015),
		}
	}

	m := Metrics{
		WindPressureKPa:   windPressure,
		WindPressureIndex: windIndex,
		DeadLoadKN:        deadLoad,
		DeadLoadIndex:     deadIndex,
		StabilityIndex:    stability,
		Stress:            stress,
	}
	if windIndex < cfg.SafetyThreshold {
		m.Flags = append(m.Flags, "wind_pressure_index")
	}
	if deadIndex < cfg.SafetyThreshold {
		m.Flags = append(m.Flags, "dead_load_index")
	}
	if stability < cfg.SafetyThreshold {
		m.Flags = append(m.Flags, "stability_index")
	}
	return m, nil
}

// stabilityIndex scores the height/width aspect ratio against a [1.6,3.4]
// safe band and the spacing/width coupling against [0.8,1.4]; the penalty
// grows linearly with the distance outside each band.
func stabilityIndex(in params.Set) float64 {
	aspect := in.ModuleHeightM / in.ModuleWidthM
	coupling := in.MullionSpacingM / in.ModuleWidthM
	penalty := bandDeviation(aspect, 1.6, 3.4)*28 + bandDeviation(coupling, 0.8, 1.4)*22
	return clamp(100-penalty, 0, 100)
}

func bandDeviation(v, lo, hi float64) float64 {
	half := (hi - lo) / 2
	switch {
	case v < lo:
		return (lo - v) / half
	case v > hi:
		return (v - hi) / half
	default:
		return 0
	}
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

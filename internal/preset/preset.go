package preset

import (
	"encoding/json"
	"net/http"

	params "Facade/internal/calc/params"
	"Facade/internal/repo"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo repo.Repository
}

// List returns the preset dataset, falling back to the built-in profiles
// when the store has not been seeded yet.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	presets, err := h.Repo.ListPresets(r.Context())
	if err != nil || len(presets) == 0 {
		presets = Builtin()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(presets)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "Preset id required", http.StatusBadRequest)
		return
	}

	p, err := h.Repo.GetPreset(r.Context(), id)
	if err != nil {
		for _, b := range Builtin() {
			if b.ID == id {
				p = b
				err = nil
				break
			}
		}
	}
	if err != nil {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// Builtin returns the reference design profiles shipped with the service.
// Baselines are filled in by the seed tool from a pipeline pass.
func Builtin() []repo.Preset {
	return []repo.Preset{
		{
			ID:   "DX-01",
			Name: "Hyperbolic East Atrium",
			Params: params.Set{
				ID:               "DX-01",
				Name:             "Hyperbolic East Atrium",
				ModuleWidthM:     1.25,
				ModuleHeightM:    3.45,
				ModuleDepthM:     0.24,
				CurvatureRadiusM: 28.0,
				TiltAngleDeg:     3.5,
				MullionSpacingM:  1.42,
				PanelThicknessM:  0.021,
				WindZone:         params.WindZoneHigh,
				WindSpeedMS:      34.0,
				ThermalGradientC: 16.0,
				Material:         params.MaterialAluminum,
			},
		},
		{
			ID:   "DX-02",
			Name: "North Tower Ribbon",
			Params: params.Set{
				ID:               "DX-02",
				Name:             "North Tower Ribbon",
				ModuleWidthM:     1.1,
				ModuleHeightM:    3.0,
				ModuleDepthM:     0.22,
				CurvatureRadiusM: 45.0,
				TiltAngleDeg:     2.0,
				MullionSpacingM:  1.5,
				PanelThicknessM:  0.019,
				WindZone:         params.WindZoneHigh,
				WindSpeedMS:      38.0,
				ThermalGradientC: 12.0,
				Material:         params.MaterialGlass,
			},
		},
		{
			ID:   "DX-03",
			Name: "Skywalk Link Gallery",
			Params: params.Set{
				ID:               "DX-03",
				Name:             "Skywalk Link Gallery",
				ModuleWidthM:     1.35,
				ModuleHeightM:    3.8,
				ModuleDepthM:     0.27,
				CurvatureRadiusM: 24.0,
				TiltAngleDeg:     5.2,
				MullionSpacingM:  1.32,
				PanelThicknessM:  0.024,
				WindZone:         params.WindZoneSevere,
				WindSpeedMS:      42.0,
				ThermalGradientC: 18.0,
				Material:         params.MaterialSteel,
			},
		},
	}
}

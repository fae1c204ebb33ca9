package structural

import (
	"encoding/json"
	"net/http"

	geometry "Facade/internal/calc/geometry"
	params "Facade/internal/calc/params"
)

type Request struct {
	Params          params.Set `json:"params"`
	SafetyThreshold float64    `json:"safety_threshold,omitempty"`
}

type Handler struct{}

// Calc generates the unit geometry and runs the structural verification on
// it in one call.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	model, err := geometry.Generate(req.Params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	cfg := DefaultConfig()
	if req.SafetyThreshold > 0 {
		cfg.SafetyThreshold = req.SafetyThreshold
	}
	res, err := Analyze(model, req.Params, cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

package association

import (
	"encoding/json"
	"net/http"

	correction "Facade/internal/calc/correction"
	geometry "Facade/internal/calc/geometry"
	params "Facade/internal/calc/params"
	structural "Facade/internal/calc/structural"
)

type Request struct {
	Params   params.Set `json:"params"`
	Baseline Baseline   `json:"baseline"`
}

type Handler struct{}

// Calc runs the upstream stages for the set and correlates the outcome
// against the supplied baseline.
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
	metrics, err := structural.Analyze(model, req.Params, structural.DefaultConfig())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	corrected, err := correction.Correct(metrics, 0.05, 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := Associate(model, metrics, corrected, req.Baseline)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

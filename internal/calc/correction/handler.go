package correction

import (
	"encoding/json"
	"net/http"

	geometry "Facade/internal/calc/geometry"
	params "Facade/internal/calc/params"
	structural "Facade/internal/calc/structural"
)

type Request struct {
	Params        params.Set `json:"params"`
	ToleranceMM   float64    `json:"tolerance_mm"`
	MaxIterations int        `json:"max_iterations"`
	Damping       float64    `json:"damping,omitempty"`
}

type Handler struct{}

// Calc runs geometry and structural synthesis for the set and corrects the
// resulting metrics.
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
	damping := req.Damping
	if damping == 0 {
		damping = DefaultDamping
	}
	res, err := CorrectDamped(metrics, req.ToleranceMM, req.MaxIterations, damping)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

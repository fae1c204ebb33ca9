package params

import (
	"encoding/json"
	"net/http"
)

type Request struct {
	Params Set    `json:"params"`
	Rules  *Rules `json:"rules,omitempty"`
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	rules := DefaultRules()
	if req.Rules != nil {
		rules = *req.Rules
	}
	res, err := Validate(req.Params, rules)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

package pipeline

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	association "Facade/internal/calc/association"
	correction "Facade/internal/calc/correction"
	geometry "Facade/internal/calc/geometry"
	params "Facade/internal/calc/params"
	trace "Facade/internal/calc/trace"
)

// SessionStore keeps one operation trace per authenticated session. The
// engine works on trace values; only this HTTP-side store mutates.
type SessionStore struct {
	mu     sync.Mutex
	traces map[int]trace.Trace
}

func NewSessionStore() *SessionStore {
	return &SessionStore{traces: make(map[int]trace.Trace)}
}

func (s *SessionStore) Append(userID int, e trace.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traces[userID] = trace.Record(s.traces[userID], e)
}

func (s *SessionStore) Snapshot(userID int) trace.Trace {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(trace.Trace, len(s.traces[userID]))
	copy(out, s.traces[userID])
	return out
}

type Handler struct {
	Store    *SessionStore
	Baseline association.Baseline // fallback when the request carries none
}

// Run executes the pipeline and appends the run summary to the caller's
// session trace.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Baseline == nil && h.Baseline.Stages != nil {
		input.Baseline = &h.Baseline
	}
	res, err := Run(input)
	if err != nil {
		http.Error(w, err.Error(), errStatus(err))
		return
	}

	if h.Store != nil {
		if userID, ok := r.Context().Value("userID").(int); ok {
			h.Store.Append(userID, NewEntry(time.Now(), input.Params, res, "recomputed from submitted parameters"))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Trace exposes the session history, oldest first.
func (h *Handler) Trace(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok || h.Store == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.Snapshot(userID))
}

// errStatus maps the engine's recoverable fault kinds onto HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, params.ErrMissingParameter),
		errors.Is(err, params.ErrOutOfDomain),
		errors.Is(err, correction.ErrInvalidTolerance):
		return http.StatusBadRequest
	case errors.Is(err, geometry.ErrDegenerateGeometry):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

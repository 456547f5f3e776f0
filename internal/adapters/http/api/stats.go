package api

import (
	"net/http"
	"strconv"
)

const defaultChangesLimit = 50

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]any
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}

// ChangesHandler serves the roster change journal.
type ChangesHandler struct {
	deps Dependencies
}

// NewChangesHandler creates a new changes handler.
func NewChangesHandler(deps Dependencies) *ChangesHandler {
	return &ChangesHandler{deps: deps}
}

// HandleGetChanges handles GET /changes?limit=N, newest first.
func (h *ChangesHandler) HandleGetChanges(w http.ResponseWriter, r *http.Request) {
	limit := defaultChangesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, NewKind("changes", ErrBadRequest, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	events, err := h.deps.RecentChanges(r.Context(), limit)
	if err != nil {
		writeError(w, classify("changes", err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}

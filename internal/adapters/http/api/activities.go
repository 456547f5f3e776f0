package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// ActivitiesHandler serves the activity listing and roster mutations.
type ActivitiesHandler struct {
	deps Dependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleList handles GET /activities.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	activities, err := h.deps.ListActivities(r.Context())
	if err != nil {
		writeError(w, classify("list activities", err))
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// HandleSignup handles POST /activities/{activity_name}/signup?email=.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.deps.Signup(r.Context(), name, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, classify("signup", err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// HandleCancel handles DELETE /activities/{activity_name}/signup?email=.
func (h *ActivitiesHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		writeError(w, err)
		return
	}
	msg, err := h.deps.Cancel(r.Context(), name, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, classify("cancel", err))
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// activityName returns the decoded {activity_name} path segment.
// chi routes on the raw path when the request carries escapes such as %2F,
// and the parameter is then still encoded.
func activityName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "activity_name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", WrapKind("decode activity name", ErrBadRequest, err)
	}
	return decoded, nil
}

// Package api exposes HTTP handlers for the activity signup service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"example.com/signup/internal/domain"
	"example.com/signup/internal/observability"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service   *domain.Service
	staticDir string
}

// NewHandler builds a Handler. staticDir is the directory holding the
// bundled front-end assets served under /static/.
func NewHandler(service *domain.Service, staticDir string) *Handler {
	return &Handler{service: service, staticDir: staticDir}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/activities/", h.rosterAction)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir))))
	mux.HandleFunc("/", h.root)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// root redirects to the bundled front-end page.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")
		return
	}
	h.listActivities(w, r)
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.ListActivities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make(map[string]ActivityView, len(activities))
	for name, activity := range activities {
		resp[name] = toActivityView(activity)
	}
	writeJSON(w, http.StatusOK, resp)
}

// rosterAction routes /activities/{name}/signup and
// /activities/{name}/unregister. Activity names may contain spaces; the mux
// hands us the already-decoded path.
func (h *Handler) rosterAction(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	name, action, ok := strings.Cut(rest, "/")
	if !ok || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	email := r.URL.Query().Get("email")
	if strings.TrimSpace(email) == "" {
		writeError(w, http.StatusBadRequest, "missing email parameter")
		return
	}

	switch action {
	case "signup":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.signup(w, r, name, email)
	case "unregister":
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		h.unregister(w, r, name, email)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, name, email string) {
	confirmation, err := h.service.Signup(r.Context(), name, email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.RecordSignup(name)
	writeJSON(w, http.StatusOK, MessageResponse{Message: confirmation.Message})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request, name, email string) {
	confirmation, err := h.service.Unregister(r.Context(), name, email)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	observability.RecordUnregister(name)
	writeJSON(w, http.StatusOK, MessageResponse{Message: confirmation.Message})
}

// writeDomainError maps domain sentinel errors onto the wire contract.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		observability.RecordRejection("activity_not_found")
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		observability.RecordRejection("already_registered")
		writeError(w, http.StatusBadRequest, "Student already signed up for this activity")
	case errors.Is(err, domain.ErrNotRegistered):
		observability.RecordRejection("not_registered")
		writeError(w, http.StatusBadRequest, "Student is not registered for this activity")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// MessageResponse confirms a roster mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ActivityView exposes one activity record as presented data.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ErrorResponse carries the detail string for failed requests.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toActivityView(activity domain.Activity) ActivityView {
	participants := activity.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     activity.Description,
		Schedule:        activity.Schedule,
		MaxParticipants: activity.MaxParticipants,
		Participants:    participants,
	}
}

// Package httpapi exposes the dashboard over a JSON REST API. The internal
// view is served by one shared dashboard; client views are built per request
// from the token on the URL, mirroring how each shared link opens its own
// session.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sellerconsulting/bitacora/internal/dashboard"
	"github.com/sellerconsulting/bitacora/internal/domain/access"
	"github.com/sellerconsulting/bitacora/internal/domain/note"
	"github.com/sellerconsulting/bitacora/internal/domain/phase"
	"github.com/sellerconsulting/bitacora/internal/domain/share"
)

// ClientDashboardFactory builds a fresh client-mode dashboard for one token
// resolution.
type ClientDashboardFactory func() *dashboard.Dashboard

// Server wires the dashboard HTTP handlers.
type Server struct {
	internal       *dashboard.Dashboard
	newClient      ClientDashboardFactory
	supportContact string
	logger         *slog.Logger
}

// NewRouter creates the API router.
func NewRouter(internal *dashboard.Dashboard, newClient ClientDashboardFactory, supportContact string, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		internal:       internal,
		newClient:      newClient,
		supportContact: supportContact,
		logger:         logger,
	}

	r := chi.NewRouter()

	r.Get("/health", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", srv.handleListProjects)
		r.Post("/select", srv.handleSelectProject)
		r.Get("/dashboard", srv.handleDashboard)
		r.Put("/draft", srv.handleUpdateDraft)
		r.Post("/notes", srv.handleCreateNote)
		r.Post("/notes/active", srv.handleSetActiveNote)
		r.Put("/phase/pending", srv.handleSelectPhase)
		r.Post("/phase/save", srv.handleSavePhase)
		r.Post("/share-link", srv.handleIssueShareLink)
		r.Get("/client", srv.handleClientView)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	snap := s.internal.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"projects": snap.Projects})
}

func (s *Server) handleSelectProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.internal.SelectProject(r.Context(), body.Name); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.internal.Snapshot())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.internal.Snapshot())
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	var draft note.Draft
	if !decodeBody(w, r, &draft) {
		return
	}
	s.internal.UpdateDraft(draft)
	writeJSON(w, http.StatusOK, map[string]any{"draft": s.internal.Draft()})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	// An optional body replaces the draft before saving, so clients that
	// don't round-trip PUT /draft can create in one call.
	if r.ContentLength > 0 {
		var draft note.Draft
		if !decodeBody(w, r, &draft) {
			return
		}
		s.internal.UpdateDraft(draft)
	}

	created, err := s.internal.CreateNote(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"note": created})
}

func (s *Server) handleSetActiveNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.internal.SetActiveNote(body.ID); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.internal.Snapshot())
}

func (s *Server) handleSelectPhase(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phase int `json:"phase"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.internal.SelectPhase(body.Phase); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.internal.Snapshot())
}

func (s *Server) handleSavePhase(w http.ResponseWriter, r *http.Request) {
	if err := s.internal.SavePhase(r.Context()); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.internal.Snapshot())
}

func (s *Server) handleIssueShareLink(w http.ResponseWriter, r *http.Request) {
	url, err := s.internal.IssueShareLink(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"url": url})
}

// handleClientView resolves a token from the query string into a full client
// snapshot. Denials carry a user-facing message and the support contact.
func (s *Server) handleClientView(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	view := s.newClient()
	if err := view.EnterClientMode(r.Context(), token); err != nil {
		snap := view.Snapshot()
		status := http.StatusForbidden
		if errors.Is(err, access.ErrLookupFailed) || errors.Is(err, dashboard.ErrProjectLookup) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]any{
			"access_state":    snap.AccessState,
			"message":         access.Message(err),
			"support_contact": s.supportContact,
		})
		return
	}

	writeJSON(w, http.StatusOK, view.Snapshot())
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, note.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
	case errors.Is(err, dashboard.ErrUnknownProject), errors.Is(err, note.ErrNotInSet):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, phase.ErrInvalidPhase):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
	case errors.Is(err, phase.ErrSaveInFlight), errors.Is(err, note.ErrSaveInFlight):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
	case errors.Is(err, dashboard.ErrNoProject), errors.Is(err, note.ErrNoProject), errors.Is(err, phase.ErrNoProject):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
	case errors.Is(err, dashboard.ErrClientMode), errors.Is(err, dashboard.ErrInternalMode):
		writeJSON(w, http.StatusForbidden, map[string]any{"error": err.Error()})
	case errors.Is(err, share.ErrIssueFailed), errors.Is(err, phase.ErrSaveFailed), errors.Is(err, note.ErrSaveFailed):
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sellerconsulting/bitacora/internal/dashboard"
	"github.com/sellerconsulting/bitacora/internal/domain/access"
	"github.com/sellerconsulting/bitacora/internal/domain/note"
	"github.com/sellerconsulting/bitacora/internal/domain/phase"
	"github.com/sellerconsulting/bitacora/internal/domain/project"
	"github.com/sellerconsulting/bitacora/internal/domain/share"
	"github.com/sellerconsulting/bitacora/internal/sqlite"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := sqlite.NewTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	projectRepo := sqlite.NewProjectRepository(db)
	require.NoError(t, projectRepo.Create(ctx, &project.Project{Name: "acme-retail", ClientName: "Acme Retail"}))
	require.NoError(t, projectRepo.Create(ctx, &project.Project{Name: "zeta-logistics", ClientName: "Zeta Logistics"}))

	noteRepo := sqlite.NewNoteRepository(db)
	phaseRepo := sqlite.NewPhaseRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)

	projectSvc := project.NewService(projectRepo, logger)
	issuer := share.NewIssuer(tokenRepo, projectRepo, share.Config{
		BaseURL:         "https://bitacora.example.com",
		InternalSegment: "bitacora",
		ClientSegment:   "bitacora-client",
	}, logger)

	internal := dashboard.New(dashboard.ModeInternal, dashboard.Deps{
		Projects: projectSvc,
		Tracker:  phase.NewTracker(phaseRepo, logger),
		Notes:    note.NewStore(noteRepo, logger),
		Gate:     access.NewGate(tokenRepo, logger),
		Issuer:   issuer,
		Logger:   logger,
	})
	require.NoError(t, internal.Init(ctx))

	newClient := func() *dashboard.Dashboard {
		return dashboard.New(dashboard.ModeClient, dashboard.Deps{
			Projects: projectSvc,
			Tracker:  phase.NewTracker(phaseRepo, logger),
			Notes:    note.NewStore(noteRepo, logger),
			Gate:     access.NewGate(tokenRepo, logger),
			Issuer:   issuer,
			Logger:   logger,
		})
	}

	return NewRouter(internal, newClient, "support@example.com", logger)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) dashboard.Snapshot {
	t.Helper()
	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestListProjects(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projects []project.Project `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projects, 2)
	require.Equal(t, "acme-retail", body.Projects[0].Name)
}

func TestDashboardInitialState(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	snap := decodeSnapshot(t, rec)
	require.Equal(t, dashboard.ModeInternal, snap.Mode)
	require.Equal(t, "acme-retail", snap.ProjectName)
	require.NotNil(t, snap.CommittedPhase)
	require.Equal(t, 1, *snap.CommittedPhase)
	require.Equal(t, 4, snap.PhaseCount)
	require.Empty(t, snap.Notes)
}

func TestSelectProject(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/select", map[string]string{"name": "zeta-logistics"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "zeta-logistics", decodeSnapshot(t, rec).ProjectName)
}

func TestSelectProjectUnknown(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/select", map[string]string{"name": "nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateNoteValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/notes", note.Draft{
		Title:   "ab",
		Date:    "2024-01-05",
		Summary: "Too short title should be rejected",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Nothing was persisted
	rec = doJSON(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Zero(t, decodeSnapshot(t, rec).NoteCount)
}

func TestCreateNote(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/notes", note.Draft{
		Title:   "Kickoff session",
		Date:    "2024-01-05",
		Summary: "Agreed on scope and the first milestones",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Note note.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Kickoff session", body.Note.Title)
	require.Equal(t, note.DefaultTag, body.Note.Tag)

	rec = doJSON(t, router, http.MethodGet, "/api/dashboard", nil)
	snap := decodeSnapshot(t, rec)
	require.Equal(t, 1, snap.NoteCount)
	require.NotNil(t, snap.ActiveNote)
	require.Equal(t, body.Note.ID, snap.ActiveNote.ID)
	// Draft reset after the create
	require.Empty(t, snap.Draft.Title)
}

func TestSetActiveNoteUnknown(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/notes/active", map[string]string{"id": "missing"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPhaseSelectAndSave(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/phase/pending", map[string]int{"phase": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	require.NotNil(t, snap.PendingPhase)
	require.Equal(t, 3, *snap.PendingPhase)
	require.Equal(t, 1, *snap.CommittedPhase)

	rec = doJSON(t, router, http.MethodPost, "/api/phase/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap = decodeSnapshot(t, rec)
	require.Equal(t, 3, *snap.CommittedPhase)
	require.Equal(t, "Implementation", snap.CurrentPhaseLabel)
}

func TestPhaseSelectOutOfRange(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/phase/pending", map[string]int{"phase": 7})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestShareLinkAndClientView(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/share-link", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	link, err := url.Parse(body.URL)
	require.NoError(t, err)
	require.Contains(t, link.Host, "bitacora-client")
	token := link.Query().Get("token")
	require.NotEmpty(t, token)

	rec = doJSON(t, router, http.MethodGet, "/api/client?token="+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	require.Equal(t, dashboard.ModeClient, snap.Mode)
	require.Equal(t, access.StateResolved, snap.AccessState)
	require.Equal(t, "acme-retail", snap.ProjectName)
	require.Equal(t, "Acme Retail", snap.ClientName)
	require.Empty(t, snap.Projects, "client view must not expose the catalog")
}

func TestClientViewInvalidToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/client?token=bogus", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		AccessState    access.State `json:"access_state"`
		Message        string       `json:"message"`
		SupportContact string       `json:"support_contact"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, access.StateInvalid, body.AccessState)
	require.NotEmpty(t, body.Message)
	require.Equal(t, "support@example.com", body.SupportContact)
}

func TestClientViewMissingToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/client", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

package dashboard

import (
	"time"

	"github.com/sellerconsulting/bitacora/internal/domain/access"
	"github.com/sellerconsulting/bitacora/internal/domain/note"
	"github.com/sellerconsulting/bitacora/internal/domain/phase"
	"github.com/sellerconsulting/bitacora/internal/domain/project"
)

// PhaseView is one roadmap entry with its derived status.
type PhaseView struct {
	ID       int          `json:"id"`
	Label    string       `json:"label"`
	Status   phase.Status `json:"status"`
	Selected bool         `json:"selected"`
}

// Snapshot is a consistent, render-ready view of the whole dashboard. Each
// subsystem contributes its own loading and error flags; a failure in one
// leaves the others intact.
type Snapshot struct {
	Mode        Mode              `json:"mode"`
	GeneratedAt time.Time         `json:"generated_at"`
	Projects    []project.Project `json:"projects,omitempty"`
	ProjectID   int64             `json:"project_id,omitempty"`
	ProjectName string            `json:"project_name,omitempty"`
	ClientName  string            `json:"client_name,omitempty"`

	AccessState   access.State `json:"access_state"`
	AccessMessage string       `json:"access_message,omitempty"`

	CommittedPhase    *int        `json:"committed_phase,omitempty"`
	PendingPhase      *int        `json:"pending_phase,omitempty"`
	CurrentPhaseLabel string      `json:"current_phase_label,omitempty"`
	PhaseCount        int         `json:"phase_count"`
	Phases            []PhaseView `json:"phases"`
	PhaseLoading      bool        `json:"phase_loading"`
	PhaseSaving       bool        `json:"phase_saving"`
	PhaseError        string      `json:"phase_error,omitempty"`

	Draft           note.Draft           `json:"draft"`
	Notes           []note.Note          `json:"notes"`
	Timeline        []note.TimelineEntry `json:"timeline"`
	ActiveNote      *note.Note           `json:"active_note,omitempty"`
	NoteCount       int                  `json:"note_count"`
	LastSessionDate string               `json:"last_session_date,omitempty"`
	NotesLoading    bool                 `json:"notes_loading"`
	NotesError      string               `json:"notes_error,omitempty"`
	CreateError     string               `json:"create_error,omitempty"`
}

// Snapshot assembles the current view state across all subsystems.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	snap := Snapshot{
		Mode:        d.mode,
		GeneratedAt: d.now(),
		ProjectID:   d.projectID,
		ProjectName: d.projectName,
		ClientName:  d.clientName,
		AccessState: d.accessState,
		Draft:       d.draft,
	}
	if d.mode == ModeInternal {
		snap.Projects = append([]project.Project(nil), d.projectList...)
	}
	if d.accessErr != nil {
		snap.AccessMessage = access.Message(d.accessErr)
	}
	d.mu.Unlock()

	snap.CommittedPhase = d.tracker.Committed()
	snap.PendingPhase = d.tracker.Pending()
	if snap.CommittedPhase != nil {
		snap.CurrentPhaseLabel = phase.LabelFor(*snap.CommittedPhase)
	}
	snap.PhaseCount = len(phase.Phases)
	snap.Phases = make([]PhaseView, 0, len(phase.Phases))
	for _, p := range phase.Phases {
		snap.Phases = append(snap.Phases, PhaseView{
			ID:       p.ID,
			Label:    p.Label,
			Status:   d.tracker.StatusOf(p.ID),
			Selected: snap.PendingPhase != nil && *snap.PendingPhase == p.ID,
		})
	}
	snap.PhaseLoading = d.tracker.Loading()
	snap.PhaseSaving = d.tracker.Saving()
	if err := d.tracker.SaveError(); err != nil {
		snap.PhaseError = "Could not save the phase."
	}

	snap.Notes = d.notes.LatestFirst()
	snap.Timeline = d.notes.Timeline()
	snap.ActiveNote = d.notes.Active()
	snap.NoteCount = d.notes.Count()
	if len(snap.Notes) > 0 {
		snap.LastSessionDate = snap.Notes[0].Date
	}
	snap.NotesLoading = d.notes.Loading()
	if err := d.notes.LoadError(); err != nil {
		snap.NotesError = "Could not load sessions."
	}
	if err := d.notes.CreateError(); err != nil {
		snap.CreateError = err.Error()
	}
	return snap
}

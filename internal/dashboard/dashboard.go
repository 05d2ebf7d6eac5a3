package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sellerconsulting/bitacora/internal/domain/access"
	"github.com/sellerconsulting/bitacora/internal/domain/note"
	"github.com/sellerconsulting/bitacora/internal/domain/phase"
	"github.com/sellerconsulting/bitacora/internal/domain/project"
	"github.com/sellerconsulting/bitacora/internal/domain/share"
)

// Mode selects which of the two dashboard views this instance drives.
type Mode string

const (
	// ModeInternal is the operator view with full edit rights.
	ModeInternal Mode = "internal"
	// ModeClient is the token-gated read-mostly client view.
	ModeClient Mode = "client"
)

// Deps bundles the subsystems a dashboard coordinates.
type Deps struct {
	Projects *project.Service
	Tracker  *phase.Tracker
	Notes    *note.Store
	Gate     *access.Gate
	Issuer   *share.Issuer
	Logger   *slog.Logger
}

// Dashboard coordinates the dependent loads behind one project view. It owns
// the resolved project identity and the draft under edit; phase and note
// state belong to their subsystems and are only reached through them. Phase
// and note loads run in parallel once an identity is known, and each
// subsystem discards results that a newer load has superseded, so the view
// always settles on the most recently selected project.
type Dashboard struct {
	mode     Mode
	projects *project.Service
	tracker  *phase.Tracker
	notes    *note.Store
	gate     *access.Gate
	issuer   *share.Issuer
	logger   *slog.Logger
	now      func() time.Time

	mu          sync.Mutex
	projectList []project.Project
	projectName string
	projectID   int64
	clientName  string
	accessState access.State
	accessErr   error
	draft       note.Draft
}

// New creates a dashboard for the given mode.
func New(mode Mode, deps Deps) *Dashboard {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dashboard{
		mode:        mode,
		projects:    deps.Projects,
		tracker:     deps.Tracker,
		notes:       deps.Notes,
		gate:        deps.Gate,
		issuer:      deps.Issuer,
		logger:      logger,
		now:         time.Now,
		accessState: access.StateIdle,
	}
	d.draft = note.NewDraft(d.now())
	return d
}

// Mode returns the view mode this dashboard was created for.
func (d *Dashboard) Mode() Mode { return d.mode }

// Init loads the project catalog and, in internal mode, selects the first
// project. Client mode skips the catalog; identity arrives via the gate.
func (d *Dashboard) Init(ctx context.Context) error {
	if d.mode != ModeInternal {
		return nil
	}
	projects, err := d.projects.List(ctx)
	if err != nil {
		return fmt.Errorf("loading project catalog: %w", err)
	}
	d.mu.Lock()
	d.projectList = projects
	d.mu.Unlock()
	if len(projects) > 0 {
		return d.SelectProject(ctx, projects[0].Name)
	}
	return nil
}

// SelectProject switches the internal view to a project from the catalog and
// triggers the dependent phase and note loads.
func (d *Dashboard) SelectProject(ctx context.Context, name string) error {
	if d.mode != ModeInternal {
		return ErrClientMode
	}

	d.mu.Lock()
	var selected *project.Project
	for i := range d.projectList {
		if d.projectList[i].Name == name {
			selected = &d.projectList[i]
			break
		}
	}
	if selected == nil {
		d.mu.Unlock()
		return ErrUnknownProject
	}
	d.projectName = selected.Name
	d.projectID = selected.ID
	projectName, projectID := d.projectName, d.projectID
	phaseGen := d.tracker.Begin(projectName)
	noteGen := d.notes.Begin(projectID)
	d.mu.Unlock()

	d.reload(ctx, projectName, projectID, phaseGen, noteGen)
	return nil
}

// EnterClientMode resolves a client token and, on success, loads the granted
// project. A token that validates but names a project missing from the
// catalog is reported as a lookup failure rather than leaving the view
// stalled without data.
func (d *Dashboard) EnterClientMode(ctx context.Context, token string) error {
	if d.mode != ModeClient {
		return ErrInternalMode
	}

	d.mu.Lock()
	d.accessState = access.StateValidating
	d.accessErr = nil
	d.mu.Unlock()

	identity, err := d.gate.Resolve(ctx, token)
	if err != nil {
		d.mu.Lock()
		d.accessState = d.gate.State()
		d.accessErr = err
		d.mu.Unlock()
		return err
	}

	proj, err := d.projects.GetByName(ctx, identity.ProjectName)
	if err != nil {
		d.logger.Warn("granted project missing from catalog",
			"project", identity.ProjectName, "error", err)
		lookupErr := fmt.Errorf("%w: %v", ErrProjectLookup, err)
		d.mu.Lock()
		d.accessState = access.StateLookupFailed
		d.accessErr = lookupErr
		d.mu.Unlock()
		return lookupErr
	}

	d.mu.Lock()
	d.accessState = access.StateResolved
	d.clientName = identity.ClientName
	d.projectName = proj.Name
	d.projectID = proj.ID
	projectName, projectID := d.projectName, d.projectID
	phaseGen := d.tracker.Begin(projectName)
	noteGen := d.notes.Begin(projectID)
	d.mu.Unlock()

	d.reload(ctx, projectName, projectID, phaseGen, noteGen)
	return nil
}

// reload runs the phase and note loads registered while the dashboard lock
// was held. The two run in parallel and neither blocks or fails the other;
// each subsystem discards a result whose generation has been superseded, so
// the loads settle on the selection order, not on fetch completion order.
func (d *Dashboard) reload(ctx context.Context, projectName string, projectID int64, phaseGen, noteGen uint64) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.tracker.Finish(ctx, projectName, phaseGen)
	}()
	go func() {
		defer wg.Done()
		d.notes.Finish(ctx, projectID, noteGen)
	}()
	wg.Wait()
}

// Draft returns the note draft under edit.
func (d *Dashboard) Draft() note.Draft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// UpdateDraft replaces the note draft under edit.
func (d *Dashboard) UpdateDraft(draft note.Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft = draft
}

// CreateNote persists the current draft as a new session note. On success the
// draft resets to blank defaults; on failure it is preserved so nothing the
// operator typed is lost.
func (d *Dashboard) CreateNote(ctx context.Context) (*note.Note, error) {
	if d.mode != ModeInternal {
		return nil, ErrClientMode
	}
	d.mu.Lock()
	draft := d.draft
	d.mu.Unlock()

	created, err := d.notes.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.draft = note.NewDraft(d.now())
	d.mu.Unlock()
	return created, nil
}

// SetActiveNote points the session selection at a note in the loaded set.
func (d *Dashboard) SetActiveNote(id string) error {
	return d.notes.SetActive(id)
}

// SelectPhase records a manual phase selection without persisting it.
func (d *Dashboard) SelectPhase(phaseID int) error {
	if d.mode != ModeInternal {
		return ErrClientMode
	}
	return d.tracker.SelectPending(phaseID)
}

// SavePhase persists the pending phase selection.
func (d *Dashboard) SavePhase(ctx context.Context) error {
	if d.mode != ModeInternal {
		return ErrClientMode
	}
	return d.tracker.Save(ctx)
}

// IssueShareLink mints a client token for the selected project and returns
// the shareable client-mode URL.
func (d *Dashboard) IssueShareLink(ctx context.Context) (string, error) {
	if d.mode != ModeInternal {
		return "", ErrClientMode
	}
	d.mu.Lock()
	projectName := d.projectName
	d.mu.Unlock()
	if projectName == "" {
		return "", ErrNoProject
	}
	return d.issuer.Issue(ctx, projectName)
}

package mcp

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sellerconsulting/bitacora/internal/dashboard"
	"github.com/sellerconsulting/bitacora/internal/domain/access"
	"github.com/sellerconsulting/bitacora/internal/domain/note"
	"github.com/sellerconsulting/bitacora/internal/domain/project"
)

type listProjectsInput struct{}

type listProjectsOutput struct {
	Projects []project.Project `json:"projects" jsonschema:"Projects in the catalog"`
}

type selectProjectInput struct {
	Name string `json:"name" jsonschema:"required,Project name from the catalog"`
}

type getDashboardInput struct{}

type snapshotOutput struct {
	Snapshot dashboard.Snapshot `json:"snapshot" jsonschema:"Full dashboard view state"`
}

type logSessionNoteInput struct {
	Title             string `json:"title" jsonschema:"required,Session title (at least 3 characters)"`
	Date              string `json:"date" jsonschema:"required,Session date in YYYY-MM-DD format"`
	Tag               string `json:"tag,omitempty" jsonschema:"Category tag (defaults to Session)"`
	Summary           string `json:"summary" jsonschema:"required,What was covered (at least 10 characters)"`
	ClientResponsible string `json:"client_responsible,omitempty" jsonschema:"Action item owned by the client"`
	ClientStatus      string `json:"client_status,omitempty" jsonschema:"Client follow-through: done deferred or not_done"`
}

type logSessionNoteOutput struct {
	Note note.Note `json:"note" jsonschema:"The stored session note"`
}

type setPhaseInput struct {
	Phase int `json:"phase" jsonschema:"required,Target phase number (1 to 4)"`
}

type setPhaseOutput struct {
	CommittedPhase int    `json:"committed_phase" jsonschema:"Persisted phase after the save"`
	Label          string `json:"label" jsonschema:"Display label of the committed phase"`
}

type issueShareLinkInput struct{}

type issueShareLinkOutput struct {
	URL string `json:"url" jsonschema:"Shareable client dashboard URL carrying the token"`
}

type resolveClientTokenInput struct {
	Token string `json:"token" jsonschema:"required,Client access token from a share link"`
}

type resolveClientTokenOutput struct {
	AccessState access.State        `json:"access_state" jsonschema:"Outcome of the token validation"`
	Message     string              `json:"message,omitempty" jsonschema:"User-facing denial message if access was refused"`
	Snapshot    *dashboard.Snapshot `json:"snapshot,omitempty" jsonschema:"Client view when the token resolved"`
}

func (s *Server) registerTools(server *sdkmcp.Server) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List the projects in the catalog",
	}, s.listProjects)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_project",
		Description: "Switch the dashboard to a project and load its phase and sessions",
	}, s.selectProject)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dashboard",
		Description: "Get the full dashboard view: roadmap, session timeline and draft",
	}, s.getDashboard)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_session_note",
		Description: "Record a consulting session against the selected project",
	}, s.logSessionNote)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_phase",
		Description: "Move the selected project to a roadmap phase and persist it",
	}, s.setPhase)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "issue_share_link",
		Description: "Mint a client access token for the selected project and return the share URL",
	}, s.issueShareLink)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "resolve_client_token",
		Description: "Resolve a client token and return the read-only view it grants",
	}, s.resolveClientToken)
}

func (s *Server) listProjects(ctx context.Context, req *sdkmcp.CallToolRequest, args listProjectsInput) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
	snap := s.internal.Snapshot()
	return nil, listProjectsOutput{Projects: snap.Projects}, nil
}

func (s *Server) selectProject(ctx context.Context, req *sdkmcp.CallToolRequest, args selectProjectInput) (*sdkmcp.CallToolResult, snapshotOutput, error) {
	if err := s.internal.SelectProject(ctx, args.Name); err != nil {
		return nil, snapshotOutput{}, err
	}
	return nil, snapshotOutput{Snapshot: s.internal.Snapshot()}, nil
}

func (s *Server) getDashboard(ctx context.Context, req *sdkmcp.CallToolRequest, args getDashboardInput) (*sdkmcp.CallToolResult, snapshotOutput, error) {
	return nil, snapshotOutput{Snapshot: s.internal.Snapshot()}, nil
}

func (s *Server) logSessionNote(ctx context.Context, req *sdkmcp.CallToolRequest, args logSessionNoteInput) (*sdkmcp.CallToolResult, logSessionNoteOutput, error) {
	s.internal.UpdateDraft(note.Draft{
		Title:             args.Title,
		Date:              args.Date,
		Tag:               args.Tag,
		Summary:           args.Summary,
		ClientResponsible: args.ClientResponsible,
		ClientStatus:      note.ClientStatus(args.ClientStatus),
	})
	created, err := s.internal.CreateNote(ctx)
	if err != nil {
		return nil, logSessionNoteOutput{}, err
	}
	return nil, logSessionNoteOutput{Note: *created}, nil
}

func (s *Server) setPhase(ctx context.Context, req *sdkmcp.CallToolRequest, args setPhaseInput) (*sdkmcp.CallToolResult, setPhaseOutput, error) {
	if err := s.internal.SelectPhase(args.Phase); err != nil {
		return nil, setPhaseOutput{}, err
	}
	if err := s.internal.SavePhase(ctx); err != nil {
		return nil, setPhaseOutput{}, err
	}
	snap := s.internal.Snapshot()
	out := setPhaseOutput{Label: snap.CurrentPhaseLabel}
	if snap.CommittedPhase != nil {
		out.CommittedPhase = *snap.CommittedPhase
	}
	return nil, out, nil
}

func (s *Server) issueShareLink(ctx context.Context, req *sdkmcp.CallToolRequest, args issueShareLinkInput) (*sdkmcp.CallToolResult, issueShareLinkOutput, error) {
	url, err := s.internal.IssueShareLink(ctx)
	if err != nil {
		return nil, issueShareLinkOutput{}, err
	}
	return nil, issueShareLinkOutput{URL: url}, nil
}

// resolveClientToken reports denials as data rather than tool errors so the
// caller sees the same message a client would.
func (s *Server) resolveClientToken(ctx context.Context, req *sdkmcp.CallToolRequest, args resolveClientTokenInput) (*sdkmcp.CallToolResult, resolveClientTokenOutput, error) {
	view := s.newClient()
	if err := view.EnterClientMode(ctx, args.Token); err != nil {
		if errors.Is(err, access.ErrInvalid) || errors.Is(err, access.ErrExpired) ||
			errors.Is(err, access.ErrLookupFailed) || errors.Is(err, dashboard.ErrProjectLookup) {
			snap := view.Snapshot()
			return nil, resolveClientTokenOutput{
				AccessState: snap.AccessState,
				Message:     access.Message(err),
			}, nil
		}
		return nil, resolveClientTokenOutput{}, err
	}
	snap := view.Snapshot()
	return nil, resolveClientTokenOutput{
		AccessState: snap.AccessState,
		Snapshot:    &snap,
	}, nil
}

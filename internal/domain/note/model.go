package note

import "time"

// ClientStatus tracks whether the client completed their side of a session.
type ClientStatus string

const (
	StatusDone     ClientStatus = "done"
	StatusDeferred ClientStatus = "deferred"
	StatusNotDone  ClientStatus = "not_done"
)

// Label returns the display label for a client status.
func (s ClientStatus) Label() string {
	switch s {
	case StatusDone:
		return "Done"
	case StatusDeferred:
		return "Deferred"
	default:
		return "Not done"
	}
}

// DateLayout is the calendar date format used for session dates. Dates are
// kept as strings so that lexicographic and chronological order coincide.
const DateLayout = "2006-01-02"

// DefaultTag is the tag applied to a fresh draft.
const DefaultTag = "Session"

// Note is a dated record of work logged against a project. Notes are created
// once and never edited or deleted through this package.
type Note struct {
	ID                string       `json:"id"`
	ProjectID         int64        `json:"project_id"`
	Title             string       `json:"title"`
	Date              string       `json:"date"`
	Tag               string       `json:"tag"`
	Summary           string       `json:"summary"`
	ClientResponsible *string      `json:"client_responsible,omitempty"`
	ClientStatus      ClientStatus `json:"client_status"`
	CreatedAt         time.Time    `json:"created_at"`
}

// Draft is an unsaved note under construction, owned by the editing view.
type Draft struct {
	Title             string       `json:"title"`
	Date              string       `json:"date"`
	Tag               string       `json:"tag"`
	Summary           string       `json:"summary"`
	ClientResponsible string       `json:"client_responsible"`
	ClientStatus      ClientStatus `json:"client_status"`
}

// NewDraft returns a blank draft with today's date and default tag and status.
func NewDraft(now time.Time) Draft {
	return Draft{
		Date:         now.Format(DateLayout),
		Tag:          DefaultTag,
		ClientStatus: StatusDeferred,
	}
}

// ResponsibleLabel returns the client responsible, or a placeholder when the
// session has none assigned.
func (n Note) ResponsibleLabel() string {
	if n.ClientResponsible == nil || *n.ClientResponsible == "" {
		return "Unassigned"
	}
	return *n.ClientResponsible
}

// TimelineEntry pairs a note with its session number. Numbers count from the
// oldest session, so the most recent entry carries the highest number.
type TimelineEntry struct {
	Seq  int  `json:"seq"`
	Note Note `json:"note"`
}

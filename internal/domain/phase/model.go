package phase

// Status describes how a phase relates to the committed project phase.
type Status string

const (
	StatusPending  Status = "pending"
	StatusDone     Status = "done"
	StatusCurrent  Status = "current"
	StatusUpcoming Status = "upcoming"
)

// Phase is one of the four fixed lifecycle stages of an engagement.
type Phase struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

const (
	MinPhase = 1
	MaxPhase = 4

	// DefaultPhase is assumed when a project has no stored phase record.
	DefaultPhase = 1
)

// Phases is the fixed roadmap catalog.
var Phases = []Phase{
	{ID: 1, Label: "Diagnostic"},
	{ID: 2, Label: "Strategic plan"},
	{ID: 3, Label: "Implementation"},
	{ID: 4, Label: "Follow-up & control"},
}

// LabelFor returns the display label for a phase ID, or "" when unknown.
func LabelFor(id int) string {
	for _, p := range Phases {
		if p.ID == id {
			return p.Label
		}
	}
	return ""
}

package note_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sellerconsulting/bitacora/internal/domain/note"
)

func TestValidateDraft(t *testing.T) {
	valid := note.Draft{
		Title:   "Kickoff session",
		Date:    "2024-01-05",
		Summary: "Agreed on scope and milestones",
	}
	require.NoError(t, note.ValidateDraft(valid))

	tests := []struct {
		name   string
		mutate func(*note.Draft)
	}{
		{"short title", func(d *note.Draft) { d.Title = "ab" }},
		{"whitespace title", func(d *note.Draft) { d.Title = "  a  " }},
		{"short summary", func(d *note.Draft) { d.Summary = "too short" }},
		{"missing date", func(d *note.Draft) { d.Date = "" }},
		{"malformed date", func(d *note.Draft) { d.Date = "05/01/2024" }},
		{"unknown status", func(d *note.Draft) { d.ClientStatus = "maybe" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			require.ErrorIs(t, note.ValidateDraft(d), note.ErrValidation)
		})
	}
}

func TestResponsibleLabel(t *testing.T) {
	var n note.Note
	require.Equal(t, "Unassigned", n.ResponsibleLabel())

	empty := ""
	n.ClientResponsible = &empty
	require.Equal(t, "Unassigned", n.ResponsibleLabel())

	name := "Jordan"
	n.ClientResponsible = &name
	require.Equal(t, "Jordan", n.ResponsibleLabel())
}

func TestValidateDraftAcceptsEmptyStatus(t *testing.T) {
	d := note.Draft{
		Title:   "Kickoff session",
		Date:    "2024-01-05",
		Summary: "Agreed on scope and milestones",
	}
	d.ClientStatus = ""
	require.NoError(t, note.ValidateDraft(d))
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sellerconsulting/bitacora/internal/domain/note"
	"github.com/sellerconsulting/bitacora/internal/repository"
)

// NoteRepository implements note.Repository for SQLite
type NoteRepository struct {
	db *DB
}

var _ note.Repository = (*NoteRepository)(nil)

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListByProject returns all session notes for a project, most recent date first
func (r *NoteRepository) ListByProject(ctx context.Context, projectID int64) ([]note.Note, error) {
	query := `
		SELECT id, project_id, title, date, tag, summary, client_responsible, client_status, created_at
		FROM sessions
		WHERE project_id = ?
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var notes []note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return notes, nil
}

// Insert persists a new session note and returns the stored row
func (r *NoteRepository) Insert(ctx context.Context, n *note.Note) (*note.Note, error) {
	query := `
		INSERT INTO sessions (id, project_id, title, date, tag, summary, client_responsible, client_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.ProjectID,
		n.Title,
		n.Date,
		n.Tag,
		n.Summary,
		n.ClientResponsible,
		n.ClientStatus,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return r.get(ctx, n.ID)
}

func (r *NoteRepository) get(ctx context.Context, id string) (*note.Note, error) {
	query := `
		SELECT id, project_id, title, date, tag, summary, client_responsible, client_status, created_at
		FROM sessions
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*note.Note, error) {
	var n note.Note
	err := row.Scan(
		&n.ID,
		&n.ProjectID,
		&n.Title,
		&n.Date,
		&n.Tag,
		&n.Summary,
		&n.ClientResponsible,
		&n.ClientStatus,
		&n.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return &n, nil
}

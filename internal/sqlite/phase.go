package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sellerconsulting/bitacora/internal/domain/phase"
	"github.com/sellerconsulting/bitacora/internal/repository"
)

// PhaseRepository implements phase.Repository for SQLite
type PhaseRepository struct {
	db *DB
}

var _ phase.Repository = (*PhaseRepository)(nil)

// NewPhaseRepository creates a new PhaseRepository
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// Get returns the stored phase for a project. repository.ErrNotFound when
// no row exists yet.
func (r *PhaseRepository) Get(ctx context.Context, projectName string) (int, error) {
	query := `
		SELECT current_phase
		FROM project_phase
		WHERE project_name = ?
	`

	var current int
	err := r.db.QueryRowContext(ctx, query, projectName).Scan(&current)

	if err == sql.ErrNoRows {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get phase: %w", err)
	}

	return current, nil
}

// Upsert stores the phase for a project, replacing any previous value
func (r *PhaseRepository) Upsert(ctx context.Context, projectName string, current int) error {
	query := `
		INSERT INTO project_phase (project_name, current_phase, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(project_name) DO UPDATE SET
			current_phase = excluded.current_phase,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, projectName, current); err != nil {
		return fmt.Errorf("failed to upsert phase: %w", err)
	}

	return nil
}

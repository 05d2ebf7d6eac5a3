package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sellerconsulting/bitacora/internal/domain/access"
	"github.com/sellerconsulting/bitacora/internal/domain/share"
	"github.com/sellerconsulting/bitacora/internal/repository"
)

// TokenRepository implements access.Repository and share.TokenWriter for
// SQLite
type TokenRepository struct {
	db *DB
}

var (
	_ access.Repository = (*TokenRepository)(nil)
	_ share.TokenWriter = (*TokenRepository)(nil)
)

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetActive retrieves an active grant by token. Inactive and unknown tokens
// both return repository.ErrNotFound; expiry is the caller's concern.
func (r *TokenRepository) GetActive(ctx context.Context, token string) (*access.Grant, error) {
	query := `
		SELECT token, project_name, client_name, active, expires_at, created_at
		FROM client_tokens
		WHERE token = ? AND active = 1
	`

	var grant access.Grant
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&grant.Token,
		&grant.ProjectName,
		&grant.ClientName,
		&grant.Active,
		&grant.ExpiresAt,
		&grant.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &grant, nil
}

// Insert persists a newly issued grant
func (r *TokenRepository) Insert(ctx context.Context, grant *access.Grant) error {
	query := `
		INSERT INTO client_tokens (token, project_name, client_name, active, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		grant.Token,
		grant.ProjectName,
		grant.ClientName,
		grant.Active,
		grant.ExpiresAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to insert token: %w", err)
	}

	return nil
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sellerconsulting/bitacora/internal/domain/access"
	"github.com/sellerconsulting/bitacora/internal/domain/note"
	"github.com/sellerconsulting/bitacora/internal/domain/phase"
	"github.com/sellerconsulting/bitacora/internal/domain/project"
	"github.com/sellerconsulting/bitacora/internal/domain/share"
)

var (
	_ project.Repository = (*ProjectRepository)(nil)
	_ note.Repository    = (*NoteRepository)(nil)
	_ phase.Repository   = (*PhaseRepository)(nil)
	_ access.Repository  = (*TokenRepository)(nil)
	_ share.TokenWriter  = (*TokenRepository)(nil)
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	args := m.Called(ctx, name)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

// NoteRepository is a mock for note.Repository.
type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) ListByProject(ctx context.Context, projectID int64) ([]note.Note, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]note.Note); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) Insert(ctx context.Context, n *note.Note) (*note.Note, error) {
	args := m.Called(ctx, n)
	if created, ok := args.Get(0).(*note.Note); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

// PhaseRepository is a mock for phase.Repository.
type PhaseRepository struct {
	mock.Mock
}

func (m *PhaseRepository) Get(ctx context.Context, projectName string) (int, error) {
	args := m.Called(ctx, projectName)
	return args.Int(0), args.Error(1)
}

func (m *PhaseRepository) Upsert(ctx context.Context, projectName string, current int) error {
	args := m.Called(ctx, projectName, current)
	return args.Error(0)
}

// TokenRepository is a mock for access.Repository and share.TokenWriter.
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) GetActive(ctx context.Context, token string) (*access.Grant, error) {
	args := m.Called(ctx, token)
	if grant, ok := args.Get(0).(*access.Grant); ok {
		return grant, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TokenRepository) Insert(ctx context.Context, grant *access.Grant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

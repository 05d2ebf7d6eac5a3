package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sellerconsulting/bitacora/internal/domain/project"
	"github.com/sellerconsulting/bitacora/internal/repository"
)

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &project.Project{Name: "acme-retail", ClientName: "Acme Retail"}
	err := repo.Create(ctx, proj)
	require.NoError(t, err)
	require.NotZero(t, proj.ID)

	got, err := repo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, "acme-retail", got.Name)
	require.Equal(t, "Acme Retail", got.ClientName)
}

func TestProjectRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), 42)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_GetByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &project.Project{Name: "acme-retail", ClientName: "Acme Retail"}))

	got, err := repo.GetByName(ctx, "acme-retail")
	require.NoError(t, err)
	require.Equal(t, "Acme Retail", got.ClientName)

	_, err = repo.GetByName(ctx, "unknown")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ListOrdersByName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &project.Project{Name: "zeta-logistics"}))
	require.NoError(t, repo.Create(ctx, &project.Project{Name: "acme-retail"}))
	require.NoError(t, repo.Create(ctx, &project.Project{Name: "midway-foods"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "acme-retail", list[0].Name)
	require.Equal(t, "midway-foods", list[1].Name)
	require.Equal(t, "zeta-logistics", list[2].Name)
}

func TestProjectRepository_DuplicateName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &project.Project{Name: "acme-retail"}))
	err := repo.Create(ctx, &project.Project{Name: "acme-retail"})
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

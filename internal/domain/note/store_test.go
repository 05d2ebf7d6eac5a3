package note_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sellerconsulting/bitacora/internal/domain/note"
	"github.com/sellerconsulting/bitacora/internal/repository/mocks"
)

func validDraft() note.Draft {
	return note.Draft{
		Title:   "Kickoff session",
		Date:    "2024-01-05",
		Summary: "Agreed on scope and the first milestones",
	}
}

func loadedStore(t *testing.T, repo *mocks.NoteRepository, notes []note.Note) *note.Store {
	t.Helper()
	repo.On("ListByProject", mock.Anything, int64(1)).Return(notes, nil).Once()
	store := note.NewStore(repo, nil)
	store.Load(context.Background(), 1)
	return store
}

func TestStore_LoadSetsActiveToMostRecent(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, []note.Note{
		{ID: "a", Date: "2024-01-05"},
		{ID: "b", Date: "2024-03-01"},
		{ID: "c", Date: "2024-02-15"},
	})

	active := store.Active()
	require.NotNil(t, active)
	require.Equal(t, "b", active.ID)
	require.Equal(t, 3, store.Count())
}

func TestStore_LoadEmptyClearsActive(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, nil)

	require.Nil(t, store.Active())
	require.Empty(t, store.LatestFirst())
	require.Empty(t, store.Timeline())
}

func TestStore_LoadFailure(t *testing.T) {
	repo := &mocks.NoteRepository{}
	repo.On("ListByProject", mock.Anything, int64(1)).Return([]note.Note(nil), errors.New("db closed"))

	store := note.NewStore(repo, nil)
	store.Load(context.Background(), 1)

	require.ErrorIs(t, store.LoadError(), note.ErrLoadFailed)
	require.False(t, store.Loading())
}

func TestStore_LatestFirstOrdering(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, []note.Note{
		{ID: "jan", Date: "2024-01-05"},
		{ID: "mar", Date: "2024-03-01"},
		{ID: "feb", Date: "2024-02-15"},
	})

	ordered := store.LatestFirst()
	require.Equal(t, []string{"mar", "feb", "jan"},
		[]string{ordered[0].ID, ordered[1].ID, ordered[2].ID})
}

func TestStore_EqualDatesKeepArrivalOrder(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, []note.Note{
		{ID: "first", Date: "2024-02-15"},
		{ID: "second", Date: "2024-02-15"},
		{ID: "older", Date: "2024-01-01"},
	})

	ordered := store.LatestFirst()
	require.Equal(t, "first", ordered[0].ID)
	require.Equal(t, "second", ordered[1].ID)
	require.Equal(t, "older", ordered[2].ID)
}

func TestStore_TimelineNumbersFromOldest(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, []note.Note{
		{ID: "jan", Date: "2024-01-05"},
		{ID: "mar", Date: "2024-03-01"},
		{ID: "feb", Date: "2024-02-15"},
	})

	timeline := store.Timeline()
	require.Len(t, timeline, 3)
	require.Equal(t, 3, timeline[0].Seq)
	require.Equal(t, "mar", timeline[0].Note.ID)
	require.Equal(t, 1, timeline[2].Seq)
	require.Equal(t, "jan", timeline[2].Note.ID)
}

func TestStore_CreateAppliesCreatedRow(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, []note.Note{{ID: "old", Date: "2024-01-05"}})

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(n *note.Note) bool {
		return n.Title == "Kickoff session" && n.ProjectID == 1 &&
			n.Tag == note.DefaultTag && n.ClientStatus == note.StatusDeferred
	})).Return(&note.Note{
		ID:           "new",
		ProjectID:    1,
		Title:        "Kickoff session",
		Date:         "2024-01-05",
		Tag:          note.DefaultTag,
		Summary:      "Agreed on scope and the first milestones",
		ClientStatus: note.StatusDeferred,
		CreatedAt:    time.Now(),
	}, nil)

	created, err := store.Create(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, "new", created.ID)

	// The created note joins the set and becomes the active selection.
	require.Equal(t, 2, store.Count())
	require.Equal(t, "new", store.Active().ID)
	require.NoError(t, store.CreateError())
}

func TestStore_CreateValidationLeavesSetUntouched(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, []note.Note{{ID: "old", Date: "2024-01-05"}})

	draft := validDraft()
	draft.Title = "ab"
	_, err := store.Create(context.Background(), draft)
	require.ErrorIs(t, err, note.ErrValidation)

	require.Equal(t, 1, store.Count())
	repo.AssertNotCalled(t, "Insert")
}

func TestStore_CreateStoreFailureRollsBack(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, []note.Note{{ID: "old", Date: "2024-01-05"}})

	repo.On("Insert", mock.Anything, mock.Anything).Return((*note.Note)(nil), errors.New("db closed"))

	_, err := store.Create(context.Background(), validDraft())
	require.ErrorIs(t, err, note.ErrSaveFailed)

	require.Equal(t, 1, store.Count())
	require.Equal(t, "old", store.Active().ID)
	require.ErrorIs(t, store.CreateError(), note.ErrSaveFailed)
}

func TestStore_CreateWithoutProject(t *testing.T) {
	store := note.NewStore(&mocks.NoteRepository{}, nil)

	_, err := store.Create(context.Background(), validDraft())
	require.ErrorIs(t, err, note.ErrNoProject)
}

func TestStore_SecondCreateRejectedWhileInFlight(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	repo.On("Insert", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(&note.Note{ID: "new", Date: "2024-01-05"}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := store.Create(context.Background(), validDraft())
		done <- err
	}()

	<-started
	_, err := store.Create(context.Background(), validDraft())
	require.ErrorIs(t, err, note.ErrSaveInFlight)

	close(release)
	require.NoError(t, <-done)
}

func TestStore_SetActive(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, []note.Note{
		{ID: "a", Date: "2024-01-05"},
		{ID: "b", Date: "2024-03-01"},
	})

	require.NoError(t, store.SetActive("a"))
	require.Equal(t, "a", store.Active().ID)

	require.ErrorIs(t, store.SetActive("missing"), note.ErrNotInSet)
	require.Equal(t, "a", store.Active().ID)
}

func TestStore_StaleLoadDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	repo := &mocks.NoteRepository{}
	repo.On("ListByProject", mock.Anything, int64(1)).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]note.Note{{ID: "stale", Date: "2024-01-01"}}, nil)
	repo.On("ListByProject", mock.Anything, int64(2)).Return([]note.Note{{ID: "fresh", Date: "2024-02-01"}}, nil)

	store := note.NewStore(repo, nil)

	finished := make(chan struct{})
	go func() {
		store.Load(context.Background(), 1)
		close(finished)
	}()

	<-started
	store.Load(context.Background(), 2)
	close(release)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded load did not finish")
	}

	require.Equal(t, int64(2), store.ProjectID())
	require.Equal(t, 1, store.Count())
	require.Equal(t, "fresh", store.Active().ID)
}

func TestStore_BeginOrderWinsOverCompletionOrder(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.NoteRepository{}
	repo.On("ListByProject", ctx, int64(1)).Return([]note.Note{{ID: "stale", Date: "2024-01-01"}}, nil)
	repo.On("ListByProject", ctx, int64(2)).Return([]note.Note{{ID: "fresh", Date: "2024-02-01"}}, nil)

	store := note.NewStore(repo, nil)

	genFirst := store.Begin(1)
	genSecond := store.Begin(2)

	// The earlier selection's fetch lands last; it must not win.
	store.Finish(ctx, 2, genSecond)
	store.Finish(ctx, 1, genFirst)

	require.Equal(t, int64(2), store.ProjectID())
	require.Equal(t, "fresh", store.Active().ID)
	require.False(t, store.Loading())
}

func TestStore_CreateDuringReloadNotAppliedToNewSet(t *testing.T) {
	repo := &mocks.NoteRepository{}
	store := loadedStore(t, repo, nil)

	insertStarted := make(chan struct{})
	insertRelease := make(chan struct{})
	repo.On("Insert", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(insertStarted)
		<-insertRelease
	}).Return(&note.Note{ID: "new", ProjectID: 1, Date: "2024-01-05"}, nil)
	repo.On("ListByProject", mock.Anything, int64(2)).Return([]note.Note(nil), nil)

	done := make(chan error, 1)
	go func() {
		_, err := store.Create(context.Background(), validDraft())
		done <- err
	}()

	<-insertStarted
	// The view switched projects while the insert was in flight.
	store.Load(context.Background(), 2)
	close(insertRelease)
	require.NoError(t, <-done)

	// The created note belongs to the old project and must not leak in.
	require.Zero(t, store.Count())
	require.Nil(t, store.Active())
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"notesai-be/internal/dto"
	"notesai-be/internal/pkg/apperrors"
	"notesai-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteServiceForTest() (INoteService, *fakeUowFactory, *fakePublisher) {
	factory := newFakeUowFactory()
	pub := &fakePublisher{}
	svc := NewNoteService(factory, pub, nopLogger{})
	return svc, factory, pub
}

func TestNoteService_CreateAndShow(t *testing.T) {
	svc, _, pub := newNoteServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "Groceries",
		Content: "milk, eggs",
		Tags:    []string{"shopping"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", created.Title)
	assert.Equal(t, []string{"shopping"}, created.Tags)
	assert.False(t, created.IsFavorite)
	assert.False(t, created.IsArchived)

	shown, err := svc.Show(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Id, shown.Id)
	assert.Empty(t, shown.Versions)

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.NoteCreated, pub.published[0].Type)
	assert.Equal(t, userId.String(), pub.published[0].Data["user_id"])
}

func TestNoteService_CreateWithoutTagsGetsEmptySlice(t *testing.T) {
	svc, _, _ := newNoteServiceForTest()

	created, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{
		Title:   "Untagged",
		Content: "body",
	})
	require.NoError(t, err)
	assert.NotNil(t, created.Tags)
	assert.Empty(t, created.Tags)
}

func TestNoteService_UpdateSnapshotsPreviousState(t *testing.T) {
	svc, _, pub := newNoteServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "Draft",
		Content: "v1",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, userId, &dto.UpdateNoteRequest{
		Id:      created.Id,
		Title:   "Draft",
		Content: "v2",
	})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
	assert.NotNil(t, updated.UpdatedAt)

	shown, err := svc.Show(ctx, userId, created.Id)
	require.NoError(t, err)
	require.Len(t, shown.Versions, 1)
	assert.Equal(t, "v1", shown.Versions[0].Content)
	assert.Equal(t, "Draft", shown.Versions[0].Title)

	assert.Equal(t, events.NoteUpdated, pub.published[len(pub.published)-1].Type)
}

func TestNoteService_NoopUpdateStillCreatesVersion(t *testing.T) {
	svc, _, _ := newNoteServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "Same", Content: "same"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, userId, &dto.UpdateNoteRequest{Id: created.Id, Title: "Same", Content: "same"})
	require.NoError(t, err)

	shown, err := svc.Show(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Len(t, shown.Versions, 1)
}

func TestNoteService_UpdateTagHandling(t *testing.T) {
	svc, _, _ := newNoteServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{
		Title:   "Tagged",
		Content: "body",
		Tags:    []string{"work", "ideas"},
	})
	require.NoError(t, err)

	// Omitted tags leave the stored ones alone.
	updated, err := svc.Update(ctx, userId, &dto.UpdateNoteRequest{
		Id:      created.Id,
		Title:   "Tagged",
		Content: "body v2",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "ideas"}, updated.Tags)

	// An explicit empty array clears them.
	empty := []string{}
	updated, err = svc.Update(ctx, userId, &dto.UpdateNoteRequest{
		Id:      created.Id,
		Title:   "Tagged",
		Content: "body v3",
		Tags:    &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

func TestNoteService_ShowCapsVersionsAtTenNewestFirst(t *testing.T) {
	svc, _, _ := newNoteServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "History", Content: "rev 0"})
	require.NoError(t, err)

	for i := 1; i <= 12; i++ {
		_, err = svc.Update(ctx, userId, &dto.UpdateNoteRequest{
			Id:      created.Id,
			Title:   "History",
			Content: fmt.Sprintf("rev %d", i),
		})
		require.NoError(t, err)
		// Distinct timestamps keep the ordering assertion meaningful.
		time.Sleep(time.Millisecond)
	}

	shown, err := svc.Show(ctx, userId, created.Id)
	require.NoError(t, err)
	require.Len(t, shown.Versions, 10)
	for i := 1; i < len(shown.Versions); i++ {
		assert.False(t, shown.Versions[i].CreatedAt.After(shown.Versions[i-1].CreatedAt))
	}
}

func TestNoteService_CrossUserAccessIsNotFound(t *testing.T) {
	svc, _, _ := newNoteServiceForTest()
	ctx := context.Background()
	owner := uuid.New()
	intruder := uuid.New()

	created, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "Private", Content: "secret"})
	require.NoError(t, err)

	_, err = svc.Show(ctx, intruder, created.Id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "Note not found", apperrors.Message(err))

	_, err = svc.Update(ctx, intruder, &dto.UpdateNoteRequest{Id: created.Id, Title: "x", Content: "y"})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	err = svc.Delete(ctx, intruder, created.Id)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	// Owner still has the untouched note.
	shown, err := svc.Show(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "secret", shown.Content)
}

func TestNoteService_DeleteRemovesNoteAndVersions(t *testing.T) {
	svc, factory, pub := newNoteServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "Gone", Content: "soon"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, userId, &dto.UpdateNoteRequest{Id: created.Id, Title: "Gone", Content: "later"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userId, created.Id))

	_, err = svc.Show(ctx, userId, created.Id)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Empty(t, factory.store.versions)

	assert.Equal(t, events.NoteDeleted, pub.published[len(pub.published)-1].Type)
}

func TestNoteService_ListFilters(t *testing.T) {
	svc, _, _ := newNoteServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	mk := func(title, content string, tags []string) *dto.NoteResponse {
		n, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: title, Content: content, Tags: tags})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		return n
	}

	work := mk("Standup notes", "discussed roadmap", []string{"work"})
	recipe := mk("Pasta recipe", "tomatoes and basil", []string{"cooking"})
	archived := mk("Old journal", "last year", nil)
	_, err := svc.ToggleArchive(ctx, userId, archived.Id)
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, userId, recipe.Id)
	require.NoError(t, err)

	// Someone else's note never shows up.
	_, err = svc.Create(ctx, uuid.New(), &dto.CreateNoteRequest{Title: "Other", Content: "user"})
	require.NoError(t, err)

	t.Run("default excludes archived", func(t *testing.T) {
		notes, err := svc.List(ctx, userId, &dto.ListNotesFilter{})
		require.NoError(t, err)
		require.Len(t, notes, 2)
		// Ordered by most recently updated first.
		assert.Equal(t, recipe.Id, notes[0].Id)
		assert.Equal(t, work.Id, notes[1].Id)
	})

	t.Run("archived only", func(t *testing.T) {
		notes, err := svc.List(ctx, userId, &dto.ListNotesFilter{OnlyArchived: true})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, archived.Id, notes[0].Id)
	})

	t.Run("favorites only", func(t *testing.T) {
		notes, err := svc.List(ctx, userId, &dto.ListNotesFilter{OnlyFavorites: true})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, recipe.Id, notes[0].Id)
	})

	t.Run("search matches title or content", func(t *testing.T) {
		notes, err := svc.List(ctx, userId, &dto.ListNotesFilter{Search: "roadmap"})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, work.Id, notes[0].Id)
	})

	t.Run("tag filter is exact", func(t *testing.T) {
		notes, err := svc.List(ctx, userId, &dto.ListNotesFilter{Tag: "cooking"})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, recipe.Id, notes[0].Id)

		notes, err = svc.List(ctx, userId, &dto.ListNotesFilter{Tag: "cook"})
		require.NoError(t, err)
		assert.Empty(t, notes)
	})
}

func TestNoteService_ToggleFlags(t *testing.T) {
	svc, _, _ := newNoteServiceForTest()
	ctx := context.Background()
	userId := uuid.New()

	created, err := svc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "Flip", Content: "flags"})
	require.NoError(t, err)

	fav, err := svc.ToggleFavorite(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.True(t, fav.IsFavorite)

	fav, err = svc.ToggleFavorite(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.False(t, fav.IsFavorite)

	arch, err := svc.ToggleArchive(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.True(t, arch.IsArchived)

	// Flag flips never add versions.
	shown, err := svc.Show(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.Empty(t, shown.Versions)
}

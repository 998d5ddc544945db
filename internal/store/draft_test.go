package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ilanver/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()

	draft := &types.ListingDraft{UserID: "u1"}
	require.NoError(t, repo.CreateDraft(ctx, draft))
	require.NotEmpty(t, draft.ID)
	assert.Equal(t, types.StepType, draft.CurrentStep)

	got, err := repo.Draft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	got.Title = "Bahçeli ev"
	stored, _ := repo.Draft(ctx, draft.ID)
	assert.Empty(t, stored.Title, "copies are not shared with the repository")

	updated, err := repo.UpdateDraft(ctx, draft.ID, func(d *types.ListingDraft) error {
		d.Title = "Bahçeli ev"
		d.Photos = append(d.Photos, &types.Photo{ID: "p1"})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Bahçeli ev", updated.Title)

	stored, _ = repo.Draft(ctx, draft.ID)
	assert.Equal(t, "Bahçeli ev", stored.Title)
	assert.Len(t, stored.Photos, 1)
	assert.Equal(t, draft.CreatedAt, stored.CreatedAt)

	require.NoError(t, repo.DeleteDraft(ctx, draft.ID))
	_, err = repo.Draft(ctx, draft.ID)
	assert.ErrorIs(t, err, types.ErrDraftNotFound)
	assert.ErrorIs(t, repo.DeleteDraft(ctx, draft.ID), types.ErrDraftNotFound)

	_, err = repo.UpdateDraft(ctx, draft.ID, func(*types.ListingDraft) error { return nil })
	assert.ErrorIs(t, err, types.ErrDraftNotFound)
}

func TestDraftRepository_UpdateDraftFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()

	draft := &types.ListingDraft{UserID: "u1", DraftInfo: types.DraftInfo{Title: "Eski başlık"}}
	require.NoError(t, repo.CreateDraft(ctx, draft))

	failure := errors.New("rejected")
	_, err := repo.UpdateDraft(ctx, draft.ID, func(d *types.ListingDraft) error {
		d.Title = "Yeni başlık"
		return failure
	})
	assert.ErrorIs(t, err, failure)

	stored, err := repo.Draft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eski başlık", stored.Title)
}

func TestDraftRepository_ConcurrentUpdatesKeepEveryPhoto(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()

	draft := &types.ListingDraft{UserID: "u1"}
	require.NoError(t, repo.CreateDraft(ctx, draft))

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.UpdateDraft(ctx, draft.ID, func(d *types.ListingDraft) error {
				d.Photos = append(d.Photos, &types.Photo{ID: fmt.Sprintf("p%d", i)})
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := repo.Draft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Photos, n)
}

func TestDraftRepository_DraftsByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()

	clock := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	first := &types.ListingDraft{UserID: "u1"}
	require.NoError(t, repo.CreateDraft(ctx, first))

	clock = clock.Add(time.Minute)
	second := &types.ListingDraft{UserID: "u1"}
	require.NoError(t, repo.CreateDraft(ctx, second))
	require.NoError(t, repo.CreateDraft(ctx, &types.ListingDraft{UserID: "u2"}))

	drafts, err := repo.DraftsByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, second.ID, drafts[0].ID)
	assert.Equal(t, first.ID, drafts[1].ID)
}

func TestDraftRepository_PruneBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository()

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	old := &types.ListingDraft{UserID: "u1", Photos: []*types.Photo{{ID: "p", StorageKey: "drafts/x/p.jpg"}}}
	require.NoError(t, repo.CreateDraft(ctx, old))

	clock = clock.Add(48 * time.Hour)
	fresh := &types.ListingDraft{UserID: "u1"}
	require.NoError(t, repo.CreateDraft(ctx, fresh))

	pruned := repo.PruneBefore(ctx, clock.Add(-24*time.Hour))
	require.Len(t, pruned, 1)
	assert.Equal(t, old.ID, pruned[0].ID)
	assert.Equal(t, "drafts/x/p.jpg", pruned[0].Photos[0].StorageKey)

	_, err := repo.Draft(ctx, old.ID)
	assert.ErrorIs(t, err, types.ErrDraftNotFound)
	_, err = repo.Draft(ctx, fresh.ID)
	assert.NoError(t, err)
}

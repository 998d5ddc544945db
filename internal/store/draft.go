// Package store keeps listing drafts in process memory. Drafts are lost on
// restart.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"ilanver/internal/utils"
	"ilanver/pkg/types"
)

// DraftRepository hands out copies; changes go through UpdateDraft.
type DraftRepository struct {
	mu     sync.RWMutex
	drafts map[string]*types.ListingDraft
	now    func() time.Time
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		drafts: make(map[string]*types.ListingDraft),
		now:    time.Now,
	}
}

func (r *DraftRepository) CreateDraft(ctx context.Context, draft *types.ListingDraft) error {
	now := r.now()
	draft.ID = utils.NanoID()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	if draft.CurrentStep == "" {
		draft.CurrentStep = types.StepType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.drafts[draft.ID] = draft.Clone()
	return nil
}

func (r *DraftRepository) Draft(ctx context.Context, draftID string) (*types.ListingDraft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	draft, ok := r.drafts[draftID]
	if !ok {
		return nil, types.ErrDraftNotFound
	}
	return draft.Clone(), nil
}

// DraftsByUser returns the user's drafts, most recently updated first.
func (r *DraftRepository) DraftsByUser(ctx context.Context, userID string) ([]*types.ListingDraft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drafts := make([]*types.ListingDraft, 0)
	for _, d := range r.drafts {
		if d.UserID == userID {
			drafts = append(drafts, d.Clone())
		}
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
	return drafts, nil
}

// UpdateDraft runs fn on a copy of the stored draft while holding the write
// lock and stores the result. When fn fails nothing is written and its error
// is returned.
func (r *DraftRepository) UpdateDraft(ctx context.Context, draftID string, fn func(*types.ListingDraft) error) (*types.ListingDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.drafts[draftID]
	if !ok {
		return nil, types.ErrDraftNotFound
	}

	draft := existing.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}

	draft.ID = draftID
	draft.UserID = existing.UserID
	draft.CreatedAt = existing.CreatedAt
	draft.UpdatedAt = r.now()

	r.drafts[draftID] = draft.Clone()
	return draft, nil
}

func (r *DraftRepository) DeleteDraft(ctx context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drafts[draftID]; !ok {
		return types.ErrDraftNotFound
	}
	delete(r.drafts, draftID)
	return nil
}

// PruneBefore removes drafts not updated since cutoff and returns them so
// their staged photos can be deleted.
func (r *DraftRepository) PruneBefore(ctx context.Context, cutoff time.Time) []*types.ListingDraft {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pruned []*types.ListingDraft
	for id, d := range r.drafts {
		if d.UpdatedAt.Before(cutoff) {
			pruned = append(pruned, d)
			delete(r.drafts, id)
		}
	}
	return pruned
}

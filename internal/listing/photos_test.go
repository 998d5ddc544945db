package listing

import (
	"testing"

	"ilanver/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftWithPhotos(ids ...string) *types.ListingDraft {
	draft := &types.ListingDraft{ID: "d1"}
	for _, id := range ids {
		draft.Photos = append(draft.Photos, &types.Photo{ID: id})
	}
	deriveMain(draft.Photos)
	return draft
}

func photoIDs(draft *types.ListingDraft) []string {
	out := make([]string, 0, len(draft.Photos))
	for _, p := range draft.Photos {
		out = append(out, p.ID)
	}
	return out
}

func assertOnlyFirstMain(t *testing.T, draft *types.ListingDraft) {
	t.Helper()
	for i, p := range draft.Photos {
		assert.Equal(t, i == 0, p.IsMain, "photo %s at %d", p.ID, i)
	}
}

func TestAddPhoto_FirstIsMain(t *testing.T) {
	draft := &types.ListingDraft{}

	require.NoError(t, AddPhoto(draft, &types.Photo{ID: "a"}, 20))
	assert.True(t, draft.Photos[0].IsMain)

	require.NoError(t, AddPhoto(draft, &types.Photo{ID: "b", IsMain: true}, 20))
	assert.Equal(t, []string{"a", "b"}, photoIDs(draft))
	assertOnlyFirstMain(t, draft)
}

func TestAddPhoto_Limit(t *testing.T) {
	draft := draftWithPhotos("a", "b")

	err := AddPhoto(draft, &types.Photo{ID: "c"}, 2)
	assert.ErrorIs(t, err, types.ErrPhotoLimit)
	assert.Len(t, draft.Photos, 2)
}

func TestRemovePhoto(t *testing.T) {
	draft := draftWithPhotos("a", "b", "c")

	removed, err := RemovePhoto(draft, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", removed.ID)
	assert.False(t, removed.IsMain)
	assert.Equal(t, []string{"b", "c"}, photoIDs(draft))
	assertOnlyFirstMain(t, draft)

	_, err = RemovePhoto(draft, "zzz")
	assert.ErrorIs(t, err, types.ErrPhotoNotFound)

	_, _ = RemovePhoto(draft, "b")
	_, _ = RemovePhoto(draft, "c")
	assert.Empty(t, draft.Photos)
	assert.Nil(t, draft.MainPhoto())
}

func TestMovePhoto(t *testing.T) {
	draft := draftWithPhotos("a", "b", "c", "d")

	require.NoError(t, MovePhoto(draft, "a", 2))
	assert.Equal(t, []string{"b", "c", "a", "d"}, photoIDs(draft))
	assertOnlyFirstMain(t, draft)

	require.NoError(t, MovePhoto(draft, "d", -5))
	assert.Equal(t, []string{"d", "b", "c", "a"}, photoIDs(draft))
	assertOnlyFirstMain(t, draft)

	require.NoError(t, MovePhoto(draft, "d", 99))
	assert.Equal(t, []string{"b", "c", "a", "d"}, photoIDs(draft))
	assertOnlyFirstMain(t, draft)

	assert.ErrorIs(t, MovePhoto(draft, "nope", 0), types.ErrPhotoNotFound)
}

func TestSetMainPhoto(t *testing.T) {
	draft := draftWithPhotos("a", "b", "c")

	require.NoError(t, SetMainPhoto(draft, "c"))
	assert.Equal(t, []string{"c", "a", "b"}, photoIDs(draft))
	assert.Equal(t, "c", draft.MainPhoto().ID)
	assertOnlyFirstMain(t, draft)
}

func TestReorderPhotos(t *testing.T) {
	draft := draftWithPhotos("a", "b", "c", "d")

	ReorderPhotos(draft, []string{"c", "x", "a", "c"})
	assert.Equal(t, []string{"c", "a", "b", "d"}, photoIDs(draft))
	assertOnlyFirstMain(t, draft)
}

func TestSinglePhotoIsMain(t *testing.T) {
	draft := &types.ListingDraft{Category: types.CategoryHousing}
	require.NoError(t, AddPhoto(draft, &types.Photo{ID: "only"}, 0))

	assert.True(t, draft.Photos[0].IsMain)
	assert.NoError(t, CanAdvance(draft, types.StepPhotos))
}

package listing

import (
	"ilanver/pkg/types"
)

// The photo operations below keep one invariant: the first photo of the
// draft is the main photo and no other photo is.

// AddPhoto appends a photo to the draft.
func AddPhoto(draft *types.ListingDraft, photo *types.Photo, maxPhotos int) error {
	if maxPhotos > 0 && len(draft.Photos) >= maxPhotos {
		return types.ErrPhotoLimit
	}

	draft.Photos = append(draft.Photos, photo)
	deriveMain(draft.Photos)
	return nil
}

// RemovePhoto deletes a photo and returns it so its staged file can be
// cleaned up.
func RemovePhoto(draft *types.ListingDraft, photoID string) (*types.Photo, error) {
	idx := photoIndex(draft.Photos, photoID)
	if idx < 0 {
		return nil, types.ErrPhotoNotFound
	}

	removed := draft.Photos[idx]
	draft.Photos = append(draft.Photos[:idx], draft.Photos[idx+1:]...)
	removed.IsMain = false
	deriveMain(draft.Photos)
	return removed, nil
}

// MovePhoto moves a photo to position to, clamped to the list bounds.
func MovePhoto(draft *types.ListingDraft, photoID string, to int) error {
	from := photoIndex(draft.Photos, photoID)
	if from < 0 {
		return types.ErrPhotoNotFound
	}

	if to < 0 {
		to = 0
	}
	if to > len(draft.Photos)-1 {
		to = len(draft.Photos) - 1
	}

	photo := draft.Photos[from]
	rest := append(draft.Photos[:from:from], draft.Photos[from+1:]...)

	out := make([]*types.Photo, 0, len(draft.Photos))
	out = append(out, rest[:to]...)
	out = append(out, photo)
	out = append(out, rest[to:]...)

	draft.Photos = out
	deriveMain(draft.Photos)
	return nil
}

// SetMainPhoto makes a photo the cover by moving it to the front.
func SetMainPhoto(draft *types.ListingDraft, photoID string) error {
	return MovePhoto(draft, photoID, 0)
}

// ReorderPhotos puts the photos in the order of ids. Photos missing from ids
// keep their relative order after the listed ones; unknown ids are ignored.
func ReorderPhotos(draft *types.ListingDraft, ids []string) {
	byID := make(map[string]*types.Photo, len(draft.Photos))
	for _, p := range draft.Photos {
		byID[p.ID] = p
	}

	out := make([]*types.Photo, 0, len(draft.Photos))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			delete(byID, id)
		}
	}
	for _, p := range draft.Photos {
		if _, ok := byID[p.ID]; ok {
			out = append(out, p)
		}
	}

	draft.Photos = out
	deriveMain(draft.Photos)
}

func deriveMain(photos []*types.Photo) {
	for i, p := range photos {
		p.IsMain = i == 0
	}
}

func photoIndex(photos []*types.Photo, id string) int {
	for i, p := range photos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

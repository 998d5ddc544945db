package types

import "errors"

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrSubtypeMismatch  = errors.New("subtype does not belong to category")
	ErrDraftNotFound    = errors.New("draft not found")
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrPhotoTooLarge    = errors.New("photo exceeds size limit")
	ErrPhotoType        = errors.New("unsupported photo type")
	ErrPhotoLimit       = errors.New("too many photos")
	ErrPhotosRequired   = errors.New("at least one photo is required")
	ErrPhotosRejected   = errors.New("photos failed the submission check")
	ErrNotCreated       = errors.New("listing has not been created")
	ErrListingNotFound  = errors.New("listing not found")
	ErrStepIncomplete   = errors.New("wizard step incomplete")
	ErrConversationGone = errors.New("conversation not found")
)

package listing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"ilanver/pkg/types"

	"github.com/sirupsen/logrus"
)

const (
	MsgCreateFailed   = "İlan oluşturulamadı. Lütfen tekrar deneyin."
	MsgPhotosFailed   = "İlan oluşturuldu ancak fotoğraflar yüklenemedi. Fotoğrafları tekrar yüklemeyi deneyin."
	MsgPhotosRejected = "Bazı fotoğraflar yayın koşullarını karşılamıyor. İşaretli fotoğrafları kaldırıp tekrar deneyin."
	MsgPhotosRequired = "Devam etmek için en az bir fotoğraf ekleyin."
	MsgIncomplete     = "İlanı göndermeden önce tüm adımları tamamlayın."
)

// ListingAPI creates listings and attaches their photos.
type ListingAPI interface {
	CreateListing(ctx context.Context, body map[string]any) (string, error)
	UploadPhotos(ctx context.Context, listingID string, photos []types.PhotoUpload) error
}

// PhotoSource reads and removes staged photo files.
type PhotoSource interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type Submitter struct {
	logger         *logrus.Logger
	api            ListingAPI
	photos         PhotoSource
	submitMaxBytes int64
}

func NewSubmitter(logger *logrus.Logger, api ListingAPI, photos PhotoSource, submitMaxBytes int64) *Submitter {
	return &Submitter{
		logger:         logger,
		api:            api,
		photos:         photos,
		submitMaxBytes: submitMaxBytes,
	}
}

// SubmitResult tells apart a listing that was never created from one that
// was created without its photos.
type SubmitResult struct {
	ListingID      string
	Created        bool
	PhotosUploaded bool
	// Rejected maps photo IDs that failed the submission check to a message.
	Rejected map[string]string
	Message  string
}

// Submit creates the listing and then uploads its photos as a second request.
// Nothing is sent while any photo fails the submission check. A draft whose
// listing already exists only has its photos uploaded.
func (s *Submitter) Submit(ctx context.Context, draft *types.ListingDraft) (*SubmitResult, error) {
	result := &SubmitResult{Rejected: map[string]string{}}

	if err := CanAdvance(draft, types.StepReview); err != nil {
		result.Message = MsgIncomplete
		if errors.Is(err, types.ErrPhotosRequired) {
			result.Message = MsgPhotosRequired
		}
		return result, err
	}

	if err := s.checkPhotos(draft, result); err != nil {
		return result, err
	}

	if draft.ListingID != "" {
		result.ListingID = draft.ListingID
		result.Created = true
		return s.attachPhotos(ctx, draft, result)
	}

	listingID, err := s.api.CreateListing(ctx, Payload(draft))
	if err != nil {
		s.logger.WithError(err).WithField("draft_id", draft.ID).Error("failed to create listing")
		result.Message = MsgCreateFailed
		return result, fmt.Errorf("failed to create listing: %w", err)
	}
	result.ListingID = listingID
	result.Created = true

	return s.attachPhotos(ctx, draft, result)
}

// RetryPhotos uploads the photos of a draft whose listing was created while
// the photo upload failed.
func (s *Submitter) RetryPhotos(ctx context.Context, draft *types.ListingDraft) (*SubmitResult, error) {
	result := &SubmitResult{Rejected: map[string]string{}}

	if draft.ListingID == "" {
		result.Message = MsgCreateFailed
		return result, types.ErrNotCreated
	}
	result.ListingID = draft.ListingID
	result.Created = true

	if len(draft.Photos) == 0 {
		result.Message = MsgPhotosRequired
		return result, types.ErrPhotosRequired
	}
	if err := s.checkPhotos(draft, result); err != nil {
		return result, err
	}

	return s.attachPhotos(ctx, draft, result)
}

func (s *Submitter) checkPhotos(draft *types.ListingDraft, result *SubmitResult) error {
	for _, p := range draft.Photos {
		if err := CheckSubmission(p, s.submitMaxBytes); err != nil {
			result.Rejected[p.ID] = PhotoMessage(err, s.submitMaxBytes)
		}
	}
	if len(result.Rejected) > 0 {
		result.Message = MsgPhotosRejected
		return fmt.Errorf("%d of %d photos: %w", len(result.Rejected), len(draft.Photos), types.ErrPhotosRejected)
	}
	return nil
}

func (s *Submitter) attachPhotos(ctx context.Context, draft *types.ListingDraft, result *SubmitResult) (*SubmitResult, error) {
	if err := s.uploadPhotos(ctx, result.ListingID, draft.Photos); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"draft_id":   draft.ID,
			"listing_id": result.ListingID,
		}).Error("listing created but photo upload failed")
		result.Message = MsgPhotosFailed
		return result, fmt.Errorf("failed to upload photos: %w", err)
	}
	result.PhotosUploaded = true

	for _, p := range draft.Photos {
		if err := s.photos.Delete(ctx, p.StorageKey); err != nil {
			s.logger.WithError(err).WithField("storage_key", p.StorageKey).Warn("failed to delete staged photo")
		}
	}

	return result, nil
}

func (s *Submitter) uploadPhotos(ctx context.Context, listingID string, photos []*types.Photo) error {
	uploads := make([]types.PhotoUpload, 0, len(photos))
	closers := make([]io.Closer, 0, len(photos))
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	for _, p := range photos {
		body, err := s.photos.Open(ctx, p.StorageKey)
		if err != nil {
			return fmt.Errorf("failed to open staged photo %s: %w", p.ID, err)
		}
		closers = append(closers, body)

		uploads = append(uploads, types.PhotoUpload{
			FileName:    p.FileName,
			ContentType: p.ContentType,
			Body:        body,
		})
	}

	return s.api.UploadPhotos(ctx, listingID, uploads)
}

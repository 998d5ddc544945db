package server

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"ilanver/internal/listing"
	"ilanver/internal/storage"
	"ilanver/internal/utils"
	"ilanver/pkg/types"

	"github.com/sirupsen/logrus"
)

// handlePostWizardPhotos either stages newly picked files (action=upload) or
// leaves the photos step (action=next).
func (s *Service) handlePostWizardPhotos(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	// Leave room for the rest of the form on top of the files themselves.
	limit := s.config.PhotoSelectMaxBytes*int64(s.config.MaxPhotos) + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.logger.WithError(err).WithField("draft_id", draft.ID).Info("failed to parse photo form")
		s.redirectWithError(w, r, stepPath(draft.ID, types.StepPhotos), "Fotoğraflar okunamadı. Daha küçük dosyalar deneyin.")
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	switch r.FormValue("action") {
	case "next":
		s.nextFromPhotos(w, r, draft)
	default:
		var files []*multipart.FileHeader
		if r.MultipartForm != nil {
			files = r.MultipartForm.File["photos"]
		}
		s.stagePhotos(w, r, draft, files)
	}
}

func (s *Service) nextFromPhotos(w http.ResponseWriter, r *http.Request, draft *types.ListingDraft) {
	if err := listing.CanAdvance(draft, types.StepPhotos); err != nil {
		data := s.wizardPageData(r.Context(), draft, types.StepPhotos)
		data.Error = listing.PhotoMessage(err, s.config.PhotoSelectMaxBytes)
		s.renderWizard(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	s.advance(w, r, draft.ID, types.StepPhotos, func(*types.ListingDraft) listing.FieldErrors { return nil })
}

// stagePhotos checks each file and stores the accepted ones. A rejected file
// never stops the others.
func (s *Service) stagePhotos(w http.ResponseWriter, r *http.Request, draft *types.ListingDraft, files []*multipart.FileHeader) {
	logger := s.logger.WithField("draft_id", draft.ID)

	if len(files) == 0 {
		s.redirectWithError(w, r, stepPath(draft.ID, types.StepPhotos), "Yüklenecek bir fotoğraf seçin.")
		return
	}

	var rejected []string
	added := 0
	for _, fh := range files {
		var photo *types.Photo
		err := types.ErrPhotoLimit
		if len(draft.Photos)+added < s.config.MaxPhotos {
			photo, err = s.stagePhoto(r.Context(), draft.ID, fh)
		}
		if err != nil {
			logger.WithError(err).WithField("file_name", fh.Filename).Info("photo rejected")
			rejected = append(rejected, fh.Filename+": "+listing.PhotoMessage(err, s.config.PhotoSelectMaxBytes))
			continue
		}

		logger.WithFields(logrus.Fields{
			"photo_id":     photo.ID,
			"content_type": photo.ContentType,
			"size_bytes":   photo.SizeBytes,
		}).Debug("photo staged")
		added++
	}

	if len(rejected) > 0 {
		s.redirectWithError(w, r, stepPath(draft.ID, types.StepPhotos), strings.Join(rejected, " "))
		return
	}

	s.redirectWithNotice(w, r, stepPath(draft.ID, types.StepPhotos), "Fotoğraflar eklendi.")
}

// stagePhoto stores the file and adds it to the stored draft. The photo limit
// is checked again under the draft lock, and a file that does not make it
// into the draft is deleted.
func (s *Service) stagePhoto(ctx context.Context, draftID string, fh *multipart.FileHeader) (*types.Photo, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	selected, err := listing.InspectPhoto(fh.Filename, fh.Size, file)
	if err != nil {
		return nil, err
	}
	if err := listing.CheckSelection(selected, s.config.PhotoSelectMaxBytes); err != nil {
		return nil, err
	}

	photoID := utils.NanoID()
	key := storage.PhotoKey(draftID, photoID, fh.Filename)

	if err := s.photos.Put(ctx, key, selected.ContentType, selected.SizeBytes, selected.Body); err != nil {
		return nil, err
	}

	photo := &types.Photo{
		ID:          photoID,
		FileName:    fh.Filename,
		ContentType: selected.ContentType,
		SizeBytes:   selected.SizeBytes,
		StorageKey:  key,
		AddedAt:     time.Now(),
	}

	_, err = s.drafts.UpdateDraft(ctx, draftID, func(d *types.ListingDraft) error {
		return listing.AddPhoto(d, photo, s.config.MaxPhotos)
	})
	if err != nil {
		if delErr := s.photos.Delete(ctx, key); delErr != nil {
			s.logger.WithError(delErr).WithField("storage_key", key).Warn("failed to delete unused staged photo")
		}
		return nil, err
	}

	return photo, nil
}

func (s *Service) handlePostPhotoDelete(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	photoID := r.PathValue("photoID")

	var removed *types.Photo
	_, err := s.drafts.UpdateDraft(r.Context(), draft.ID, func(d *types.ListingDraft) error {
		var err error
		removed, err = listing.RemovePhoto(d, photoID)
		return err
	})
	if err != nil {
		s.photoActionFailed(w, r, draft, err)
		return
	}

	if err := s.photos.Delete(r.Context(), removed.StorageKey); err != nil {
		s.logger.WithError(err).WithField("storage_key", removed.StorageKey).Warn("failed to delete staged photo")
	}

	s.redirectWithNotice(w, r, stepPath(draft.ID, types.StepPhotos), "Fotoğraf silindi.")
}

func (s *Service) handlePostPhotoMain(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	photoID := r.PathValue("photoID")

	_, err := s.drafts.UpdateDraft(r.Context(), draft.ID, func(d *types.ListingDraft) error {
		return listing.SetMainPhoto(d, photoID)
	})
	if err != nil {
		s.photoActionFailed(w, r, draft, err)
		return
	}

	s.redirectWithNotice(w, r, stepPath(draft.ID, types.StepPhotos), "Kapak fotoğrafı güncellendi.")
}

func (s *Service) handlePostPhotoUp(w http.ResponseWriter, r *http.Request) {
	s.movePhoto(w, r, -1)
}

func (s *Service) handlePostPhotoDown(w http.ResponseWriter, r *http.Request) {
	s.movePhoto(w, r, 1)
}

func (s *Service) movePhoto(w http.ResponseWriter, r *http.Request, offset int) {
	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	photoID := r.PathValue("photoID")

	_, err := s.drafts.UpdateDraft(r.Context(), draft.ID, func(d *types.ListingDraft) error {
		for i, p := range d.Photos {
			if p.ID == photoID {
				return listing.MovePhoto(d, photoID, i+offset)
			}
		}
		return types.ErrPhotoNotFound
	})
	if err != nil {
		s.photoActionFailed(w, r, draft, err)
		return
	}

	http.Redirect(w, r, stepPath(draft.ID, types.StepPhotos), http.StatusSeeOther)
}

func (s *Service) photoActionFailed(w http.ResponseWriter, r *http.Request, draft *types.ListingDraft, err error) {
	if errors.Is(err, types.ErrPhotoNotFound) {
		s.redirectWithError(w, r, stepPath(draft.ID, types.StepPhotos), "Fotoğraf bulunamadı.")
		return
	}
	s.logger.WithError(err).WithField("draft_id", draft.ID).Error("photo action failed")
	s.redirectWithError(w, r, stepPath(draft.ID, types.StepPhotos), msgSaveFailed)
}

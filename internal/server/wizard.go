package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ilanver/internal/listing"
	"ilanver/pkg/types"

	"github.com/sirupsen/logrus"
)

const msgSaveFailed = "Değişiklikler kaydedilemedi. Lütfen tekrar deneyin."

func (s *Service) handleGetWizardIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	drafts, err := s.drafts.DraftsByUser(ctx, userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to list drafts")
		s.internalServerError(w)
		return
	}

	data := &types.WizardIndexPageData{
		BasePageData: types.BasePageData{Title: "Yeni İlan"},
		Drafts:       drafts,
	}

	if err := s.renderTemplate(w, r, "page.wizard.index", data); err != nil {
		s.logger.WithError(err).Error("failed to render wizard index")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostWizardIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.redirectToLogin(w, r)
		return
	}

	draft := &types.ListingDraft{
		UserID:      userID,
		CurrentStep: types.StepType,
	}
	if err := s.drafts.CreateDraft(ctx, draft); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to create draft")
		s.internalServerError(w)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"draft_id": draft.ID,
	}).Info("listing draft created")

	http.Redirect(w, r, stepPath(draft.ID, types.StepType), http.StatusSeeOther)
}

// loadDraft returns the draft of the path, writing the response itself when
// the draft is missing or owned by someone else.
func (s *Service) loadDraft(w http.ResponseWriter, r *http.Request) (*types.ListingDraft, bool) {
	ctx := r.Context()

	userID, err := s.userIDFromContext(ctx)
	if err != nil {
		s.redirectToLogin(w, r)
		return nil, false
	}

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	draft, err := s.drafts.Draft(ctx, draftID)
	if err != nil {
		if errors.Is(err, types.ErrDraftNotFound) {
			s.notFound(w, r)
			return nil, false
		}
		s.logger.WithError(err).WithField("draft_id", draftID).Error("failed to load draft")
		s.internalServerError(w)
		return nil, false
	}

	if draft.UserID != userID {
		s.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"draft_id": draftID,
		}).Warn("draft accessed by another user")
		s.notFound(w, r)
		return nil, false
	}

	return draft, true
}

func (s *Service) wizardPageData(ctx context.Context, draft *types.ListingDraft, step types.WizardStep) *types.WizardPageData {
	steps := make([]types.WizardStepView, 0, len(listing.Steps))
	for _, st := range listing.Steps {
		if st == types.StepConfirmation {
			continue
		}
		steps = append(steps, types.WizardStepView{
			Step:      st,
			Title:     listing.StepTitle(st),
			Completed: draft.StepCompleted(st),
			Current:   st == step,
		})
	}

	data := &types.WizardPageData{
		BasePageData: types.BasePageData{Title: "Yeni İlan: " + listing.StepTitle(step)},
		Draft:        draft,
		Step:         step,
		Steps:        steps,
		Categories:   types.Categories,
		Schema:       types.SchemaFor(draft.Category),
		Details:      draft.ActiveDetails(),
		FieldErrors:  map[string]string{},
		Rejected:     map[string]string{},
		MaxPhotos:    s.config.MaxPhotos,
	}

	switch step {
	case types.StepLocation:
		data.Provinces = s.backend.Provinces(ctx)
	case types.StepPhotos, types.StepReview:
		s.refreshPreviews(ctx, draft)
	}

	return data
}

// refreshPreviews signs a fresh preview URL for every staged photo, since the
// previous ones may have expired.
func (s *Service) refreshPreviews(ctx context.Context, draft *types.ListingDraft) {
	for _, p := range draft.Photos {
		u, err := s.photos.PreviewURL(ctx, p.StorageKey)
		if err != nil {
			s.logger.WithError(err).WithField("photo_id", p.ID).Warn("failed to sign photo preview")
			continue
		}
		p.PreviewURL = u
	}
}

func (s *Service) renderWizard(w http.ResponseWriter, r *http.Request, status int, data *types.WizardPageData) {
	if err := s.renderTemplateStatus(w, r, status, "page.wizard."+string(data.Step), data); err != nil {
		s.logger.WithError(err).WithField("step", data.Step).Error("failed to render wizard step")
		s.internalServerError(w)
	}
}

func (s *Service) handleGetWizardStep(step types.WizardStep) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := s.loadDraft(w, r)
		if !ok {
			return
		}

		if draft.ListingID != "" && step != types.StepPhotos && step != types.StepReview {
			http.Redirect(w, r, stepPath(draft.ID, types.StepReview), http.StatusSeeOther)
			return
		}

		switch step {
		case types.StepDetails:
			if !draft.Category.Valid() {
				http.Redirect(w, r, stepPath(draft.ID, types.StepType), http.StatusSeeOther)
				return
			}
		case types.StepReview:
			if first := listing.FirstIncomplete(draft); first != types.StepReview {
				s.redirectWithError(w, r, stepPath(draft.ID, first), listing.MsgIncomplete)
				return
			}
		}

		s.renderWizard(w, r, http.StatusOK, s.wizardPageData(r.Context(), draft, step))
	}
}

type propertyTypeForm struct {
	Category    string              `form:"category"`
	Subtype     string              `form:"subtype"`
	ListingType types.ListingIntent `form:"listing_type"`
}

func (s *Service) handlePostWizardType(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var form propertyTypeForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode property type form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	category, _ := types.ParseCategory(form.Category)
	subtype := strings.TrimSpace(form.Subtype)

	errs := s.advance(w, r, draft.ID, types.StepType, func(d *types.ListingDraft) listing.FieldErrors {
		return listing.SetPropertyType(d, category, subtype, form.ListingType)
	})
	if len(errs) > 0 {
		data := s.wizardPageData(ctx, draft, types.StepType)
		data.FieldErrors = errs
		s.renderWizard(w, r, http.StatusUnprocessableEntity, data)
	}
}

func (s *Service) handlePostWizardDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var input listing.DetailInput
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode details form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	errs := s.advance(w, r, draft.ID, types.StepDetails, func(d *types.ListingDraft) listing.FieldErrors {
		return listing.ApplyDetails(d, input)
	})
	if len(errs) == 0 {
		return
	}
	if _, ok := errs["category"]; ok {
		http.Redirect(w, r, stepPath(draft.ID, types.StepType), http.StatusSeeOther)
		return
	}

	data := s.wizardPageData(ctx, draft, types.StepDetails)
	// Show what was typed, not what is stored.
	data.Details.Values = input.Values
	data.Details.Features = input.Features
	data.FieldErrors = errs
	s.renderWizard(w, r, http.StatusUnprocessableEntity, data)
}

func (s *Service) handlePostWizardLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var location types.DraftLocation
	if err := decoder.Decode(&location, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode location form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.resolveLocationNames(ctx, &location)

	errs := s.advance(w, r, draft.ID, types.StepLocation, func(d *types.ListingDraft) listing.FieldErrors {
		return listing.SetLocation(d, location)
	})
	if len(errs) > 0 {
		draft.Location = location
		data := s.wizardPageData(ctx, draft, types.StepLocation)
		data.FieldErrors = errs
		s.renderWizard(w, r, http.StatusUnprocessableEntity, data)
	}
}

// resolveLocationNames fills in names the browser did not send, which happens
// when the pickers are used without JavaScript.
func (s *Service) resolveLocationNames(ctx context.Context, loc *types.DraftLocation) {
	if loc.ProvinceID != "" && loc.ProvinceName == "" {
		loc.ProvinceName = locationName(s.backend.Provinces(ctx), loc.ProvinceID)
	}
	if loc.ProvinceID != "" && loc.DistrictID != "" && loc.DistrictName == "" {
		loc.DistrictName = locationName(s.backend.Districts(ctx, loc.ProvinceID), loc.DistrictID)
	}
	if loc.DistrictID != "" && loc.NeighborhoodID != "" && loc.NeighborhoodName == "" {
		loc.NeighborhoodName = locationName(s.backend.Neighborhoods(ctx, loc.DistrictID), loc.NeighborhoodID)
	}
}

func locationName(locations []types.Location, id string) string {
	for _, l := range locations {
		if strconv.FormatInt(l.ID, 10) == id {
			return l.Name
		}
	}
	return ""
}

func (s *Service) handlePostWizardInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	// Prices are typed with thousands separators ("4.500.000").
	rawPrice := r.PostForm.Get("price")
	r.PostForm.Set("price", digitsOnly(rawPrice))

	var info types.DraftInfo
	if err := decoder.Decode(&info, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode info form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	errs := s.advance(w, r, draft.ID, types.StepInfo, func(d *types.ListingDraft) listing.FieldErrors {
		return listing.SetInfo(d, info)
	})
	if len(errs) > 0 {
		draft.DraftInfo = info
		data := s.wizardPageData(ctx, draft, types.StepInfo)
		data.FieldErrors = errs
		s.renderWizard(w, r, http.StatusUnprocessableEntity, data)
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// advance applies a step form and completes the step in one update of the
// stored draft, then redirects to the next step. Validation errors leave the
// draft untouched and are returned for the caller to render.
func (s *Service) advance(w http.ResponseWriter, r *http.Request, draftID string, step types.WizardStep, apply func(*types.ListingDraft) listing.FieldErrors) listing.FieldErrors {
	var fieldErrs listing.FieldErrors

	updated, err := s.drafts.UpdateDraft(r.Context(), draftID, func(d *types.ListingDraft) error {
		if errs := apply(d); len(errs) > 0 {
			fieldErrs = errs
			return errs
		}
		return listing.CompleteStep(d, step)
	})
	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	if err != nil {
		msg := msgSaveFailed
		switch {
		case errors.Is(err, types.ErrPhotosRequired):
			msg = listing.MsgPhotosRequired
		case errors.Is(err, types.ErrStepIncomplete):
			msg = listing.MsgIncomplete
		}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"draft_id": draftID,
			"step":     step,
		}).Error("failed to complete wizard step")
		s.redirectWithError(w, r, stepPath(draftID, step), msg)
		return nil
	}

	http.Redirect(w, r, stepPath(draftID, updated.CurrentStep), http.StatusSeeOther)
	return nil
}

func (s *Service) handlePostWizardReview(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	result, err := s.submitter.Submit(r.Context(), draft)
	s.finishSubmission(w, r, draft, result, err)
}

// handlePostWizardRetryPhotos uploads the photos again for a listing that was
// created while its photo upload failed.
func (s *Service) handlePostWizardRetryPhotos(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	if draft.ListingID == "" {
		http.Redirect(w, r, stepPath(draft.ID, types.StepReview), http.StatusSeeOther)
		return
	}

	result, err := s.submitter.RetryPhotos(r.Context(), draft)
	s.finishSubmission(w, r, draft, result, err)
}

func (s *Service) finishSubmission(w http.ResponseWriter, r *http.Request, draft *types.ListingDraft, result *listing.SubmitResult, err error) {
	ctx := r.Context()
	logger := s.logger.WithField("draft_id", draft.ID)

	if result == nil || !result.Created || len(result.Rejected) > 0 {
		logger.WithError(err).Info("listing submission failed")

		data := s.wizardPageData(ctx, draft, types.StepReview)
		if result != nil {
			data.Error = result.Message
			data.Rejected = result.Rejected
		} else {
			data.Error = listing.MsgCreateFailed
		}
		s.renderWizard(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if !result.PhotosUploaded {
		// The listing exists; the draft and its staged photos stay for another
		// upload attempt against the same listing.
		_, saveErr := s.drafts.UpdateDraft(ctx, draft.ID, func(d *types.ListingDraft) error {
			d.ListingID = result.ListingID
			return nil
		})
		if saveErr != nil {
			logger.WithError(saveErr).WithField("listing_id", result.ListingID).Error("failed to record created listing on draft")
		}

		logger.WithError(err).WithField("listing_id", result.ListingID).Warn("listing created without photos")
		s.redirectWithError(w, r, stepPath(draft.ID, types.StepReview), result.Message)
		return
	}

	s.discardDraft(ctx, draft)

	logger.WithField("listing_id", result.ListingID).Info("listing submitted")

	v := url.Values{}
	v.Set("listing", result.ListingID)
	http.Redirect(w, r, stepPath(draft.ID, types.StepConfirmation)+"?"+v.Encode(), http.StatusSeeOther)
}

// discardDraft removes a draft and its staged photos. Missing photos are not
// an error.
func (s *Service) discardDraft(ctx context.Context, draft *types.ListingDraft) {
	for _, p := range draft.Photos {
		if err := s.photos.Delete(ctx, p.StorageKey); err != nil {
			s.logger.WithError(err).WithField("storage_key", p.StorageKey).Warn("failed to delete staged photo")
		}
	}
	if err := s.drafts.DeleteDraft(ctx, draft.ID); err != nil && !errors.Is(err, types.ErrDraftNotFound) {
		s.logger.WithError(err).WithField("draft_id", draft.ID).Error("failed to delete draft")
	}
}

// handleGetWizardConfirmation runs after the draft is gone, so it renders
// from the query alone.
func (s *Service) handleGetWizardConfirmation(w http.ResponseWriter, r *http.Request) {
	listingID := strings.TrimSpace(r.URL.Query().Get("listing"))
	if listingID == "" {
		http.Redirect(w, r, "/listings/new", http.StatusSeeOther)
		return
	}

	data := &types.WizardPageData{
		BasePageData: types.BasePageData{Title: listing.StepTitle(types.StepConfirmation)},
		Draft:        &types.ListingDraft{ID: r.PathValue("draftID")},
		Step:         types.StepConfirmation,
		ListingID:    listingID,
	}

	s.renderWizard(w, r, http.StatusOK, data)
}

func (s *Service) handlePostWizardDelete(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.loadDraft(w, r)
	if !ok {
		return
	}

	s.discardDraft(r.Context(), draft)
	s.redirectWithNotice(w, r, "/listings/new", "Taslak silindi.")
}

package server

import (
	"net/http"
	"strings"

	"ilanver/internal/listing"
	"ilanver/pkg/types"
)

func (s *Service) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := s.backend.Me(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load account")
		s.internalServerError(w)
		return
	}

	data := &types.AccountPageData{
		BasePageData: types.BasePageData{Title: "Hesabım"},
		User:         user,
		Form: types.UserUpdate{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Phone:     user.Phone,
		},
		FieldErrors: map[string]string{},
	}

	s.renderAccount(w, r, http.StatusOK, data)
}

func (s *Service) handlePostAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var update types.UserUpdate
	if err := decoder.Decode(&update, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode account form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.LastName = strings.TrimSpace(update.LastName)
	update.Phone = strings.ReplaceAll(strings.TrimSpace(update.Phone), " ", "")

	if errs := listing.ValidateStruct(update); len(errs) > 0 {
		user, err := s.backend.Me(ctx)
		if err != nil {
			s.logger.WithError(err).Error("failed to load account")
			s.internalServerError(w)
			return
		}

		data := &types.AccountPageData{
			BasePageData: types.BasePageData{Title: "Hesabım"},
			User:         user,
			Form:         update,
			FieldErrors:  errs,
		}
		s.renderAccount(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if _, err := s.backend.UpdateMe(ctx, update); err != nil {
		s.logger.WithError(err).Error("failed to update account")
		s.redirectWithError(w, r, "/account", "Bilgileriniz güncellenemedi.")
		return
	}

	s.redirectWithNotice(w, r, "/account", "Bilgileriniz güncellendi.")
}

// renderAccount adds the user's published listings and open drafts to data.
func (s *Service) renderAccount(w http.ResponseWriter, r *http.Request, status int, data *types.AccountPageData) {
	ctx := r.Context()

	listings, err := s.backend.MyListings(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("failed to load own listings")
		listings = []types.Listing{}
	}
	data.Listings = listings

	if userID, err := s.userIDFromContext(ctx); err == nil {
		drafts, err := s.drafts.DraftsByUser(ctx, userID)
		if err != nil {
			s.logger.WithError(err).Warn("failed to load drafts")
		}
		data.Drafts = drafts
	}

	if err := s.renderTemplateStatus(w, r, status, "page.account", data); err != nil {
		s.logger.WithError(err).Error("failed to render account page")
		s.internalServerError(w)
	}
}

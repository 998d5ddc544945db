package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"ilanver/pkg/types"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &types.HomePageData{
		BasePageData: types.BasePageData{Title: "Emlak İlanları"},
		Categories:   types.Categories,
		Recent:       s.backend.SearchListings(ctx, types.CategoryHousing.Endpoint(), url.Values{"limit": {"8"}}),
	}

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
	}
}

func (s *Service) handleListingDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listingID := strings.TrimSpace(r.PathValue("id"))

	listing, err := s.backend.Listing(ctx, listingID)
	if err != nil {
		if errors.Is(err, types.ErrListingNotFound) {
			s.notFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("listing_id", listingID).Error("failed to load listing")
		s.internalServerError(w)
		return
	}

	data := &types.ListingDetailPageData{
		BasePageData: types.BasePageData{Title: listing.Title},
		Listing:      listing,
		Schema:       types.SchemaFor(listing.Category),
	}

	if err := s.renderTemplate(w, r, "page.listing", data); err != nil {
		s.logger.WithError(err).Error("failed to render listing page")
		s.internalServerError(w)
	}
}

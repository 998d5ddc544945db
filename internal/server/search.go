package server

import (
	"errors"
	"net/http"
	"strings"

	"ilanver/internal/search"
	"ilanver/pkg/types"
)

// searchDetailsForm is the category part of the search form:
// values[netAreaMin], lists[rooms] (repeated) and features[pool].
type searchDetailsForm struct {
	Values   map[string]string   `form:"values"`
	Lists    map[string][]string `form:"lists"`
	Features map[string]bool     `form:"features"`
}

func (s *Service) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category := types.ClassifyCategory(r.URL.Query().Get("category"))

	data := &types.SearchPageData{
		BasePageData: types.BasePageData{Title: "İlan Ara"},
		Categories:   types.Categories,
		Category:     category,
		Schema:       types.SchemaFor(category),
		Filters:      types.SearchFilters{Category: category.Alias()},
		Provinces:    s.backend.Provinces(ctx),
		Endpoint:     category.Endpoint(),
	}

	if err := s.renderTemplate(w, r, "page.search", data); err != nil {
		s.logger.WithError(err).Error("failed to render search page")
		s.internalServerError(w)
	}
}

// handlePostSearch serializes the form and redirects to the results URL, so
// every search is a shareable history entry.
func (s *Service) handlePostSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse search form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var filters types.SearchFilters
	if err := decoder.Decode(&filters, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode search filters")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var form searchDetailsForm
	if err := decoder.Decode(&form, r.Form); err != nil {
		s.logger.WithError(err).Error("failed to decode search details")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	selected := strings.TrimSpace(r.Form.Get("category"))
	category := types.ClassifyCategory(firstNonEmpty(selected, filters.Category, filters.Subtype))

	details := types.CategoryDetails{
		category: {
			Category: category,
			Subtype:  filters.Subtype,
			Values:   form.Values,
			Lists:    form.Lists,
			Features: form.Features,
		},
	}

	query := search.Build(filters, details, selected)
	http.Redirect(w, r, query.Path(), http.StatusSeeOther)
}

func (s *Service) handleSearchResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	endpoint := r.PathValue("endpoint")

	filters, details, err := search.Parse(endpoint, r.URL.Query())
	if err != nil {
		if errors.Is(err, types.ErrUnknownCategory) {
			s.notFound(w, r)
			return
		}
		s.logger.WithError(err).Error("failed to parse search query")
		s.internalServerError(w)
		return
	}

	// Rebuilding drops anything the category does not know about.
	query := search.Build(filters, details, "")

	data := &types.SearchPageData{
		BasePageData: types.BasePageData{Title: query.Category.Label() + " İlanları"},
		Categories:   types.Categories,
		Category:     query.Category,
		Schema:       types.SchemaFor(query.Category),
		Filters:      filters,
		Details:      details.For(query.Category),
		Provinces:    s.backend.Provinces(ctx),
		Endpoint:     query.Endpoint,
		Results:      s.backend.SearchListings(ctx, query.Endpoint, query.Params),
		Searched:     true,
	}

	if err := s.renderTemplate(w, r, "page.search", data); err != nil {
		s.logger.WithError(err).Error("failed to render search results")
		s.internalServerError(w)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

package server

import (
	"context"
	"net/http"
	"strings"

	"ilanver/pkg/types"
)

// The location endpoints proxy the backend lookups for the cascading pickers.
// They always answer with a JSON array; a failed lookup is an empty one.

func (s *Service) handleLocationProvinces(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.backend.Provinces(r.Context()))
}

func (s *Service) handleLocationDistricts(w http.ResponseWriter, r *http.Request) {
	s.writeLocations(w, r, s.backend.Districts)
}

func (s *Service) handleLocationSubdistricts(w http.ResponseWriter, r *http.Request) {
	s.writeLocations(w, r, s.backend.Subdistricts)
}

func (s *Service) handleLocationNeighborhoods(w http.ResponseWriter, r *http.Request) {
	s.writeLocations(w, r, s.backend.Neighborhoods)
}

func (s *Service) writeLocations(w http.ResponseWriter, r *http.Request, lookup func(ctx context.Context, parentID string) []types.Location) {
	parentID := strings.TrimSpace(r.PathValue("id"))
	if parentID == "" {
		s.writeJSON(w, http.StatusOK, []types.Location{})
		return
	}
	s.writeJSON(w, http.StatusOK, lookup(r.Context(), parentID))
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"ilanver/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	return s.renderTemplateStatus(w, r, http.StatusOK, templateName, data)
}

// renderTemplateStatus renders into a buffer first so a failing template
// never leaves a half-written page behind.
func (s *Service) renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) error {
	userID, _ := r.Context().Value(contextKeyUserID).(string)
	userEmail, _ := r.Context().Value(contextKeyEmail).(string)

	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(types.NavbarData{
			IsAuthenticated: userID != "",
			UserID:          userID,
			UserEmail:       userEmail,
		})
	}

	if setter, ok := data.(types.FlashSetter); ok {
		flash := s.takeFlash(w, r)
		setter.SetFlash(flash.Notice, flash.Error)
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to write json response")
	}
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (s *Service) notFound(w http.ResponseWriter, r *http.Request) {
	data := &types.BasePageData{Title: "Sayfa Bulunamadı"}
	if err := s.renderTemplateStatus(w, r, http.StatusNotFound, "page.notfound", data); err != nil {
		s.logger.WithError(err).Error("failed to render not found page")
		http.NotFound(w, r)
	}
}

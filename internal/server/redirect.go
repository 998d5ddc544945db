package server

import (
	"net/http"

	"ilanver/internal"
)

// flashData is the one-shot banner shown on the page a redirect lands on.
// It travels in a signed cookie so links cannot put text in the banner.
type flashData struct {
	Notice string
	Error  string
}

func (s *Service) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	s.setFlash(w, flashData{Notice: notice})
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, path, message string) {
	s.setFlash(w, flashData{Error: message})
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (s *Service) setFlash(w http.ResponseWriter, flash flashData) {
	encoded, err := s.cookie.Encode(internal.COOKIE_FLASH_NAME, flash)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode flash")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_FLASH_NAME,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// takeFlash returns the pending flash and clears its cookie. A missing or
// tampered cookie yields an empty flash.
func (s *Service) takeFlash(w http.ResponseWriter, r *http.Request) flashData {
	cookie, err := r.Cookie(internal.COOKIE_FLASH_NAME)
	if err != nil {
		return flashData{}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_FLASH_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	var flash flashData
	if err := s.cookie.Decode(internal.COOKIE_FLASH_NAME, cookie.Value, &flash); err != nil {
		s.logger.WithError(err).Debug("discarding invalid flash cookie")
		return flashData{}
	}
	return flash
}

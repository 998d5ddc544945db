package server

import (
	"fmt"
	"net/http"
)

type sessionData struct {
	AccessToken string
	Email       string
}

func (s *Service) setSession(w http.ResponseWriter, data sessionData, maxAge int) error {
	encoded, err := s.cookie.Encode(s.config.CookieName, data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if s.config.SessionMaxAgeSec > 0 && (maxAge <= 0 || maxAge > s.config.SessionMaxAgeSec) {
		maxAge = s.config.SessionMaxAgeSec
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
		Path:     "/",
	})
	return nil
}

func (s *Service) readSession(r *http.Request) (*sessionData, error) {
	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil {
		return nil, err
	}

	var data sessionData
	if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if data.AccessToken == "" {
		return nil, fmt.Errorf("session has no access token")
	}

	return &data, nil
}

func (s *Service) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

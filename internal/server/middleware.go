package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ilanver/internal/backend"
	"ilanver/internal/utils"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyUserID    contextKey = "user_id"
	contextKeyEmail     contextKey = "email"
	contextKeyRequestID contextKey = "request_id"
)

const requestIDHeader = "X-Request-ID"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		requestID, _ := r.Context().Value(contextKeyRequestID).(string)
		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
			"request_id":  requestID,
		}).Info("http request")
	})
}

// RequestID reuses an incoming X-Request-ID or mints one, and forwards it to
// the backend.
func (s *Service) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > 64 {
			id = utils.NanoIDSize(16)
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		ctx = backend.WithRequestID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate resolves the session cookie into a context carrying the
// user and the bearer token for the backend.
func (s *Service) authenticate(r *http.Request) (context.Context, error) {
	session, err := s.readSession(r)
	if err != nil {
		return nil, err
	}

	identity, err := s.verifier.Verify(r.Context(), session.AccessToken)
	if err != nil {
		return nil, err
	}

	email := identity.Email
	if email == "" {
		email = session.Email
	}

	ctx := r.Context()
	ctx = context.WithValue(ctx, contextKeyUserID, identity.UserID)
	if email != "" {
		ctx = context.WithValue(ctx, contextKeyEmail, email)
	}
	ctx = backend.WithToken(ctx, session.AccessToken)

	s.logger.WithFields(logrus.Fields{
		"user_id": identity.UserID,
		"email":   email,
	}).Debug("authenticated user")

	return ctx, nil
}

// RequireAuth middleware checks for valid access token and adds user to context
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := s.authenticate(r)
		if err != nil {
			s.logger.WithError(err).Debug("request is not authenticated")

			s.clearSession(w)
			if r.Method == http.MethodGet {
				s.setRedirectCookie(w, r.URL.RequestURI(), time.Minute*5)
			}

			s.redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth adds the user to the context when a valid session exists so
// public pages can show the signed-in navbar.
func (s *Service) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctx, err := s.authenticate(r); err == nil {
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

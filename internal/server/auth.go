package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ilanver/internal"
	"ilanver/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userIDFromContext(r.Context()); err == nil {
		s.logger.Info("user is already logged in, redirecting to home")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{Title: "Giriş Yap"},
	}

	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{Title: "Giriş Yap"},
		Email:        email,
	}

	if email == "" || password == "" {
		data.Error = "E-posta ve şifre zorunludur."
		s.renderLoginError(w, r, data)
		return
	}

	resp, err := s.cognitoClient.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: ctypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.config.CognitoClientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		s.logger.WithError(err).Info("login failed")
		data.Error = loginErrorMessage(err)
		s.renderLoginError(w, r, data)
		return
	}

	if resp.AuthenticationResult == nil || resp.AuthenticationResult.AccessToken == nil {
		data.Error = "Giriş yapılamadı. Lütfen tekrar deneyin."
		s.renderLoginError(w, r, data)
		return
	}

	session := sessionData{
		AccessToken: aws.ToString(resp.AuthenticationResult.AccessToken),
		Email:       email,
	}
	if err := s.setSession(w, session, int(resp.AuthenticationResult.ExpiresIn)); err != nil {
		s.logger.WithError(err).Error("failed to set session cookie")
		s.internalServerError(w)
		return
	}

	// Check to see if this login attempt was the result of an unauthed redirect
	if redirectCookie, err := r.Cookie(internal.COOKIE_REDIRECT_NAME); err == nil && safeRedirect(redirectCookie.Value) {
		s.clearRedirectCookie(w)
		http.Redirect(w, r, redirectCookie.Value, http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Service) renderLoginError(w http.ResponseWriter, r *http.Request, data *types.LoginPageData) {
	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page with errors")
		s.internalServerError(w)
	}
}

func loginErrorMessage(err error) string {
	var notAuthorized *ctypes.NotAuthorizedException
	var notConfirmed *ctypes.UserNotConfirmedException
	var notFound *ctypes.UserNotFoundException

	switch {
	case errors.As(err, &notAuthorized), errors.As(err, &notFound):
		return "E-posta veya şifre hatalı."
	case errors.As(err, &notConfirmed):
		return "Hesabınız henüz doğrulanmadı."
	}
	return "Giriş yapılamadı. Lütfen tekrar deneyin."
}

// safeRedirect only allows local paths. Browsers read "/\host" like
// "//host", so a backslash after the leading slash is refused as well.
func safeRedirect(path string) bool {
	if len(path) == 0 || path[0] != '/' {
		return false
	}
	if len(path) > 1 && (path[1] == '/' || path[1] == '\\') {
		return false
	}
	return !strings.ContainsAny(path, "\r\n")
}

func (s *Service) setRedirectCookie(w http.ResponseWriter, path string, age time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_REDIRECT_NAME,
		Value:    path,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
	})
}

func (s *Service) clearRedirectCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_REDIRECT_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"ilanver/internal/listing"
	"ilanver/internal/store"
	"ilanver/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template

	cookie        *securecookie.SecureCookie
	cognitoClient CognitoAPI
	verifier      TokenVerifier

	backend   Backend
	drafts    *store.DraftRepository
	photos    PhotoStager
	submitter *listing.Submitter

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	cognitoClient CognitoAPI,
	verifier TokenVerifier,
	backend Backend,
	drafts *store.DraftRepository,
	photos PhotoStager,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cookie hash key: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cookie block key: %w", err)
	}
	if len(blockKey) == 0 {
		blockKey = nil
	}

	s := &Service{
		logger:        logger,
		config:        config,
		cookie:        securecookie.New(hashKey, blockKey),
		cognitoClient: cognitoClient,
		verifier:      verifier,

		backend:   backend,
		drafts:    drafts,
		photos:    photos,
		submitter: listing.NewSubmitter(logger, backend, photos, config.PhotoSubmitMaxBytes),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}
	s.cookie.MaxAge(config.SessionMaxAgeSec)

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.RequestID)
	r.Use(s.LoggingMiddleware)

	r.Group(func(r *flow.Mux) {
		r.Use(s.OptionalAuth)

		r.HandleFunc("/", s.handleHome, http.MethodGet)

		r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
		r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
		r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

		r.HandleFunc("/search", s.handleGetSearch, http.MethodGet)
		r.HandleFunc("/search", s.handlePostSearch, http.MethodPost)
		r.HandleFunc("/search/:endpoint", s.handleSearchResults, http.MethodGet)
		r.HandleFunc("/listing/:id", s.handleListingDetail, http.MethodGet)

		r.HandleFunc("/api/location/provinces", s.handleLocationProvinces, http.MethodGet)
		r.HandleFunc("/api/location/:id/districts", s.handleLocationDistricts, http.MethodGet)
		r.HandleFunc("/api/location/:id/subdistricts", s.handleLocationSubdistricts, http.MethodGet)
		r.HandleFunc("/api/location/:id/neighborhoods", s.handleLocationNeighborhoods, http.MethodGet)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/listings/new", s.handleGetWizardIndex, http.MethodGet)
		r.HandleFunc("/listings/new", s.handlePostWizardIndex, http.MethodPost)

		for _, step := range []types.WizardStep{
			types.StepType,
			types.StepDetails,
			types.StepLocation,
			types.StepInfo,
			types.StepPhotos,
			types.StepReview,
		} {
			r.HandleFunc("/listings/new/:draftID/"+string(step), s.handleGetWizardStep(step), http.MethodGet)
		}

		r.HandleFunc("/listings/new/:draftID/type", s.handlePostWizardType, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/details", s.handlePostWizardDetails, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/location", s.handlePostWizardLocation, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/info", s.handlePostWizardInfo, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/photos", s.handlePostWizardPhotos, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/photos/:photoID/delete", s.handlePostPhotoDelete, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/photos/:photoID/main", s.handlePostPhotoMain, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/photos/:photoID/up", s.handlePostPhotoUp, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/photos/:photoID/down", s.handlePostPhotoDown, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/review", s.handlePostWizardReview, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/retry", s.handlePostWizardRetryPhotos, http.MethodPost)
		r.HandleFunc("/listings/new/:draftID/confirmation", s.handleGetWizardConfirmation, http.MethodGet)
		r.HandleFunc("/listings/new/:draftID/delete", s.handlePostWizardDelete, http.MethodPost)

		r.HandleFunc("/messages", s.handleGetMessages, http.MethodGet)
		r.HandleFunc("/messages/:conversationID", s.handleGetConversation, http.MethodGet)
		r.HandleFunc("/messages/:conversationID", s.handlePostConversation, http.MethodPost)

		r.HandleFunc("/account", s.handleGetAccount, http.MethodGet)
		r.HandleFunc("/account", s.handlePostAccount, http.MethodPost)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)

	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.notFound(w, r)
	})
}

var pricePrinter = message.NewPrinter(language.Turkish)

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"categoryLabel": func(c types.Category) string {
			return c.Label()
		},
		"intentLabel": func(i types.ListingIntent) string {
			return i.Label()
		},
		"humanize":   types.HumanizeCode,
		"fieldLabel": types.FieldLabel,
		"schemaFor":  types.SchemaFor,
		"stepTitle":  listing.StepTitle,
		"stepPath":   stepPath,
		"formatPrice": func(price int64) string {
			return pricePrinter.Sprintf("%d", price)
		},
		"detailValue": func(v any) string {
			switch t := v.(type) {
			case bool:
				if t {
					return "Var"
				}
				return "Yok"
			case string:
				return types.HumanizeCode(t)
			case float64:
				return pricePrinter.Sprintf("%v", t)
			}
			return fmt.Sprint(v)
		},
		"contains": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
		"add": func(a, b int) int {
			return a + b
		},
		"megabytes": func(b int64) int64 {
			return b / (1024 * 1024)
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func stepPath(draftID string, step types.WizardStep) string {
	return fmt.Sprintf("/listings/new/%s/%s", draftID, step)
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}

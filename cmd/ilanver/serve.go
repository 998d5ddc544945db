package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ilanver/internal/backend"
	"ilanver/internal/server"
	"ilanver/internal/storage"
	"ilanver/internal/store"
	"ilanver/internal/utils"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig(cCtx.String("env-file"))
	if err != nil {
		return err
	}

	if config.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	cognitoClient := cognitoidentityprovider.NewFromConfig(awsConfig)
	s3Client := s3.NewFromConfig(awsConfig)

	photos := storage.NewPhotoStorage(
		s3Client,
		s3.NewPresignClient(s3Client),
		config.PhotoBucket,
		time.Duration(config.PhotoPreviewTTLSec)*time.Second,
	)

	api := backend.New(logger, config.BackendBaseURL, time.Duration(config.BackendTimeoutSec)*time.Second)
	drafts := store.NewDraftRepository()

	jwkCache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := fmt.Sprintf("%s/.well-known/jwks.json", config.CognitoIssuerURL)

	err = jwkCache.Register(ctx, jwksURL)
	if err != nil {
		return fmt.Errorf("failed to register cognito jwks with cache: %w", err)
	}

	srv, err := server.New(
		config,
		logger,
		cognitoClient,
		server.NewJWKSVerifier(jwkCache, jwksURL),
		api,
		drafts,
		photos,
	)
	if err != nil {
		return err
	}

	go pruneDrafts(ctx, logger, drafts, photos, time.Duration(config.DraftTTLHours)*time.Hour)

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return utils.ErrorWrapOrNil(srv.Stop(shutdownCtx), "failed to stop server")
}

// pruneDrafts drops abandoned drafts and their staged photos until ctx is done.
func pruneDrafts(ctx context.Context, logger *logrus.Logger, drafts *store.DraftRepository, photos *storage.PhotoStorage, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			pruned := drafts.PruneBefore(ctx, now.Add(-ttl))
			for _, d := range pruned {
				for _, p := range d.Photos {
					if err := photos.Delete(ctx, p.StorageKey); err != nil {
						logger.WithError(err).WithField("storage_key", p.StorageKey).Warn("failed to delete photo of pruned draft")
					}
				}
			}
			if len(pruned) > 0 {
				logger.WithField("count", len(pruned)).Info("pruned abandoned drafts")
			}
		}
	}
}

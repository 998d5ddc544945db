package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"ilanver/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func loadConfig(envFile string) (*types.Config, error) {
	if envFile != "" {
		// A missing file is fine, deployments set the environment directly.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.BackendBaseURL == "" {
		return nil, fmt.Errorf("set BACKEND_BASE_URL")
	}

	if c.PhotoBucket == "" {
		return nil, fmt.Errorf("set PHOTO_BUCKET")
	}

	if c.CognitoClientID == "" || c.CognitoIssuerURL == "" {
		return nil, fmt.Errorf("set COGNITO_CLIENT_ID and COGNITO_ISSUER_URL")
	}

	if c.CookieHashKey == "" {
		return nil, fmt.Errorf("set COOKIE_HASH_KEY")
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 30
	}

	if c.MaxPhotos <= 0 {
		c.MaxPhotos = 20
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

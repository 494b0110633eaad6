package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/anonto42/nano-midea/feed/pkg/config"
	"github.com/anonto42/nano-midea/feed/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsConfigurationErrors(t *testing.T) {
	err := run(&config.Config{AuthProvider: config.AuthJWT, MediaProvider: config.MediaCloudinary}, slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "MONGO_URI")
}

func TestNewMediaStore(t *testing.T) {
	store, err := newMediaStore(context.Background(), &config.Config{
		MediaProvider:       config.MediaCloudinary,
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
	})
	require.NoError(t, err)
	assert.IsType(t, &media.CloudinaryStore{}, store)

	store, err = newMediaStore(context.Background(), &config.Config{
		MediaProvider:      config.MediaS3,
		AWSBucketName:      "feed-images",
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "AKIDEXAMPLE",
		AWSSecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.IsType(t, &media.S3Store{}, store)
}

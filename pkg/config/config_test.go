package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "MONGO_URI", "MONGO_DATABASE", "MONGO_TRANSACTIONS",
		"NOTIFICATION_STORE", "POSTGRES_URL", "AUTH_PROVIDER", "JWT_SECRET",
		"FIREBASE_CREDENTIALS_PATH", "MEDIA_PROVIDER", "CLOUDINARY_URL",
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"AWS_BUCKET_NAME", "AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"S3_PUBLIC_BASE_URL", "S3_FOLDER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "socialmedia", cfg.MongoDatabase)
	assert.False(t, cfg.MongoTransactions)
	assert.Equal(t, NotificationsMongo, cfg.NotificationStore)
	assert.Equal(t, AuthJWT, cfg.AuthProvider)
	assert.Equal(t, MediaCloudinary, cfg.MediaProvider)
	assert.Equal(t, "posts", cfg.S3Folder)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "5000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("NOTIFICATION_STORE", "Postgres")
	t.Setenv("POSTGRES_URL", "postgres://localhost/feed")
	t.Setenv("AUTH_PROVIDER", "firebase")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json")
	t.Setenv("MEDIA_PROVIDER", "s3")
	t.Setenv("AWS_BUCKET_NAME", "feed-images")

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, NotificationsPostgres, cfg.NotificationStore)
	assert.Equal(t, AuthFirebase, cfg.AuthProvider)
	assert.Equal(t, MediaS3, cfg.MediaProvider)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	err := Load().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "CLOUDINARY_URL")

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	assert.NoError(t, Load().Validate())

	t.Setenv("MEDIA_PROVIDER", "ftp")
	assert.ErrorContains(t, Load().Validate(), "MEDIA_PROVIDER")

	t.Setenv("MEDIA_PROVIDER", "cloudinary")
	t.Setenv("NOTIFICATION_STORE", "postgres")
	assert.ErrorContains(t, Load().Validate(), "POSTGRES_URL")
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AuthJWT      = "jwt"
	AuthFirebase = "firebase"

	MediaCloudinary = "cloudinary"
	MediaS3         = "s3"

	NotificationsMongo    = "mongo"
	NotificationsPostgres = "postgres"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool

	NotificationStore string
	PostgresUrl       string

	AuthProvider            string
	JWTSecret               string
	FirebaseCredentialsPath string

	MediaProvider       string
	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	AWSBucketName      string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3PublicBaseURL    string
	S3Folder           string
}

// Load reads configuration from the environment, after loading a .env file
// if one exists
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MongoURI:          getEnv("MONGO_URI", ""),
		MongoDatabase:     getEnv("MONGO_DATABASE", "socialmedia"),
		MongoTransactions: getEnvBool("MONGO_TRANSACTIONS", false),

		NotificationStore: strings.ToLower(getEnv("NOTIFICATION_STORE", NotificationsMongo)),
		PostgresUrl:       getEnv("POSTGRES_URL", ""),

		AuthProvider:            strings.ToLower(getEnv("AUTH_PROVIDER", AuthJWT)),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),

		MediaProvider:       strings.ToLower(getEnv("MEDIA_PROVIDER", MediaCloudinary)),
		CloudinaryURL:       getEnv("CLOUDINARY_URL", ""),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		AWSBucketName:      getEnv("AWS_BUCKET_NAME", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3PublicBaseURL:    getEnv("S3_PUBLIC_BASE_URL", ""),
		S3Folder:           getEnv("S3_FOLDER", "posts"),
	}
}

// Validate reports missing or inconsistent settings for the selected
// providers
func (c *Config) Validate() error {
	var errs []error
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI environment variable not set"))
	}

	switch c.AuthProvider {
	case AuthJWT:
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET environment variable not set"))
		}
	case AuthFirebase:
		if c.FirebaseCredentialsPath == "" {
			errs = append(errs, errors.New("FIREBASE_CREDENTIALS_PATH environment variable not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider))
	}

	switch c.MediaProvider {
	case MediaCloudinary:
		if c.CloudinaryURL == "" && (c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "") {
			errs = append(errs, errors.New("CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME/CLOUDINARY_API_KEY/CLOUDINARY_API_SECRET must be set"))
		}
	case MediaS3:
		if c.AWSBucketName == "" {
			errs = append(errs, errors.New("AWS_BUCKET_NAME environment variable not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MEDIA_PROVIDER %q", c.MediaProvider))
	}

	switch c.NotificationStore {
	case NotificationsMongo:
	case NotificationsPostgres:
		if c.PostgresUrl == "" {
			errs = append(errs, errors.New("POSTGRES_URL environment variable not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFICATION_STORE %q", c.NotificationStore))
	}

	return errors.Join(errs...)
}

// SlogLevel maps LOG_LEVEL to a slog.Level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

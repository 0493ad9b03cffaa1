package initializers

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const devSecret = "dev-only-secret-change-me"

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port    string
	AppEnv  string
	DataDir string

	UploadsDir  string
	DataBackend string
	DatabaseURL string

	JWTSecret string

	FirebaseCredentialsPath string
	FirebaseStorageBucket   string
	FirebasePushEnabled     bool

	ResendAPIKey string
	EmailFrom    string
	NotifyEmail  string

	AdminUsername string
	AdminEmail    string
	AdminPassword string
	AdminName     string

	CorsOrigins []string
	LogLevel    string
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadEnv reads a .env file when present. Real environment variables win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not parse .env file")
	}
}

func LoadConfig() Config {
	cfg := Config{
		Port:                    envOr("PORT", "8080"),
		AppEnv:                  envOr("APP_ENV", "development"),
		DataDir:                 envOr("DATA_DIR", "data"),
		UploadsDir:              envOr("UPLOADS_DIR", "uploads"),
		DataBackend:             strings.ToLower(envOr("DATA_BACKEND", "file")),
		DatabaseURL:             envOr("DB_URL", ""),
		JWTSecret:               envOr("JWT_SECRET", ""),
		FirebaseCredentialsPath: envOr("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		FirebaseStorageBucket:   envOr("FIREBASE_STORAGE_BUCKET", ""),
		FirebasePushEnabled:     envOrBool("FIREBASE_PUSH_ENABLED", false),
		ResendAPIKey:            envOr("RESEND_API_KEY", ""),
		EmailFrom:               envOr("EMAIL_FROM", "Church Website <noreply@example.org>"),
		NotifyEmail:             envOr("NOTIFY_EMAIL", ""),
		AdminUsername:           envOr("ADMIN_USERNAME", "admin"),
		AdminEmail:              envOr("ADMIN_EMAIL", "admin@example.org"),
		AdminPassword:           envOr("ADMIN_PASSWORD", "admin123"),
		AdminName:               envOr("ADMIN_NAME", "Administrator"),
		CorsOrigins:             parseCSV(envOr("CORS_ORIGINS", "")),
		LogLevel:                envOr("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			log.Fatal().Msg("JWT_SECRET must be set in production")
		}
		log.Warn().Msg("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = devSecret
	}

	return cfg
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}

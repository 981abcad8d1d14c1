package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTTTL      = "24h"
	defaultJWTSecret   = "change-me-jwt-secret"
	defaultGatewayURL  = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	defaultCallbackURL = "http://localhost:8080"
)

// Config is the process-wide runtime configuration, loaded from the
// environment once at startup.
type Config struct {
	AppEnv      string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	GatewayStoreID  string
	GatewayPassword string
	GatewayBaseURL  string
	CallbackBaseURL string

	MailjetAPIKey    string
	MailjetSecretKey string
	MailFromEmail    string
	MailFromName     string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	RedisAddr string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "rentnest.db"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.GatewayStoreID = strings.TrimSpace(os.Getenv("GATEWAY_STORE_ID"))
	cfg.GatewayPassword = strings.TrimSpace(os.Getenv("GATEWAY_STORE_PASSWORD"))
	cfg.GatewayBaseURL = strings.TrimSpace(getEnv("GATEWAY_BASE_URL", defaultGatewayURL))
	cfg.CallbackBaseURL = strings.TrimSpace(getEnv("PAYMENT_CALLBACK_BASE_URL", defaultCallbackURL))

	cfg.MailjetAPIKey = strings.TrimSpace(os.Getenv("MAILJET_API_KEY"))
	cfg.MailjetSecretKey = strings.TrimSpace(os.Getenv("MAILJET_SECRET_KEY"))
	cfg.MailFromEmail = strings.TrimSpace(getEnv("MAIL_FROM_EMAIL", "noreply@rentnest.local"))
	cfg.MailFromName = strings.TrimSpace(getEnv("MAIL_FROM_NAME", "RentNest"))

	cfg.CloudinaryCloudName = strings.TrimSpace(os.Getenv("CLOUDINARY_CLOUD_NAME"))
	cfg.CloudinaryAPIKey = strings.TrimSpace(os.Getenv("CLOUDINARY_API_KEY"))
	cfg.CloudinaryAPISecret = strings.TrimSpace(os.Getenv("CLOUDINARY_API_SECRET"))
	cfg.CloudinaryFolder = strings.TrimSpace(getEnv("CLOUDINARY_FOLDER", "receipts"))

	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s db=%s gateway=%s redis=%q", cfg.AppEnv, redactDSN(cfg.DatabaseURL), cfg.GatewayBaseURL, cfg.RedisAddr)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.GatewayStoreID == "" || cfg.GatewayPassword == "" {
			return fmt.Errorf("in prod/release gateway credentials must be configured")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "@"); i >= 0 {
		return "postgres://***" + dsn[i:]
	}
	return dsn
}

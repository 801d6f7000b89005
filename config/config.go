package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting the server needs. It is built once in
// main and passed down explicitly; no package reads the environment on its
// own after Load returns.
type Config struct {
	Env  string
	Port string

	SSL      bool
	CertFile string
	KeyFile  string

	MongoURI string
	MongoDB  string

	RedisAddr string
	RedisPass string
	RedisDB   int

	AccessSecret    string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Emails allowed to register with the admin role.
	AdminEmails []string

	DefaultLimit  int
	DefaultOffset int

	RateLimit  int
	RateWindow time.Duration

	DocsURL string
}

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 72 * time.Hour
	defaultRateLimit  = 60
	defaultRateWindow = time.Minute
)

// Load builds a Config from the environment. Token secrets and the Mongo URI
// have no sane defaults, so missing values are an error.
func Load() (Config, error) {
	cfg := Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		SSL:      os.Getenv("SSL") == "TRUE",
		CertFile: os.Getenv("SSL_CERT_FILE"),
		KeyFile:  os.Getenv("SSL_KEY_FILE"),

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "blog-api"),

		RedisAddr: getEnv("REDIS_HOST", "localhost:6379"),
		RedisPass: os.Getenv("REDIS_PASS"),

		AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),

		DocsURL: os.Getenv("DOCS_URL"),
	}

	if cfg.MongoURI == "" {
		return cfg, fmt.Errorf("MONGO_URI is not set")
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return cfg, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return cfg, fmt.Errorf("access and refresh secrets must differ")
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return cfg, err
	}
	if cfg.AccessTokenTTL, err = durationEnv("ACCESS_TOKEN_EXPIRY", defaultAccessTTL); err != nil {
		return cfg, err
	}
	if cfg.RefreshTokenTTL, err = durationEnv("REFRESH_TOKEN_EXPIRY", defaultRefreshTTL); err != nil {
		return cfg, err
	}
	if cfg.DefaultLimit, err = intEnv("DEFAULT_RES_LIMIT", 20); err != nil {
		return cfg, err
	}
	if cfg.DefaultOffset, err = intEnv("DEFAULT_RES_OFFSET", 0); err != nil {
		return cfg, err
	}
	if cfg.RateLimit, err = intEnv("RATE_LIMIT", defaultRateLimit); err != nil {
		return cfg, err
	}
	if cfg.RateWindow, err = durationEnv("RATE_WINDOW", defaultRateWindow); err != nil {
		return cfg, err
	}

	for _, mail := range strings.Split(os.Getenv("WHITELIST_ADMIN_MAILS"), ",") {
		mail = strings.ToLower(strings.TrimSpace(mail))
		if mail != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, mail)
		}
	}

	return cfg, nil
}

// Production reports whether the server runs in production mode, which
// switches gin to release mode, JSON logging and secure cookies.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// AdminAllowed reports whether an email may register with the admin role.
func (c Config) AdminAllowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, mail := range c.AdminEmails {
		if mail == email {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

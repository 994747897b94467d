package app

import (
	"time"

	"todo/cmd/internal/content"
	"todo/cmd/security/token"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	LogLevel string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodyBytes      int

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// SecretKey signs access tokens. Required, >= 32 bytes.
	SecretKey   string
	TokenIssuer string
	AccessTTL   time.Duration

	QuoteURL          string
	ImageURL          string
	UnsplashAccessKey string
	UpstreamTimeout   time.Duration

	// If true:
	// - /readyz returns 503 unless DB is configured and reachable.
	ReadinessRequireDB bool
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr: EnvString("TODO_HTTP_ADDR", "0.0.0.0:3001"),
		LogLevel: EnvString("TODO_LOG_LEVEL", "info"),

		ReadHeaderTimeout: EnvDuration("TODO_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("TODO_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("TODO_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("TODO_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("TODO_HTTP_MAX_HEADER_BYTES", 1<<20),
		MaxBodyBytes:   EnvInt("TODO_HTTP_MAX_BODY_BYTES", 1<<20),

		DatabaseURL: EnvString("TODO_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("TODO_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("TODO_DB_MIN_CONNS", 0),

		SecretKey:   EnvString("TODO_SECRET_KEY", ""),
		TokenIssuer: EnvString("TODO_TOKEN_ISSUER", "todo"),
		AccessTTL:   EnvDuration("TODO_ACCESS_TOKEN_TTL", token.DefaultAccessTTL),

		QuoteURL:          EnvString("TODO_QUOTE_API_URL", content.DefaultQuoteURL),
		ImageURL:          EnvString("TODO_IMAGE_API_URL", content.DefaultImageURL),
		UnsplashAccessKey: EnvString("TODO_UNSPLASH_ACCESS_KEY", ""),
		UpstreamTimeout:   EnvDuration("TODO_UPSTREAM_TIMEOUT", 10*time.Second),

		ReadinessRequireDB: EnvBool("TODO_READINESS_REQUIRE_DB", false),
	}
}

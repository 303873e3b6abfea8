package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/yeremiapane/foodiego/utils"
)

// Config is the process configuration, read from the environment after an
// optional .env file has been loaded.
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	GinMode  string `envconfig:"GIN_MODE" default:"debug"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"foodiego.db"`

	JWTSecret      string `envconfig:"JWT_SECRET"`
	JWTExpireHours int    `envconfig:"JWT_EXPIRE_HOURS" default:"24"`

	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`
	StripeCurrency  string `envconfig:"STRIPE_CURRENCY" default:"usd"`

	UploadDir    string        `envconfig:"UPLOAD_DIR" default:"public/uploads"`
	CORSOrigin   string        `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
	PageCacheTTL time.Duration `envconfig:"PAGE_CACHE_TTL" default:"5m"`

	RabbitURL     string `envconfig:"RABBIT_URL"`
	OrderExchange string `envconfig:"ORDER_EXCHANGE" default:"orders.exchange"`

	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"foodiego"`
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf(".env file not loaded: %v", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	return cfg, nil
}

// StripeConfigured reports whether a usable Stripe secret key is set.
// Placeholder keys from the sample .env count as unconfigured.
func (c Config) StripeConfigured() bool {
	key := c.StripeSecretKey
	return key != "" &&
		!strings.Contains(key, "your_stripe") &&
		!strings.Contains(key, "demo")
}

// TokenTTL returns the lifetime of issued session tokens.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpireHours) * time.Hour
}

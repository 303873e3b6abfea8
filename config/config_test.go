package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "DB_DRIVER", "PAGE_CACHE_TTL", "JWT_EXPIRE_HOURS", "STRIPE_CURRENCY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "usd", cfg.StripeCurrency)
	assert.Equal(t, 5*time.Minute, cfg.PageCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	t.Setenv("PAGE_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 30*time.Second, cfg.PageCacheTTL)
}

func TestStripeConfigured(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"empty", "", false},
		{"placeholder", "sk_test_your_stripe_key", false},
		{"demo", "sk_test_demo_key", false},
		{"real", "sk_test_51Habc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{StripeSecretKey: tt.key}
			assert.Equal(t, tt.want, cfg.StripeConfigured())
		})
	}
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

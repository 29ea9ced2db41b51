package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Zero(t, cfg.Calculator.DefaultOverage)
		assert.Zero(t, cfg.Calculator.DefaultRoundingStep)
		assert.Equal(t, 2*time.Hour, cfg.Chat.SessionTTL)
		assert.Equal(t, 2000, cfg.Chat.MaxMessageLength)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Auth.JWTEnabled())
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "suppository_service", cfg.Database.DatabaseName)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("loads values from environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("RATE_LIMIT", "50")
		t.Setenv("RATE_WINDOW", "30s")
		t.Setenv("CACHE_SIZE", "500")
		t.Setenv("CACHE_TTL", "10m")
		t.Setenv("CALC_DEFAULT_OVERAGE", "0.05")
		t.Setenv("CALC_DEFAULT_ROUNDING_STEP", "0.1")
		t.Setenv("CHAT_SESSION_TTL", "30m")
		t.Setenv("CHAT_MAX_SESSIONS", "50")
		t.Setenv("AUTH_ENABLED", "true")
		t.Setenv("API_KEYS", "key1, key2")
		t.Setenv("INSTRUCTOR_ACCOUNTS", "Prof@Example.edu:$2a$10$abc, broken, ta@example.edu:$2a$10$def")
		t.Setenv("JWT_SECRET_KEY", "s3cret")
		t.Setenv("MONGODB_ENABLED", "true")
		t.Setenv("LOG_PRETTY", "true")

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 0.05, cfg.Calculator.DefaultOverage)
		assert.Equal(t, 0.1, cfg.Calculator.DefaultRoundingStep)
		assert.Equal(t, 30*time.Minute, cfg.Chat.SessionTTL)
		assert.Equal(t, 50, cfg.Chat.MaxSessions)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.Equal(t, map[string]string{
			"prof@example.edu": "$2a$10$abc",
			"ta@example.edu":   "$2a$10$def",
		}, cfg.Auth.Instructors)
		assert.True(t, cfg.Auth.JWTEnabled())
		assert.True(t, cfg.Log.Pretty)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		t.Setenv("RATE_LIMIT", "invalid")
		t.Setenv("AUTH_ENABLED", "invalid")
		t.Setenv("RATE_WINDOW", "invalid")
		t.Setenv("CALC_DEFAULT_OVERAGE", "five percent")

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Zero(t, cfg.Calculator.DefaultOverage)
	})

	t.Run("appends CORS origins to defaults", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "https://pharmacy.example.edu, ")

		cfg := Load()

		assert.Equal(t, []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"https://pharmacy.example.edu",
		}, cfg.Server.CORSOrigins)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative overage",
			mutate:  func(c *Config) { c.Calculator.DefaultOverage = -0.1 },
			wantErr: "CALC_DEFAULT_OVERAGE",
		},
		{
			name:    "negative rounding step",
			mutate:  func(c *Config) { c.Calculator.DefaultRoundingStep = -1 },
			wantErr: "CALC_DEFAULT_ROUNDING_STEP",
		},
		{
			name: "instructors with default secret",
			mutate: func(c *Config) {
				c.Auth.Instructors = map[string]string{"a@b.c": "hash"}
				c.Database.Enabled = true
			},
			wantErr: "JWT_SECRET_KEY",
		},
		{
			name: "instructors without database",
			mutate: func(c *Config) {
				c.Auth.Instructors = map[string]string{"a@b.c": "hash"}
				c.Auth.JWTSecretKey = "set"
			},
			wantErr: "MONGODB_ENABLED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package config_test

import (
	"testing"
	"time"

	"github.com/SukhanRumanov/prac3/internal/config"

	"github.com/stretchr/testify/assert"
)

func lookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.FromEnv(lookup(map[string]string{"JWT_SECRET": "s3cret"}))

		assert.NoError(t, err)
		assert.Equal(t, "8000", cfg.Port)
		assert.Equal(t, "postgres", cfg.DB.Driver)
		assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, "10-M", cfg.Limit.LoginRate)
		assert.Empty(t, cfg.Redis.Addr)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := config.FromEnv(lookup(map[string]string{
			"JWT_SECRET":                  "s3cret",
			"APP_ENV":                     "production",
			"DB_DRIVER":                   "MySQL",
			"ACCESS_TOKEN_EXPIRE_MINUTES": "5",
			"AUTO_MIGRATE":                "true",
			"MUTATION_RPS":                "2.5",
		}))

		assert.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "mysql", cfg.DB.Driver)
		assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
		assert.True(t, cfg.DB.AutoMigrate)
		assert.Equal(t, 2.5, cfg.Limit.MutationRPS)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := config.FromEnv(lookup(map[string]string{}))
		assert.EqualError(t, err, "JWT_SECRET is required")
	})

	t.Run("bad number", func(t *testing.T) {
		_, err := config.FromEnv(lookup(map[string]string{"JWT_SECRET": "x", "DB_MAX_RETRIES": "many"}))
		assert.EqualError(t, err, "DB_MAX_RETRIES has an invalid value")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := config.FromEnv(lookup(map[string]string{"JWT_SECRET": "x", "DB_DRIVER": "oracle"}))
		assert.Error(t, err)
	})
}

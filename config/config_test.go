package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should fail without JWT_SECRET", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		cfg, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("should apply defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "https://api.deepseek.com/v1/chat/completions", cfg.LLMAPIURL)
	})

	t.Run("should read overrides from the environment", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_USER", "fitbite")
		t.Setenv("DB_PASSWORD", "s3cret")
		t.Setenv("DB_NAME", "fitbite_prod")
		t.Setenv("REDIS_HOST", "cache.internal")
		t.Setenv("REDIS_DB", "2")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, "host=db.internal port=5433 user=fitbite password=s3cret dbname=fitbite_prod sslmode=disable", cfg.DatabaseDSN())
		assert.Equal(t, "cache.internal:6379", cfg.RedisAddr())
	})

	t.Run("should reject a non-numeric REDIS_DB", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("REDIS_DB", "two")

		cfg, err := LoadConfig()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/hotel")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "development", cfg.Server.Environment)
		assert.True(t, cfg.Auth.Required)
		assert.True(t, cfg.Database.AutoMigrate)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		assert.Empty(t, cfg.Reconciler.Schedule)
	})

	t.Run("Missing Database URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("Secret Optional When Auth Disabled", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/hotel")
		t.Setenv("AUTH_REQUIRED", "false")
		t.Setenv("JWT_SECRET", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Auth.Required)
	})

	t.Run("Secret Required When Auth Enabled", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/hotel")
		t.Setenv("AUTH_REQUIRED", "true")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_SLICE", " a, b ,,c ")

	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvAsInt("TEST_BAD_INT", 1))
	assert.False(t, getEnvAsBool("TEST_BOOL", true))
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsSlice("TEST_SLICE", nil))
	assert.Equal(t, "fallback", getEnv("TEST_UNSET_VALUE", "fallback"))
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "database.db", cfg.SQLitePath)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost/minimart")
	t.Setenv("JWT_SECRET", "super-secret")

	cfg := Load()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "postgres://localhost/minimart", cfg.DatabaseURL)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuronosukeeee/todo-api-v2/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, time.Minute, cfg.HTTP.IdleTimeout)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.AllowedOrigin)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TODO_DB_HOST", "db.internal")
	t.Setenv("TODO_DB_PORT", "5433")
	t.Setenv("TODO_DB_USERNAME", "app")
	t.Setenv("TODO_DB_PASSWORD", "secret")
	t.Setenv("TODO_DB_DATABASE", "todos")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://todo.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://todo.example.com", cfg.CORS.AllowedOrigin)
	assert.Equal(t,
		"host=db.internal user=app password=secret dbname=todos port=5433 sslmode=disable",
		cfg.Database.DSN())
}

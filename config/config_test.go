package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_PATH", "gratuity.db")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://localhost:8080")
	t.Setenv("SERVER_READ_TIMEOUT", "")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "gratuity.db", cfg.Database.Path)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	// GIVEN: Environment sets the port and db
	// WHEN: A flag overrides the port
	// THEN: Flag wins, env still supplies the db
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("SERVER_WRITE_TIMEOUT", "20")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load([]string{"-port=3000"})
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
	assert.NotNil(t, cfg.NewLogger())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("DATABASE_PATH", "gratuity.db")

	_, err := Load([]string{"-port=70000"})
	assert.Error(t, err)

	_, err = Load([]string{"-log-level=loud"})
	assert.Error(t, err)

	_, err = Load([]string{"-log-format=xml"})
	assert.Error(t, err)

	_, err = Load([]string{"-db="})
	assert.Error(t, err)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("X_TIMEOUT", "1m30s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("X_TIMEOUT", time.Second))

	t.Setenv("X_TIMEOUT", "bogus")
	assert.Equal(t, time.Second, getEnvAsDuration("X_TIMEOUT", time.Second))
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "linkedinsight/backend/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CHAT_MODEL", "")
	t.Setenv("SEED_GRAPH", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.True(t, cfg.SeedGraph)
	assert.Contains(t, cfg.CORSOrigins, "http://localhost:3000")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEED_GRAPH", "false")
	t.Setenv("INGEST_CONCURRENCY", "8")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.SeedGraph)
	assert.Equal(t, 8, cfg.IngestConcurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	t.Setenv("INGEST_CONCURRENCY", "0")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	assert.Equal(t, 7, getEnvInt("X_INT", 7))

	t.Setenv("X_BOOL", "maybe")
	assert.True(t, getEnvBool("X_BOOL", true))
}

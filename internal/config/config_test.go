package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GLINT_QUERY_API_PORT", "GLINT_OTLP_HTTP_PORT", "GLINT_OTLP_GRPC_PORT", "GLINT_DB_PATH", "GLINT_LOG_LEVEL", "GLINT_LOG_FORMAT"} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.QueryAPIPort)
	assert.Equal(t, 4318, cfg.OTLPHTTPPort)
	assert.Equal(t, 4317, cfg.OTLPGRPCPort)
	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadEnvOverrides(t *testing.T) {
	os.Setenv("GLINT_QUERY_API_PORT", "9090")
	os.Setenv("GLINT_LOG_FORMAT", "text")
	defer os.Unsetenv("GLINT_QUERY_API_PORT")
	defer os.Unsetenv("GLINT_LOG_FORMAT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.QueryAPIPort)
	assert.Equal(t, "text", cfg.LogFormat)
}

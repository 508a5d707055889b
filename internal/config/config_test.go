package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	app := cfg.ToAppConfig()
	require.Equal(t, "INFO", app.LogLevel())
	require.Equal(t, LogFormatPretty, app.LogFormat())
	require.Equal(t, DefaultSearchLimit, app.SearchLimit())
	require.InDelta(t, DefaultSearchThreshold, app.SearchThreshold(), 1e-9)
	require.Equal(t, DefaultEndpointTimeout, app.EmbeddingEndpoint().Timeout())
	require.False(t, app.EmbeddingEndpoint().Configured())
}

func TestLoadFromEnv_EmbeddingEndpoint(t *testing.T) {
	t.Setenv("EMBEDDING_ENDPOINT_BASE_URL", "https://api.example.com/v1")
	t.Setenv("EMBEDDING_ENDPOINT_API_KEY", "sk-test")
	t.Setenv("EMBEDDING_ENDPOINT_MODEL", "custom-model")
	t.Setenv("EMBEDDING_ENDPOINT_TIMEOUT", "30")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	ep := cfg.ToAppConfig().EmbeddingEndpoint()
	require.True(t, ep.Configured())
	require.Equal(t, "https://api.example.com/v1", ep.BaseURL())
	require.Equal(t, "custom-model", ep.Model())
	require.Equal(t, 30*time.Second, ep.Timeout())
}

func TestAppConfig_ModelDirFallsBackToDataDir(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/sfind-test")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	app := cfg.ToAppConfig()
	require.Equal(t, filepath.Join("/tmp/sfind-test", "models"), app.ModelDir())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=DEBUG\nSEARCH_LIMIT=9\n"), 0o644))

	// Environment wins over the file.
	t.Setenv("SEARCH_LIMIT", "7")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	require.Equal(t, "DEBUG", cfg.LogLevel())
	require.Equal(t, 7, cfg.SearchLimit())
}

func TestLoadConfig_MissingDotEnvIsNotAnError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
}

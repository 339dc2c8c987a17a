package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "fir-extractor", cfg.Service.Name)
	assert.Equal(t, 8085, cfg.Service.Port)
	assert.Equal(t, 10, cfg.Service.Concurrency)
	assert.Equal(t, 100, cfg.Service.BatchLimit)
	assert.Equal(t, 50, cfg.Service.RateLimitRPS)
	assert.Equal(t, 30*time.Second, cfg.Service.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "fir_records.db", cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Extraction.WitnessHeuristicEnabled())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, 8085, cfg.Service.Port)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
service:
  port: 9090
  concurrency: 4
storage:
  driver: postgres
  host: db.internal
logging:
  level: debug
extraction:
  witness_heuristic: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, 4, cfg.Service.Concurrency)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "db.internal", cfg.Storage.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Extraction.WitnessHeuristicEnabled())
	// Unset values still get defaults.
	assert.Equal(t, 100, cfg.Service.BatchLimit)
	assert.Equal(t, 5432, cfg.Storage.Port)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  port: 9090\n"), 0o644))

	t.Setenv("FIR_PORT", "7001")
	t.Setenv("FIR_STORE_DRIVER", "postgres")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Service.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestWitnessHeuristicTriState(t *testing.T) {
	var e ExtractionConfig
	assert.True(t, e.WitnessHeuristicEnabled(), "unset defaults to enabled")

	t.Setenv("FIR_WITNESS_HEURISTIC", "false")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Extraction.WitnessHeuristicEnabled())

	t.Setenv("FIR_WITNESS_HEURISTIC", "true")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Extraction.WitnessHeuristicEnabled())
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "yes", " Yes "} {
		assert.True(t, parseBool(s), s)
	}
	for _, s := range []string{"false", "0", "no", "", "junk"} {
		assert.False(t, parseBool(s), s)
	}
}

package asyncrt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Validates(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfig_ValidateRejectsNonPositiveFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueCapacity = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ReactorBatch = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_AppliesDefaultsForZeroFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strictQueue: true\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.StrictQueue)
	assert.Equal(t, DefaultConfig().QueueCapacity, cfg.QueueCapacity)
	assert.Equal(t, DefaultConfig().ReactorBatch, cfg.ReactorBatch)
}

func TestLoadConfig_OverridesNumericFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queueCapacity: 10\nreactorBatch: 5\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.QueueCapacity)
	assert.Equal(t, 5, cfg.ReactorBatch)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

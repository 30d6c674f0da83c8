package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "sensorhub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestGetValueFromEnvironmentVariable(t *testing.T) {
	t.Setenv("SENSORHUB_TEST_VALUE", "set")
	assert.Equal(t, "set", GetValueFromEnvironmentVariable("SENSORHUB_TEST_VALUE", "default"))
	assert.Equal(t, "default", GetValueFromEnvironmentVariable("SENSORHUB_TEST_MISSING", "default"))
}

func TestLoadHubConfigDefaults(t *testing.T) {
	cfg, err := LoadHubConfig("")
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultHubConfig(), cfg)
}

func TestLoadHubConfigFromFile(t *testing.T) {
	path := writeConfig(t, "dataDir: /var/lib/sensorhub\nsensorsFile: devices\nseed: 9\n")
	cfg, err := LoadHubConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/sensorhub", cfg.DataDir)
	assert.Equal(t, "devices", cfg.SensorsFile)
	assert.Equal(t, "users", cfg.AccountsFile)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "dataDir: from-file\nlogLevel: warn\n")
	t.Setenv(DataDirVariable, "from-env")
	t.Setenv(LogLevelVariable, "debug")
	t.Setenv(SeedVariable, "77")

	cfg, err := LoadHubConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(77), cfg.Seed)
}

func TestLoadHubConfigErrors(t *testing.T) {
	_, err := LoadHubConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	_, err = LoadHubConfig(writeConfig(t, "unknownKey: 1\n"))
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	_, err = LoadHubConfig(writeConfig(t, "sensorsFile: \"\"\n"))
	assert.ErrorIs(t, err, entities.ErrInvalidInput)

	t.Setenv(SeedVariable, "soon")
	_, err = LoadHubConfig("")
	assert.ErrorIs(t, err, entities.ErrInvalidInput)
}

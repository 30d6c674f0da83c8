package utils

import (
	"os"
	"strconv"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
)

const (
	DataDirVariable  = "SENSORHUB_DATA_DIR"
	LogLevelVariable = "SENSORHUB_LOG_LEVEL"
	SeedVariable     = "SENSORHUB_SEED"
)

func GetValueFromEnvironmentVariable(variableName, defaultValue string) string {
	value := os.Getenv(variableName)
	if value != "" {
		return value
	}
	return defaultValue
}

// LoadHubConfig layers the defaults, the optional YAML file at path and the
// SENSORHUB_* environment variables, in that order.
func LoadHubConfig(path string) (entities.HubConfig, error) {
	cfg := entities.DefaultHubConfig()
	if path != "" {
		parsed, err := ConfigurationParser(path, cfg)
		if err != nil {
			return cfg, errors.Wrapf(entities.ErrInvalidInput, "configuration %s: %v", path, err)
		}
		cfg = parsed
	}

	cfg.DataDir = GetValueFromEnvironmentVariable(DataDirVariable, cfg.DataDir)
	cfg.LogLevel = GetValueFromEnvironmentVariable(LogLevelVariable, cfg.LogLevel)
	seed, err := strconv.ParseInt(GetValueFromEnvironmentVariable(SeedVariable, strconv.FormatInt(cfg.Seed, 10)), 10, 64)
	if err != nil {
		return cfg, errors.Wrapf(entities.ErrInvalidInput, "%s must be an integer", SeedVariable)
	}
	cfg.Seed = seed

	if cfg.AccountsFile == "" || cfg.SensorsFile == "" {
		return cfg, errors.Wrap(entities.ErrInvalidInput, "data file names must not be empty")
	}
	return cfg, nil
}

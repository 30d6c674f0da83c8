package entities

// HubConfig is the on-disk configuration of a sensor hub session.
type HubConfig struct {
	DataDir      string `yaml:"dataDir"`
	AccountsFile string `yaml:"accountsFile"`
	SensorsFile  string `yaml:"sensorsFile"`
	LogLevel     string `yaml:"logLevel"`
	// Seed feeds the hardware simulation. Zero means time based.
	Seed int64 `yaml:"seed"`
}

func DefaultHubConfig() HubConfig {
	return HubConfig{
		DataDir:      "data",
		AccountsFile: "users",
		SensorsFile:  "sensors",
		LogLevel:     "info",
	}
}

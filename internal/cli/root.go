package cli

import (
	"github.com/janael-pinheiro/sensorhub/pkg/logging"
	"github.com/janael-pinheiro/sensorhub/pkg/session"
	"github.com/janael-pinheiro/sensorhub/pkg/utils"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	DataDir    string
	LogLevel   string
	Seed       int64
}

// NewRootCommand creates the root command of the sensorhub CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sensorhub",
		Short: "Sensor hub with binary persistence and a movement alarm",
		Long: `sensorhub keeps accounts and sensors in fixed-width binary data files,
simulates sensor readings and captures every camera while movement is detected.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.LogLevel == "" {
				return nil
			}
			_, err := logging.ParseLevel(opts.LogLevel)
			return err
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "directory of the data files (overrides the configuration)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (overrides the configuration)")
	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "simulation seed, 0 keeps the configured one")

	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewSensorsCommand(opts))
	cmd.AddCommand(NewCheckAlarmCommand(opts))
	cmd.AddCommand(NewCollectCommand(opts))
	cmd.AddCommand(NewRemoveSensorCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewImportSensorsCommand(opts))
	cmd.AddCommand(NewImportAccountsCommand(opts))

	return cmd
}

// withSession opens a session for one command and saves it afterwards.
func withSession(opts *RootOptions, cmd *cobra.Command, run func(*session.Session) error) (err error) {
	cfg, err := utils.LoadHubConfig(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}

	s, err := session.Open(cfg, logging.NewLogrus(cfg.LogLevel, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()
	return run(s)
}

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/janael-pinheiro/sensorhub/pkg/alarm"
	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/janael-pinheiro/sensorhub/pkg/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func parseSensorID(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(entities.ErrInvalidInput, "sensor id %q", raw)
	}
	return uint32(id), nil
}

// NewCollectCommand creates the collect command.
func NewCollectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "collect <id>",
		Short: "Take a fresh reading from one sensor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSensorID(args[0])
			if err != nil {
				return err
			}
			return withSession(rootOpts, cmd, func(s *session.Session) error {
				sensor, err := s.CollectSensor(id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				description := entities.Describe(sensor, s.Coordinator().State())
				if sensor.IsImaging() {
					fmt.Fprintf(out, "%d %s: %s\n%s", sensor.ID, sensor.Kind.DisplayName(), description, alarm.RenderGrid(sensor))
					return nil
				}
				fmt.Fprintf(out, "%d %s: %d %s (%s)\n", sensor.ID, sensor.Kind.DisplayName(), sensor.Value(), sensor.Kind.Unit(), description)
				return nil
			})
		},
	}
}

// NewRemoveSensorCommand creates the remove-sensor command.
func NewRemoveSensorCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-sensor <id>",
		Short: "Remove a sensor that is not a primary one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSensorID(args[0])
			if err != nil {
				return err
			}
			return withSession(rootOpts, cmd, func(s *session.Session) error {
				if err := s.RemoveSensor(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sensor %d removed\n", id)
				return nil
			})
		},
	}
}

// NewCheckAlarmCommand creates the check-alarm command.
func NewCheckAlarmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-alarm",
		Short: "Capture every camera when movement is detected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session.Session) error {
				triggered, err := s.CheckAlarm()
				if err != nil {
					return err
				}
				if !triggered {
					fmt.Fprintln(cmd.OutOrStdout(), "no movement detected")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "alarm triggered: %d camera(s) captured\n", len(s.Sensors().Imaging()))
				return nil
			})
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every account and sensor except the mandatory ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session.Session) error {
				if err := s.ClearAll(); err != nil {
					return err
				}
				stats := s.Statistics()
				fmt.Fprintf(cmd.OutOrStdout(), "cleared: %d account(s) and %d sensor(s) kept\n", stats.Accounts, stats.TotalSensors())
				return nil
			})
		},
	}
}

// NewImportSensorsCommand creates the import-sensors command.
func NewImportSensorsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import-sensors <file>",
		Short: "Add sensors from a text file, one \"<id> <kind> <values...>\" per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0], "sensor", (*session.Session).ImportSensors)
		},
	}
}

// NewImportAccountsCommand creates the import-accounts command.
func NewImportAccountsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import-accounts <file>",
		Short: "Add accounts from a text file, one \"<id> <nif> <secret> <role>\" per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0], "account", (*session.Session).ImportAccounts)
		},
	}
}

func runImport(rootOpts *RootOptions, cmd *cobra.Command, path, noun string, importFrom func(*session.Session, io.Reader) (int, error)) error {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return errors.Wrapf(entities.ErrIOFailure, "open %s: %v", path, err)
	}
	defer file.Close()
	return withSession(rootOpts, cmd, func(s *session.Session) error {
		added, err := importFrom(s, file)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s(s)\n", added, noun)
		return err
	})
}

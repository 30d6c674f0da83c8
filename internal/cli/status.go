package cli

import (
	"fmt"
	"io"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/janael-pinheiro/sensorhub/pkg/session"
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show entity counts and the coordinated state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session.Session) error {
				writeStatus(cmd.OutOrStdout(), s.Statistics())
				return nil
			})
		},
	}
}

func writeStatus(out io.Writer, stats session.Statistics) {
	fmt.Fprintf(out, "accounts: %d\n", stats.Accounts)
	fmt.Fprintf(out, "sensors:  %d\n", stats.TotalSensors())
	for _, kind := range entities.Kinds {
		fmt.Fprintf(out, "  %-16s %d\n", kind.DisplayName(), stats.Sensors[kind])
	}
	movement := "no"
	if stats.Movement {
		movement = "yes"
	}
	fmt.Fprintf(out, "temperature: %d %s\n", stats.Temperature, entities.KindTemperature.Unit())
	fmt.Fprintf(out, "movement: %s\n", movement)
}

// NewSensorsCommand creates the sensors command.
func NewSensorsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sensors",
		Short: "List every sensor with its current reading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(s *session.Session) error {
				state := s.Coordinator().State()
				for _, sensor := range s.Sensors().All() {
					fmt.Fprintf(cmd.OutOrStdout(), "%5d  %-16s %s\n", sensor.ID, sensor.Kind.DisplayName(), entities.Describe(sensor, state))
				}
				return nil
			})
		},
	}
}

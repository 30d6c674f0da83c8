package alarm

import (
	"fmt"
	"strings"
	"time"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
)

// RenderCapture formats a capture as a short report followed by its grid.
func RenderCapture(capture Capture) string {
	var b strings.Builder
	fmt.Fprintf(&b, "pass:   %s\n", capture.PassID)
	fmt.Fprintf(&b, "sensor: %d %s\n", capture.Sensor.ID, capture.Sensor.Kind.DisplayName())
	fmt.Fprintf(&b, "time:   %s\n", capture.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "status: %s\n", capture.Description)
	b.WriteString(RenderGrid(capture.Sensor))
	return b.String()
}

// RenderGrid prints the payload as rows of right aligned values.
func RenderGrid(sensor entities.Sensor) string {
	var b strings.Builder
	for _, row := range sensor.Grid() {
		for _, value := range row {
			fmt.Fprintf(&b, "%4d", value)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Package alarm triggers image captures while movement is detected.
package alarm

import (
	"time"

	"github.com/google/uuid"
	"github.com/janael-pinheiro/sensorhub/pkg/coordinator"
	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Capture is one imaging sensor frame taken during an alarm pass.
type Capture struct {
	PassID      uuid.UUID
	Sensor      entities.Sensor
	Description string
	Timestamp   time.Time
}

// CaptureSink receives the frames of an alarm pass.
type CaptureSink interface {
	Capture(capture Capture) error
}

// SensorSource lists the imaging sensors and refreshes them.
type SensorSource interface {
	Imaging() []entities.Sensor
	Collect(id uint32) (entities.Sensor, error)
}

type Evaluator struct {
	coordinator *coordinator.Coordinator
	sink        CaptureSink
	now         func() time.Time
	log         *logrus.Entry
}

func NewEvaluator(coord *coordinator.Coordinator, sink CaptureSink, log *logrus.Entry) *Evaluator {
	return &Evaluator{coordinator: coord, sink: sink, now: time.Now, log: log}
}

// CheckAlarm reports whether movement is detected. When it is, every imaging
// sensor is collected again and its frame handed to the sink.
func (e *Evaluator) CheckAlarm(source SensorSource) (bool, error) {
	if !e.coordinator.Movement() {
		return false, nil
	}
	passID := uuid.New()
	imaging := source.Imaging()
	e.log.WithFields(logrus.Fields{"pass": passID, "cameras": len(imaging)}).Warn("movement detected, capturing")

	for _, camera := range imaging {
		fresh, err := source.Collect(camera.ID)
		if err != nil {
			return true, errors.Wrapf(err, "capture pass %s", passID)
		}
		capture := Capture{
			PassID:      passID,
			Sensor:      fresh,
			Description: entities.Describe(fresh, e.coordinator.State()),
			Timestamp:   e.now().UTC(),
		}
		if err := e.sink.Capture(capture); err != nil {
			return true, errors.Wrapf(err, "capture pass %s: sensor %d", passID, fresh.ID)
		}
	}
	return true, nil
}

// LogSink writes each capture to the audit log.
type LogSink struct {
	log *logrus.Entry
}

func NewLogSink(log *logrus.Entry) *LogSink {
	return &LogSink{log: log}
}

func (l *LogSink) Capture(capture Capture) error {
	l.log.WithFields(logrus.Fields{
		"pass": capture.PassID,
		"id":   capture.Sensor.ID,
		"kind": capture.Sensor.Kind.String(),
	}).Info("capture\n" + RenderCapture(capture))
	return nil
}

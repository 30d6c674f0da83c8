package store

import (
	"github.com/janael-pinheiro/sensorhub/pkg/codec"
	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/janael-pinheiro/sensorhub/pkg/sensors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SensorStore holds the sensors and always contains one primary per kind.
type SensorStore struct {
	*Store[entities.Sensor]
	collector *sensors.Collector
}

func sensorPolicy() Policy[entities.Sensor] {
	return Policy[entities.Sensor]{
		Protected: entities.Sensor.IsPrimary,
		Validate: func(sensor entities.Sensor) error {
			_, err := entities.NewSensor(sensor.ID, sensor.Kind)
			return err
		},
		CheckUpdate: func(current, next entities.Sensor) error {
			if current.IsPrimary() && current.Kind != next.Kind {
				return errors.Wrapf(entities.ErrProtectedEntity, "sensor %d must stay %s", current.ID, current.Kind)
			}
			return nil
		},
		Rename: func(sensor entities.Sensor, id uint32) entities.Sensor {
			sensor.ID = id
			return sensor
		},
	}
}

// NewSensorStore loads path and creates, with a first reading, every
// primary sensor that is missing.
func NewSensorStore(path string, collector *sensors.Collector, log *logrus.Entry) (*SensorStore, error) {
	return newSensorStore(path, collector, &fileManagement{}, log)
}

func newSensorStore(path string, collector *sensors.Collector, fs filesystemManagement, log *logrus.Entry) (*SensorStore, error) {
	store := &SensorStore{
		Store:     newStore(path, codec.SensorCodec{}, sensorPolicy(), fs, log),
		collector: collector,
	}
	if _, err := store.Load(path); err != nil {
		return nil, err
	}
	// Missing imaging primaries read from the persisted masters.
	collector.Coordinator().InitializeFrom(store)
	for _, kind := range entities.Kinds {
		if _, ok := store.FindByID(kind.PrimaryID()); ok {
			continue
		}
		primary := entities.NewPrimarySensor(kind)
		if err := collector.Collect(&primary); err != nil {
			return nil, err
		}
		if store.ensure(primary) {
			log.WithFields(logrus.Fields{"id": primary.ID, "kind": kind.String()}).Info("primary sensor created")
		}
	}
	return store, nil
}

// Imaging returns the imaging sensors in iteration order.
func (s *SensorStore) Imaging() []entities.Sensor {
	var imaging []entities.Sensor
	for _, sensor := range s.All() {
		if sensor.IsImaging() {
			imaging = append(imaging, sensor)
		}
	}
	return imaging
}

func (s *SensorStore) CountByKind() map[entities.Kind]int {
	counts := make(map[entities.Kind]int, len(entities.Kinds))
	for _, sensor := range s.All() {
		counts[sensor.Kind]++
	}
	return counts
}

// Collect runs a collection cycle on the stored sensor and returns the
// refreshed copy. Nothing is written to disk.
func (s *SensorStore) Collect(id uint32) (entities.Sensor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return entities.Sensor{}, errors.Wrapf(entities.ErrNotFound, "sensor %d", id)
	}
	if err := s.collector.Collect(&s.entities[i]); err != nil {
		return entities.Sensor{}, err
	}
	return s.entities[i], nil
}

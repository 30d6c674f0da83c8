// Package sensors simulates the hardware behind each sensor kind and pushes
// master readings into the coordinator.
package sensors

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/janael-pinheiro/sensorhub/pkg/coordinator"
	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type readFunc func(c *Collector, sensor *entities.Sensor)

type readMapping map[entities.Kind]readFunc

func newReadMapping() readMapping {
	mapping := make(readMapping)
	mapping[entities.KindHumidity] = readHumidity
	mapping[entities.KindAirQuality] = readAirQuality
	mapping[entities.KindLight] = readLight
	mapping[entities.KindTemperature] = readTemperature
	mapping[entities.KindContact] = readContact
	mapping[entities.KindThermalImaging] = readThermalImage
	mapping[entities.KindColorImaging] = readColorImage
	return mapping
}

// Collector runs data-collection cycles. It is safe for concurrent use.
type Collector struct {
	mu          sync.Mutex
	coordinator *coordinator.Coordinator
	rng         *rand.Rand
	readers     readMapping
	log         *logrus.Entry
}

// NewCollector builds a collector. A zero seed picks a time based one.
func NewCollector(coord *coordinator.Coordinator, seed int64, log *logrus.Entry) *Collector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Collector{
		coordinator: coord,
		rng:         rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1)),
		readers:     newReadMapping(),
		log:         log,
	}
}

// Coordinator returns the register master readings are pushed into.
func (c *Collector) Coordinator() *coordinator.Coordinator { return c.coordinator }

// Collect refreshes the payload of sensor in place. Master sensors also
// update the coordinator.
func (c *Collector) Collect(sensor *entities.Sensor) error {
	read, ok := c.readers[sensor.Kind]
	if !ok {
		return errors.Wrapf(entities.ErrInvalidInput, "sensor %d: unknown kind %d", sensor.ID, sensor.Kind)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	read(c, sensor)
	c.log.WithFields(logrus.Fields{"id": sensor.ID, "kind": sensor.Kind.String(), "value": sensor.Value()}).Debug("collected")
	return nil
}

// between returns a value in [low, high].
func (c *Collector) between(low, high int) int32 {
	return int32(low + c.rng.IntN(high-low+1))
}

func clamp(v, low, high int32) int32 {
	return max(low, min(v, high))
}

func readHumidity(c *Collector, sensor *entities.Sensor) {
	sensor.SetValue(clamp(45+c.between(-25, 35), 0, 100))
}

func readAirQuality(c *Collector, sensor *entities.Sensor) {
	sensor.SetValue(clamp(c.between(0, 400)+c.between(-10, 10), 0, 500))
}

func readLight(c *Collector, sensor *entities.Sensor) {
	var lux int32
	switch scenario := c.rng.IntN(100); {
	case scenario < 5:
		lux = c.between(0, 9)
	case scenario < 15:
		lux = c.between(10, 49)
	case scenario < 35:
		lux = c.between(50, 199)
	case scenario < 70:
		lux = c.between(200, 499)
	case scenario < 90:
		lux = c.between(500, 999)
	case scenario < 98:
		lux = c.between(1000, 4999)
	default:
		lux = c.between(5000, 19999)
	}
	sensor.SetValue(clamp(lux+c.between(-10, 10), 0, 100000))
}

func readTemperature(c *Collector, sensor *entities.Sensor) {
	base := c.between(18, 25)
	switch excursion := c.rng.IntN(100); {
	case excursion < 10:
		base = c.between(5, 17)
	case excursion < 20:
		base = c.between(26, 40)
	}
	reading := base + c.between(-2, 2)
	sensor.SetValue(reading)
	if c.coordinator.IsTemperatureMaster(sensor.ID) {
		c.coordinator.SetTemperature(reading)
	}
}

func readContact(c *Collector, sensor *entities.Sensor) {
	var reading int32
	if c.rng.IntN(100) < 30 {
		reading = 1
	}
	sensor.SetValue(reading)
	if c.coordinator.IsMovementMaster(sensor.ID) {
		c.coordinator.SetMovement(reading == 1)
	}
}

// readThermalImage spreads points around the coordinated temperature.
func readThermalImage(c *Collector, sensor *entities.Sensor) {
	base := c.coordinator.Temperature()
	for i := range sensor.Payload {
		sensor.Payload[i] = clamp(base+c.between(-5, 5), -10, 60)
	}
}

// readColorImage is bright while movement is detected and dark otherwise.
func readColorImage(c *Collector, sensor *entities.Sensor) {
	base := int32(80)
	if c.coordinator.Movement() {
		base = 180
	}
	for i := range sensor.Payload {
		sensor.Payload[i] = clamp(base+c.between(-20, 20), 0, 255)
	}
}

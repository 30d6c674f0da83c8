// Package coordinator holds the state derived from the master sensors: the
// coordinated temperature and the movement flag.
package coordinator

import (
	"sync"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/sirupsen/logrus"
)

const (
	TemperatureMasterID = entities.PrimaryTemperatureID
	MovementMasterID    = entities.PrimaryContactID
)

// SensorLookup is the part of a sensor store the coordinator reads at start.
type SensorLookup interface {
	FindByID(id uint32) (entities.Sensor, bool)
}

// Coordinator is a shared register. It performs no authorization: sensors
// check IsTemperatureMaster / IsMovementMaster before writing.
type Coordinator struct {
	mu          sync.RWMutex
	temperature int32
	movement    bool
	log         *logrus.Entry
}

func New(log *logrus.Entry) *Coordinator {
	return &Coordinator{log: log}
}

func (c *Coordinator) SetTemperature(value int32) {
	c.mu.Lock()
	c.temperature = value
	c.mu.Unlock()
}

func (c *Coordinator) SetMovement(detected bool) {
	c.mu.Lock()
	c.movement = detected
	c.mu.Unlock()
}

func (c *Coordinator) Temperature() int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.temperature
}

func (c *Coordinator) Movement() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.movement
}

// State returns both values read under one lock.
func (c *Coordinator) State() entities.CoordinatedState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return entities.CoordinatedState{Temperature: c.temperature, Movement: c.movement}
}

func (c *Coordinator) IsTemperatureMaster(id uint32) bool {
	return id == TemperatureMasterID
}

func (c *Coordinator) IsMovementMaster(id uint32) bool {
	return id == MovementMasterID
}

// InitializeFrom seeds the register from the persisted master sensors. A
// missing master leaves its field untouched.
func (c *Coordinator) InitializeFrom(sensors SensorLookup) {
	if master, ok := sensors.FindByID(TemperatureMasterID); ok {
		c.SetTemperature(master.Value())
	} else {
		c.log.Warnf("temperature master %d not found, keeping %d", TemperatureMasterID, c.Temperature())
	}
	if master, ok := sensors.FindByID(MovementMasterID); ok {
		c.SetMovement(master.Value() == 1)
	} else {
		c.log.Warnf("movement master %d not found, keeping %t", MovementMasterID, c.Movement())
	}
	state := c.State()
	c.log.WithFields(logrus.Fields{
		"temperature": state.Temperature,
		"movement":    state.Movement,
	}).Info("coordinator initialized")
}

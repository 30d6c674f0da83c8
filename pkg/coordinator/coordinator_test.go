package coordinator

import (
	"io"
	"testing"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type fakeLookup map[uint32]entities.Sensor

func (f fakeLookup) FindByID(id uint32) (entities.Sensor, bool) {
	sensor, ok := f[id]
	return sensor, ok
}

func createFakeMaster(kind entities.Kind, value int32) entities.Sensor {
	sensor := entities.NewPrimarySensor(kind)
	sensor.SetValue(value)
	return sensor
}

type coordinatorSuite struct {
	suite.Suite
	coordinator *Coordinator
}

func (s *coordinatorSuite) SetupTest() {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s.coordinator = New(logrus.NewEntry(log))
}

func (s *coordinatorSuite) TestSettersAndGetters() {
	s.coordinator.SetTemperature(23)
	s.coordinator.SetMovement(true)
	assert.Equal(s.T(), int32(23), s.coordinator.Temperature())
	assert.True(s.T(), s.coordinator.Movement())
	assert.Equal(s.T(), entities.CoordinatedState{Temperature: 23, Movement: true}, s.coordinator.State())
}

func (s *coordinatorSuite) TestMasterIdentifiers() {
	assert.True(s.T(), s.coordinator.IsTemperatureMaster(40000))
	assert.False(s.T(), s.coordinator.IsTemperatureMaster(40001))
	assert.True(s.T(), s.coordinator.IsMovementMaster(50000))
	assert.False(s.T(), s.coordinator.IsMovementMaster(40000))
}

func (s *coordinatorSuite) TestInitializeFrom() {
	lookup := fakeLookup{
		TemperatureMasterID: createFakeMaster(entities.KindTemperature, 31),
		MovementMasterID:    createFakeMaster(entities.KindContact, 1),
	}
	s.coordinator.InitializeFrom(lookup)
	assert.Equal(s.T(), int32(31), s.coordinator.Temperature())
	assert.True(s.T(), s.coordinator.Movement())
}

func (s *coordinatorSuite) TestInitializeFromWhenMastersMissingThenKeepsPriorValues() {
	s.coordinator.SetTemperature(12)
	s.coordinator.SetMovement(true)
	s.coordinator.InitializeFrom(fakeLookup{})
	assert.Equal(s.T(), int32(12), s.coordinator.Temperature())
	assert.True(s.T(), s.coordinator.Movement())
}

func (s *coordinatorSuite) TestInitializeFromClosedContactClearsMovement() {
	s.coordinator.SetMovement(true)
	s.coordinator.InitializeFrom(fakeLookup{MovementMasterID: createFakeMaster(entities.KindContact, 0)})
	assert.False(s.T(), s.coordinator.Movement())
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(coordinatorSuite))
}

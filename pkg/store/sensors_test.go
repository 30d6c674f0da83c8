package store

import (
	"testing"

	"github.com/janael-pinheiro/sensorhub/pkg/codec"
	"github.com/janael-pinheiro/sensorhub/pkg/coordinator"
	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensorStoreCollect(t *testing.T) {
	log, _ := createNullLogger()
	collector, coord := createCollector(log)
	store, err := NewSensorStore(dataPath(t, "sensors"), collector, log)
	require.NoError(t, err)

	for range 10 {
		master, err := store.Collect(coordinator.TemperatureMasterID)
		require.NoError(t, err)
		assert.Equal(t, master.Value(), coord.Temperature())
		stored, _ := store.FindByID(coordinator.TemperatureMasterID)
		assert.Equal(t, master, stored)
	}

	_, err = store.Collect(12345)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestSensorStoreImagingAndCounts(t *testing.T) {
	store, _ := createSensorStore(t, dataPath(t, "sensors"))
	require.NoError(t, store.Add(createSensor(t, 61000, entities.KindThermalImaging, 0)))
	require.NoError(t, store.Add(createSensor(t, 12000, entities.KindLight, 0)))
	require.NoError(t, store.Add(createSensor(t, 13000, entities.KindLight, 0)))

	var ids []uint32
	for _, sensor := range store.Imaging() {
		ids = append(ids, sensor.ID)
	}
	assert.Equal(t, []uint32{entities.PrimaryThermalImagingID, entities.PrimaryColorImagingID, 61000}, ids)

	counts := store.CountByKind()
	assert.Equal(t, 3, counts[entities.KindLight])
	assert.Equal(t, 2, counts[entities.KindThermalImaging])
	assert.Equal(t, 1, counts[entities.KindHumidity])
}

func TestPrimarySensorsReceiveFirstReading(t *testing.T) {
	store, _ := createSensorStore(t, dataPath(t, "sensors"))
	thermal, ok := store.FindByID(entities.PrimaryThermalImagingID)
	require.True(t, ok)
	assert.NotEqual(t, entities.Payload{}, thermal.Payload)
}

func TestMissingThermalPrimaryFollowsPersistedTemperature(t *testing.T) {
	path := dataPath(t, "sensors")
	master := entities.NewPrimarySensor(entities.KindTemperature)
	master.SetValue(30)
	writeRecords(t, path, codec.SensorCodec{}.Encode(master))

	store, _ := createSensorStore(t, path)
	thermal, ok := store.FindByID(entities.PrimaryThermalImagingID)
	require.True(t, ok)
	for _, point := range thermal.Payload {
		assert.GreaterOrEqual(t, point, int32(25))
		assert.LessOrEqual(t, point, int32(35))
	}
}

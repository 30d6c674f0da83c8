package codec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSensorLineScalar(t *testing.T) {
	sensor, err := ParseSensorLine("12345 TEMPERATURE 21")
	require.NoError(t, err)
	assert.Equal(t, uint32(12345), sensor.ID)
	assert.Equal(t, entities.KindTemperature, sensor.Kind)
	assert.Equal(t, int32(21), sensor.Value())
}

func TestParseSensorLineImaging(t *testing.T) {
	values := make([]string, entities.PayloadSize)
	for i := range values {
		values[i] = fmt.Sprint(i)
	}
	sensor, err := ParseSensorLine("12345 color-imaging " + strings.Join(values, " "))
	require.NoError(t, err)
	assert.Equal(t, int32(63), sensor.Payload[63])

	_, err = ParseSensorLine("12345 RGB_CAMERA 1 2 3")
	assert.True(t, errors.Is(err, entities.ErrInvalidInput))
}

func TestParseSensorLineRejectsUnknownKind(t *testing.T) {
	_, err := ParseSensorLine("12345 BAROMETER 1013")
	assert.True(t, errors.Is(err, entities.ErrInvalidInput))
}

func TestParseSensorLineRejectsBadInput(t *testing.T) {
	for _, line := range []string{"", "12345", "abc HUMIDITY 1", "12345 HUMIDITY x", "12345 HUMIDITY 1 2"} {
		_, err := ParseSensorLine(line)
		assert.True(t, errors.Is(err, entities.ErrInvalidInput), line)
	}
	_, err := ParseSensorLine("999 HUMIDITY 1")
	assert.True(t, errors.Is(err, entities.ErrOutOfRange))
}

func TestParseAccountLine(t *testing.T) {
	account, err := ParseAccountLine("20001 12345678 pw EMPLOYEE")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleStandard, account.Role)
	assert.Equal(t, "pw", account.Secret.Reveal())

	_, err = ParseAccountLine("20001 12345678 pw SUPERUSER")
	assert.True(t, errors.Is(err, entities.ErrInvalidInput))

	_, err = ParseAccountLine("20001 12345678 pw")
	assert.True(t, errors.Is(err, entities.ErrInvalidInput))
}

func TestReadLines(t *testing.T) {
	input := "# imported from the lab\n12345 HUMIDITY 40\n\n  23456 contact 1  \n"
	parsed, err := ReadLines(strings.NewReader(input), ParseSensorLine)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, uint32(12345), parsed[0].ID)
	assert.Equal(t, entities.KindContact, parsed[1].Kind)
}

func TestReadLinesReportsLineNumber(t *testing.T) {
	input := "12345 HUMIDITY 40\n23456 BAROMETER 1013\n"
	_, err := ReadLines(strings.NewReader(input), ParseSensorLine)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrInvalidInput))
	assert.Contains(t, err.Error(), "line 2")
}

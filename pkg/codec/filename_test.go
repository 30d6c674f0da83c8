package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataFile(t *testing.T) {
	assert.Equal(t, "sensors.dat", DataFile("sensors"))
	assert.Equal(t, "data/users.dat", DataFile("data/users.dat"))
	assert.Equal(t, ".dat", DataFile(""))
}

func TestDataFileWhenTooLongThenTruncated(t *testing.T) {
	name := DataFile(strings.Repeat("a", 300))
	assert.Len(t, name, MaxPathLength)
	assert.True(t, strings.HasSuffix(name, DataFileSuffix))

	exact := strings.Repeat("a", MaxPathLength-len(DataFileSuffix))
	assert.Equal(t, exact+DataFileSuffix, DataFile(exact))
}

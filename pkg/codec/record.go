package codec

import (
	"bytes"
	"encoding/binary"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
)

// Records are little-endian and laid out like the C structs the data files
// were first written with, padding included.
var byteOrder = binary.LittleEndian

type AccountRecord struct {
	ID     uint32
	NIF    [entities.NIFCapacity]byte
	Secret [entities.SecretCapacity]byte
	_      [3]byte
	Role   uint32
}

type SensorRecord struct {
	ID      uint32
	Kind    uint32
	Payload [entities.PayloadSize]int32
}

var (
	AccountRecordSize = binary.Size(AccountRecord{})
	SensorRecordSize  = binary.Size(SensorRecord{})
)

func marshal(record any) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, binary.Size(record)))
	// binary.Write into a bytes.Buffer only fails for non fixed-size data.
	_ = binary.Write(buf, byteOrder, record)
	return buf.Bytes()
}

func unmarshal(data []byte, record any) error {
	return binary.Read(bytes.NewReader(data), byteOrder, record)
}

// putCString copies s into dst, truncating so a terminator always fits.
func putCString(dst []byte, s string) {
	n := copy(dst[:len(dst)-1], s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// cString returns the bytes before the first terminator. ok is false when
// the buffer holds no terminator.
func cString(src []byte) (string, bool) {
	end := bytes.IndexByte(src, 0)
	if end < 0 {
		return "", false
	}
	return string(src[:end]), true
}

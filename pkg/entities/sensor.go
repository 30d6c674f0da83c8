package entities

import "github.com/pkg/errors"

// PayloadSize is the number of readings a sensor record carries. Imaging
// sensors use all of them as a GridSide x GridSide image.
const (
	PayloadSize = 64
	GridSide    = 8
)

// Kind values are written to disk as-is. Do not renumber.
type Kind uint32

const (
	KindHumidity       Kind = 0
	KindAirQuality     Kind = 1
	KindLight          Kind = 2
	KindTemperature    Kind = 3
	KindContact        Kind = 4
	KindThermalImaging Kind = 5
	KindColorImaging   Kind = 6
)

// Kinds lists every kind in tag order.
var Kinds = []Kind{
	KindHumidity,
	KindAirQuality,
	KindLight,
	KindTemperature,
	KindContact,
	KindThermalImaging,
	KindColorImaging,
}

// Reserved identifiers of the primary sensors, one per kind.
const (
	PrimaryHumidityID       uint32 = 10000
	PrimaryAirQualityID     uint32 = 20000
	PrimaryLightID          uint32 = 30000
	PrimaryTemperatureID    uint32 = 40000
	PrimaryContactID        uint32 = 50000
	PrimaryThermalImagingID uint32 = 60000
	PrimaryColorImagingID   uint32 = 70000
)

func (k Kind) Valid() bool {
	return k <= KindColorImaging
}

func (k Kind) IsImaging() bool {
	return k == KindThermalImaging || k == KindColorImaging
}

// PrimaryID returns the reserved identifier of the primary sensor of kind k.
func (k Kind) PrimaryID() uint32 {
	return (uint32(k) + 1) * 10000
}

// PrimaryKind reports the kind whose primary sensor owns id.
func PrimaryKind(id uint32) (Kind, bool) {
	if id%10000 != 0 {
		return 0, false
	}
	k := Kind(id/10000 - 1)
	if !k.Valid() {
		return 0, false
	}
	return k, true
}

type Payload [PayloadSize]int32

type Sensor struct {
	ID      uint32
	Kind    Kind
	Payload Payload
}

func NewSensor(id uint32, kind Kind) (Sensor, error) {
	if !ValidIdentifier(id) {
		return Sensor{}, errors.Wrapf(ErrOutOfRange, "sensor %d", id)
	}
	if !kind.Valid() {
		return Sensor{}, errors.Wrapf(ErrInvalidInput, "unknown sensor kind %d", kind)
	}
	if reserved, ok := PrimaryKind(id); ok && reserved != kind {
		return Sensor{}, errors.Wrapf(ErrInvalidInput, "id %d is reserved for %s", id, reserved)
	}
	return Sensor{ID: id, Kind: kind}, nil
}

// NewPrimarySensor returns the zero-valued primary sensor of kind k.
func NewPrimarySensor(k Kind) Sensor {
	return Sensor{ID: k.PrimaryID(), Kind: k}
}

func (s Sensor) Identifier() uint32 { return s.ID }

func (s Sensor) IsPrimary() bool {
	_, ok := PrimaryKind(s.ID)
	return ok
}

func (s Sensor) IsImaging() bool { return s.Kind.IsImaging() }

// Value is the scalar reading, slot 0 of the payload.
func (s Sensor) Value() int32 { return s.Payload[0] }

func (s *Sensor) SetValue(v int32) { s.Payload[0] = v }

// Grid returns the payload as rows of an image.
func (s Sensor) Grid() [][]int32 {
	grid := make([][]int32, GridSide)
	for row := range GridSide {
		grid[row] = make([]int32, GridSide)
		copy(grid[row], s.Payload[row*GridSide:(row+1)*GridSide])
	}
	return grid
}

package codec

import (
	"io"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
)

// Codec converts one entity kind to and from its fixed-width record.
type Codec[T any] interface {
	RecordSize() int
	Encode(entity T) []byte
	// Decode validates the record before building an entity and returns
	// ErrCorruptRecord when any check fails.
	Decode(record []byte) (T, error)
}

// WriteOne appends the record of entity to w.
func WriteOne[T any](w io.Writer, c Codec[T], entity T) error {
	if _, err := w.Write(c.Encode(entity)); err != nil {
		return errors.Wrap(entities.ErrIOFailure, err.Error())
	}
	return nil
}

// ReadOne reads the next record from r. It returns io.EOF once the stream is
// exhausted and ErrCorruptRecord for a record that fails validation or is
// cut short; the stream stays usable after a corrupt record.
func ReadOne[T any](r io.Reader, c Codec[T]) (T, error) {
	var zero T
	buf := make([]byte, c.RecordSize())
	n, err := io.ReadFull(r, buf)
	switch {
	case err == io.EOF:
		return zero, io.EOF
	case err == io.ErrUnexpectedEOF:
		return zero, errors.Wrapf(entities.ErrCorruptRecord, "truncated record: %d of %d bytes", n, len(buf))
	case err != nil:
		return zero, errors.Wrap(entities.ErrIOFailure, err.Error())
	}
	return c.Decode(buf)
}

type AccountCodec struct{}

func (AccountCodec) RecordSize() int { return AccountRecordSize }

func (AccountCodec) ToRecord(a entities.Account) AccountRecord {
	record := AccountRecord{ID: a.ID, Role: uint32(a.Role)}
	putCString(record.NIF[:], a.NIF)
	putCString(record.Secret[:], a.Secret.Reveal())
	return record
}

func (c AccountCodec) Encode(a entities.Account) []byte {
	return marshal(c.ToRecord(a))
}

func (AccountCodec) FromRecord(record AccountRecord) (entities.Account, error) {
	if !entities.ValidIdentifier(record.ID) {
		return entities.Account{}, errors.Wrapf(entities.ErrCorruptRecord, "account id %d out of range", record.ID)
	}
	role := entities.Role(record.Role)
	if !role.Valid() {
		return entities.Account{}, errors.Wrapf(entities.ErrCorruptRecord, "account %d: unknown role %d", record.ID, record.Role)
	}
	nif, ok := cString(record.NIF[:])
	if !ok || nif == "" {
		return entities.Account{}, errors.Wrapf(entities.ErrCorruptRecord, "account %d: bad nif", record.ID)
	}
	secret, ok := cString(record.Secret[:])
	if !ok || secret == "" {
		return entities.Account{}, errors.Wrapf(entities.ErrCorruptRecord, "account %d: bad secret", record.ID)
	}
	return entities.Account{ID: record.ID, NIF: nif, Secret: entities.Secret(secret), Role: role}, nil
}

func (c AccountCodec) Decode(data []byte) (entities.Account, error) {
	if len(data) != AccountRecordSize {
		return entities.Account{}, errors.Wrapf(entities.ErrCorruptRecord, "account record is %d bytes, want %d", len(data), AccountRecordSize)
	}
	var record AccountRecord
	if err := unmarshal(data, &record); err != nil {
		return entities.Account{}, errors.Wrap(entities.ErrCorruptRecord, err.Error())
	}
	return c.FromRecord(record)
}

type SensorCodec struct{}

func (SensorCodec) RecordSize() int { return SensorRecordSize }

func (SensorCodec) ToRecord(s entities.Sensor) SensorRecord {
	return SensorRecord{ID: s.ID, Kind: uint32(s.Kind), Payload: s.Payload}
}

func (c SensorCodec) Encode(s entities.Sensor) []byte {
	return marshal(c.ToRecord(s))
}

func (SensorCodec) FromRecord(record SensorRecord) (entities.Sensor, error) {
	if !entities.ValidIdentifier(record.ID) {
		return entities.Sensor{}, errors.Wrapf(entities.ErrCorruptRecord, "sensor id %d out of range", record.ID)
	}
	kind := entities.Kind(record.Kind)
	if !kind.Valid() {
		return entities.Sensor{}, errors.Wrapf(entities.ErrCorruptRecord, "sensor %d: unknown kind %d", record.ID, record.Kind)
	}
	if reserved, ok := entities.PrimaryKind(record.ID); ok && reserved != kind {
		return entities.Sensor{}, errors.Wrapf(entities.ErrCorruptRecord, "sensor %d: reserved for %s, found %s", record.ID, reserved, kind)
	}
	return entities.Sensor{ID: record.ID, Kind: kind, Payload: record.Payload}, nil
}

func (c SensorCodec) Decode(data []byte) (entities.Sensor, error) {
	if len(data) != SensorRecordSize {
		return entities.Sensor{}, errors.Wrapf(entities.ErrCorruptRecord, "sensor record is %d bytes, want %d", len(data), SensorRecordSize)
	}
	var record SensorRecord
	if err := unmarshal(data, &record); err != nil {
		return entities.Sensor{}, errors.Wrap(entities.ErrCorruptRecord, err.Error())
	}
	return c.FromRecord(record)
}

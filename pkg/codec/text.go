package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
)

// ParseSensorLine parses "<id> <kind> <values...>". Scalar kinds take one
// value; imaging kinds take exactly entities.PayloadSize. Unknown kinds are
// rejected, never defaulted.
func ParseSensorLine(line string) (entities.Sensor, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return entities.Sensor{}, errors.Wrapf(entities.ErrInvalidInput, "sensor line %q: want id, kind and values", line)
	}
	id, err := parseIdentifier(fields[0])
	if err != nil {
		return entities.Sensor{}, err
	}
	kind, err := entities.ParseKind(fields[1])
	if err != nil {
		return entities.Sensor{}, err
	}
	sensor, err := entities.NewSensor(id, kind)
	if err != nil {
		return entities.Sensor{}, err
	}

	values := fields[2:]
	want := 1
	if kind.IsImaging() {
		want = entities.PayloadSize
	}
	if len(values) != want {
		return entities.Sensor{}, errors.Wrapf(entities.ErrInvalidInput, "sensor %d: %s needs %d values, got %d", id, kind, want, len(values))
	}
	for i, raw := range values {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return entities.Sensor{}, errors.Wrapf(entities.ErrInvalidInput, "sensor %d: value %d: %v", id, i, err)
		}
		sensor.Payload[i] = int32(v)
	}
	return sensor, nil
}

// ParseAccountLine parses "<id> <nif> <secret> <role>".
func ParseAccountLine(line string) (entities.Account, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return entities.Account{}, errors.Wrapf(entities.ErrInvalidInput, "account line: want 4 fields, got %d", len(fields))
	}
	id, err := parseIdentifier(fields[0])
	if err != nil {
		return entities.Account{}, err
	}
	role, err := entities.ParseRole(fields[3])
	if err != nil {
		return entities.Account{}, err
	}
	return entities.NewAccount(id, fields[1], entities.Secret(fields[2]), role)
}

func parseIdentifier(raw string) (uint32, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(entities.ErrInvalidInput, "identifier %q", raw)
	}
	return uint32(id), nil
}

// ReadLines parses every line of r with parse. Blank lines and lines starting
// with '#' are skipped. The first bad line aborts the read.
func ReadLines[T any](r io.Reader, parse func(string) (T, error)) ([]T, error) {
	var parsed []T
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 64*1024)
	for number := 1; scanner.Scan(); number++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entity, err := parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", number)
		}
		parsed = append(parsed, entity)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(entities.ErrIOFailure, err.Error())
	}
	return parsed, nil
}

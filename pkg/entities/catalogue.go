package entities

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type kindInfo struct {
	name string
	tag  string
	unit string
}

var kindCatalogue = map[Kind]kindInfo{
	KindHumidity:       {name: "humidity", tag: "HUMIDITY", unit: "%"},
	KindAirQuality:     {name: "air-quality", tag: "AIR_QUALITY", unit: "ppm"},
	KindLight:          {name: "light", tag: "LIGHT_LEVEL", unit: "lux"},
	KindTemperature:    {name: "temperature", tag: "TEMPERATURE", unit: "°C"},
	KindContact:        {name: "contact", tag: "CONTACT"},
	KindThermalImaging: {name: "thermal-imaging", tag: "THERMAL_CAMERA", unit: "°C"},
	KindColorImaging:   {name: "color-imaging", tag: "RGB_CAMERA"},
}

func (k Kind) String() string {
	if info, ok := kindCatalogue[k]; ok {
		return info.name
	}
	return "invalid"
}

// Tag is the upper-case token used in text imports.
func (k Kind) Tag() string { return kindCatalogue[k].tag }

func (k Kind) Unit() string { return kindCatalogue[k].unit }

func (k Kind) DisplayName() string {
	return displayName(k.String())
}

// ParseKind accepts either the kind name or its tag, case-insensitively.
// Unknown values are rejected.
func ParseKind(value string) (Kind, error) {
	for _, k := range Kinds {
		info := kindCatalogue[k]
		if strings.EqualFold(value, info.name) || strings.EqualFold(value, info.tag) {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidInput, "unknown sensor kind %q", value)
}

func (r Role) String() string {
	switch r {
	case RoleElevated:
		return "elevated"
	case RoleStandard:
		return "standard"
	}
	return "invalid"
}

func (r Role) Tag() string {
	switch r {
	case RoleElevated:
		return "ADMIN"
	case RoleStandard:
		return "EMPLOYEE"
	}
	return ""
}

func (r Role) DisplayName() string { return displayName(r.String()) }

func ParseRole(value string) (Role, error) {
	for _, r := range []Role{RoleElevated, RoleStandard} {
		if strings.EqualFold(value, r.String()) || strings.EqualFold(value, r.Tag()) {
			return r, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidInput, "unknown role %q", value)
}

func displayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

// CoordinatedState is the read side of the coordinator, as seen by describers.
type CoordinatedState struct {
	Temperature int32
	Movement    bool
}

// Describe returns the human readable band of a sensor's current reading.
// Imaging sensors are described from the coordinated state rather than
// their own pixels.
func Describe(s Sensor, state CoordinatedState) string {
	switch s.Kind {
	case KindHumidity:
		return describeHumidity(s.Value())
	case KindAirQuality:
		return describeAirQuality(s.Value())
	case KindLight:
		return describeLight(s.Value())
	case KindTemperature:
		return describeTemperature(s.Value())
	case KindContact:
		if s.Value() == 1 {
			return "OPEN"
		}
		return "CLOSED"
	case KindThermalImaging:
		return "THERMAL: " + describeTemperature(state.Temperature)
	case KindColorImaging:
		if state.Movement {
			return "ACTIVITY DETECTED"
		}
		return "NO ACTIVITY"
	}
	return ""
}

func describeHumidity(v int32) string {
	switch {
	case v < 30:
		return "TOO DRY"
	case v <= 35:
		return "DRY"
	case v <= 60:
		return "OPTIMAL"
	case v <= 70:
		return "HUMID"
	}
	return "TOO HUMID"
}

func describeAirQuality(v int32) string {
	switch {
	case v <= 50:
		return "EXCELLENT"
	case v <= 100:
		return "GOOD"
	case v <= 150:
		return "MODERATE"
	case v <= 200:
		return "POOR"
	case v <= 300:
		return "UNHEALTHY"
	}
	return "HAZARDOUS"
}

func describeLight(v int32) string {
	switch {
	case v < 1:
		return "DARK"
	case v <= 10:
		return "VERY DIM"
	case v <= 50:
		return "DIM"
	case v <= 200:
		return "LOW LIGHT"
	case v <= 500:
		return "NORMAL"
	case v <= 1000:
		return "BRIGHT"
	case v <= 10000:
		return "VERY BRIGHT"
	}
	return "DAYLIGHT"
}

func describeTemperature(v int32) string {
	switch {
	case v < 0:
		return "FREEZING"
	case v <= 10:
		return "VERY COLD"
	case v <= 16:
		return "COLD"
	case v <= 18:
		return "COOL"
	case v <= 25:
		return "COMFORTABLE"
	case v <= 30:
		return "WARM"
	case v <= 35:
		return "HOT"
	}
	return "VERY HOT"
}

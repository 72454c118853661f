package enums

import "fmt"

// DurationUnit qualifies the duration field of a catalog service.
type DurationUnit string

const (
	DurationUnitMinute DurationUnit = "minute"
	DurationUnitHour   DurationUnit = "hour"
	DurationUnitDay    DurationUnit = "day"
)

var validDurationUnits = []DurationUnit{
	DurationUnitMinute,
	DurationUnitHour,
	DurationUnitDay,
}

// String implements fmt.Stringer.
func (d DurationUnit) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DurationUnit.
func (d DurationUnit) IsValid() bool {
	for _, candidate := range validDurationUnits {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDurationUnit converts raw input into a DurationUnit.
func ParseDurationUnit(value string) (DurationUnit, error) {
	for _, candidate := range validDurationUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid duration unit %q", value)
}

package enums

import "fmt"

// CodeKind selects which business-code sequence a counter belongs to.
type CodeKind string

const (
	CodeKindClient   CodeKind = "client"
	CodeKindEmployee CodeKind = "employee"
)

var validCodeKinds = []CodeKind{
	CodeKindClient,
	CodeKindEmployee,
}

// String implements fmt.Stringer.
func (c CodeKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CodeKind.
func (c CodeKind) IsValid() bool {
	for _, candidate := range validCodeKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// Letter returns the single-letter discriminator embedded in generated codes.
func (c CodeKind) Letter() string {
	if c == CodeKindEmployee {
		return "E"
	}
	return "C"
}

// ParseCodeKind converts raw input into a CodeKind.
func ParseCodeKind(value string) (CodeKind, error) {
	for _, candidate := range validCodeKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid code kind %q", value)
}

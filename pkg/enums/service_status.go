package enums

import "fmt"

// ServiceStatus tracks a client service record through its lifecycle.
type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "pending"
	ServiceStatusInProgress ServiceStatus = "in_progress"
	ServiceStatusCompleted  ServiceStatus = "completed"
	ServiceStatusCancelled  ServiceStatus = "cancelled"
)

var validServiceStatuses = []ServiceStatus{
	ServiceStatusPending,
	ServiceStatusInProgress,
	ServiceStatusCompleted,
	ServiceStatusCancelled,
}

var serviceTransitions = map[ServiceStatus][]ServiceStatus{
	ServiceStatusPending:    {ServiceStatusInProgress, ServiceStatusCancelled},
	ServiceStatusInProgress: {ServiceStatusCompleted, ServiceStatusCancelled},
	ServiceStatusCompleted:  {},
	ServiceStatusCancelled:  {},
}

// String implements fmt.Stringer.
func (s ServiceStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceStatus.
func (s ServiceStatus) IsValid() bool {
	for _, candidate := range validServiceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the transition table permits moving from the
// current status to next.
func (s ServiceStatus) CanTransitionTo(next ServiceStatus) bool {
	for _, candidate := range serviceTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseServiceStatus converts raw input into a ServiceStatus.
func ParseServiceStatus(value string) (ServiceStatus, error) {
	for _, candidate := range validServiceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service status %q", value)
}

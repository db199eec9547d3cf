package enums

import "fmt"

// ScheduleMode controls whether exported listings go live immediately or at
// a staggered scheduled time.
type ScheduleMode string

const (
	ScheduleModeImmediate ScheduleMode = "immediate"
	ScheduleModeScheduled ScheduleMode = "scheduled"
)

var validScheduleModes = []ScheduleMode{
	ScheduleModeImmediate,
	ScheduleModeScheduled,
}

// String implements fmt.Stringer.
func (s ScheduleMode) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ScheduleMode.
func (s ScheduleMode) IsValid() bool {
	for _, candidate := range validScheduleModes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScheduleMode converts raw input into a ScheduleMode.
func ParseScheduleMode(value string) (ScheduleMode, error) {
	for _, candidate := range validScheduleModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule mode %q", value)
}

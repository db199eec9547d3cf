package enums

import "fmt"

// ConditionType decides which of the two mutually exclusive field groups is
// active on a card. It is the canonical source of truth; the legacy boolean
// graded column on the card model is kept only for the raw export.
type ConditionType string

const (
	ConditionTypeGraded   ConditionType = "graded"
	ConditionTypeUngraded ConditionType = "ungraded"
)

var validConditionTypes = []ConditionType{
	ConditionTypeGraded,
	ConditionTypeUngraded,
}

// String implements fmt.Stringer.
func (c ConditionType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConditionType.
func (c ConditionType) IsValid() bool {
	for _, candidate := range validConditionTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseConditionType converts raw input into a ConditionType.
func ParseConditionType(value string) (ConditionType, error) {
	for _, candidate := range validConditionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid condition type %q", value)
}

package enums

import "fmt"

// CardCondition is the human-readable condition descriptor for ungraded cards.
type CardCondition string

const (
	CardConditionNearMintOrBetter CardCondition = "Near Mint or Better"
	CardConditionExcellent        CardCondition = "Excellent"
	CardConditionVeryGood         CardCondition = "Very Good"
	CardConditionPoor             CardCondition = "Poor"
)

// ValidCardConditions is exported so the export mapper can treat the first
// entry as the best-effort fallback for unrecognized descriptor text.
var ValidCardConditions = []CardCondition{
	CardConditionNearMintOrBetter,
	CardConditionExcellent,
	CardConditionVeryGood,
	CardConditionPoor,
}

// String implements fmt.Stringer.
func (c CardCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CardCondition.
func (c CardCondition) IsValid() bool {
	for _, candidate := range ValidCardConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCardCondition converts raw input into a CardCondition.
func ParseCardCondition(value string) (CardCondition, error) {
	for _, candidate := range ValidCardConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid card condition %q", value)
}

package export

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// CardIssue identifies one card that is not ready for export and lists
// the fields blocking it.
type CardIssue struct {
	CardID        string   `json:"card_id"`
	SortOrder     int      `json:"sort_order"`
	MissingFields []string `json:"missing_fields"`
}

// MissingCardFields is the single readiness predicate for one card. The
// UI gate and export-time validation both call this; there is no second
// copy to drift from. A nil result means the card is ready.
func MissingCardFields(card models.Card) []string {
	var missing []string

	if len(card.Images) == 0 {
		missing = append(missing, "images")
	}
	if strings.TrimSpace(card.Title) == "" && GenerateTitle(card) == TitleFallback {
		missing = append(missing, "title")
	}
	if card.Price.IsZero() {
		missing = append(missing, "price")
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"year", card.Year},
		{"category", card.Category},
		{"brand", card.Brand},
		{"set_name", card.SetName},
		{"name", card.Name},
		{"card_number", card.CardNumber},
		{"subset_parallel", card.SubsetParallel},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	switch card.ConditionType {
	case enums.ConditionTypeGraded:
		if strings.TrimSpace(card.Grader) == "" {
			missing = append(missing, "grader")
		}
		if strings.TrimSpace(card.Grade) == "" {
			missing = append(missing, "grade")
		}
	case enums.ConditionTypeUngraded:
		if strings.TrimSpace(card.Condition) == "" {
			missing = append(missing, "condition")
		}
	default:
		missing = append(missing, "condition_type")
	}

	return missing
}

// CheckLotReadiness evaluates every card and returns the incomplete ones.
// An empty result means the whole lot may be exported.
func CheckLotReadiness(cards []models.Card) []CardIssue {
	var issues []CardIssue
	for _, card := range cards {
		if missing := MissingCardFields(card); len(missing) > 0 {
			issues = append(issues, CardIssue{
				CardID:        card.ID.String(),
				SortOrder:     card.SortOrder,
				MissingFields: missing,
			})
		}
	}
	return issues
}

// ValidateProfile checks the profile-level analog of card readiness:
// scheduled mode needs its base date and time, and paid shipping needs a
// cost.
func ValidateProfile(profile models.ExportProfile) error {
	var problems []string

	if !profile.ScheduleMode.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown schedule mode %q", profile.ScheduleMode))
	}
	if profile.ScheduleMode == enums.ScheduleModeScheduled {
		if profile.ScheduledDate == nil || strings.TrimSpace(*profile.ScheduledDate) == "" {
			problems = append(problems, "scheduled_date is required when schedule mode is scheduled")
		}
		if profile.ScheduledTime == nil || strings.TrimSpace(*profile.ScheduledTime) == "" {
			problems = append(problems, "scheduled_time is required when schedule mode is scheduled")
		}
	}
	if !profile.FreeShipping && profile.ShippingCost.IsZero() {
		problems = append(problems, "shipping_cost is required unless free shipping is set")
	}
	if !profile.ListingType.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown listing type %q", profile.ListingType))
	}

	if len(problems) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "export profile is not valid").
			WithDetails(map[string]any{"problems": problems})
	}
	return nil
}

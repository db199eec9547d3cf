package export

import (
	"fmt"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// eBay condition identifiers for the trading-card categories.
const (
	conditionIDGraded   = "275000"
	conditionIDUngraded = "4000"
)

// cardConditionCodes maps the human-readable condition descriptor to its
// channel value code under descriptor 40001.
var cardConditionCodes = map[enums.CardCondition]string{
	enums.CardConditionNearMintOrBetter: "400010",
	enums.CardConditionExcellent:        "400011",
	enums.CardConditionVeryGood:         "400012",
	enums.CardConditionPoor:             "400013",
}

// ResolvedCondition is the full set of condition-dependent output values
// for one card. Exactly one branch is populated; the other branch's
// fields are always blank regardless of what the record holds.
type ResolvedCondition struct {
	ConditionID          string
	Grader               string
	Grade                string
	CertNo               string
	CardConditionCode    string
	DescriptorRecognized bool
}

// ResolveCondition decides the graded/ungraded branch from the canonical
// condition-type field and produces the channel vocabulary values. A
// condition type matching neither sentinel is a mapping ambiguity, never
// a silent guess.
//
// An unset or unrecognized descriptor on an ungraded card falls back to
// the first entry of the descriptor table. That best-effort fallback
// mirrors existing behavior; DescriptorRecognized lets callers surface
// it as a data-quality warning.
func ResolveCondition(card models.Card) (ResolvedCondition, error) {
	switch card.ConditionType {
	case enums.ConditionTypeGraded:
		return ResolvedCondition{
			ConditionID:          conditionIDGraded,
			Grader:               card.Grader,
			Grade:                card.Grade,
			CertNo:               card.CertNo,
			DescriptorRecognized: true,
		}, nil
	case enums.ConditionTypeUngraded:
		code, recognized := cardConditionCodes[enums.CardCondition(card.Condition)]
		if !recognized {
			code = cardConditionCodes[enums.ValidCardConditions[0]]
		}
		return ResolvedCondition{
			ConditionID:          conditionIDUngraded,
			CardConditionCode:    code,
			DescriptorRecognized: recognized,
		}, nil
	default:
		return ResolvedCondition{}, pkgerrors.New(
			pkgerrors.CodeAmbiguity,
			fmt.Sprintf("card %s has unrecognized condition type %q", card.ID, card.ConditionType),
		).WithDetails(map[string]any{
			"card_id":        card.ID.String(),
			"condition_type": string(card.ConditionType),
		})
	}
}

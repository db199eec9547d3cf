package export

import (
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

func TestResolveConditionGradedBranch(t *testing.T) {
	card := models.Card{
		ID:            uuid.New(),
		ConditionType: enums.ConditionTypeGraded,
		Grader:        "PSA",
		Grade:         "9",
		CertNo:        "12345678",
		Condition:     "Near Mint or Better",
	}
	resolved, err := ResolveCondition(card)
	if err != nil {
		t.Fatalf("ResolveCondition: %v", err)
	}
	if resolved.ConditionID != "275000" {
		t.Errorf("ConditionID = %q, want 275000", resolved.ConditionID)
	}
	if resolved.Grader != "PSA" || resolved.Grade != "9" || resolved.CertNo != "12345678" {
		t.Errorf("graded fields not passed through: %+v", resolved)
	}
	if resolved.CardConditionCode != "" {
		t.Errorf("ungraded branch must be blank on a graded card, got %q", resolved.CardConditionCode)
	}
}

func TestResolveConditionUngradedBranch(t *testing.T) {
	card := models.Card{
		ID:            uuid.New(),
		ConditionType: enums.ConditionTypeUngraded,
		Grader:        "PSA",
		Grade:         "9",
		CertNo:        "12345678",
		Condition:     "Excellent",
	}
	resolved, err := ResolveCondition(card)
	if err != nil {
		t.Fatalf("ResolveCondition: %v", err)
	}
	if resolved.ConditionID != "4000" {
		t.Errorf("ConditionID = %q, want 4000", resolved.ConditionID)
	}
	if resolved.CardConditionCode != "400011" {
		t.Errorf("CardConditionCode = %q, want 400011", resolved.CardConditionCode)
	}
	if resolved.Grader != "" || resolved.Grade != "" || resolved.CertNo != "" {
		t.Errorf("graded branch must be blank on an ungraded card: %+v", resolved)
	}
	if !resolved.DescriptorRecognized {
		t.Error("known descriptor should be recognized")
	}
}

func TestResolveConditionDescriptorFallback(t *testing.T) {
	for _, descriptor := range []string{"", "Mint-ish"} {
		card := models.Card{
			ID:            uuid.New(),
			ConditionType: enums.ConditionTypeUngraded,
			Condition:     descriptor,
		}
		resolved, err := ResolveCondition(card)
		if err != nil {
			t.Fatalf("ResolveCondition(%q): %v", descriptor, err)
		}
		if resolved.CardConditionCode != "400010" {
			t.Errorf("descriptor %q: code = %q, want fallback 400010", descriptor, resolved.CardConditionCode)
		}
		if resolved.DescriptorRecognized {
			t.Errorf("descriptor %q should not be recognized", descriptor)
		}
	}
}

func TestResolveConditionAmbiguityNeverGuesses(t *testing.T) {
	card := models.Card{ID: uuid.New(), ConditionType: "slabbed"}
	_, err := ResolveCondition(card)
	if err == nil {
		t.Fatal("expected mapping ambiguity error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAmbiguity {
		t.Errorf("unexpected error: %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["card_id"] != card.ID.String() {
		t.Errorf("ambiguity must identify the offending card, details = %v", typed.Details())
	}
}

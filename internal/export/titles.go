package export

import (
	"strings"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
)

// TitleFallback is emitted when a card has no manual title and every
// contributing field is blank. Never an empty string.
const TitleFallback = "Untitled Card"

// titleMaxLen is the channel's display limit. Applied at serialization
// time only, so editing surfaces keep the untruncated value.
const titleMaxLen = 80

// GenerateTitle returns the card's manual title verbatim (trimmed) when
// set, otherwise derives one from year, set, name, card number, and
// subset/parallel in that order.
func GenerateTitle(card models.Card) string {
	if manual := strings.TrimSpace(card.Title); manual != "" {
		return manual
	}

	parts := make([]string, 0, 5)
	for _, part := range []string{
		card.Year,
		card.SetName,
		card.Name,
		numberPart(card.CardNumber),
		card.SubsetParallel,
	} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return TitleFallback
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func numberPart(cardNumber string) string {
	trimmed := strings.TrimSpace(cardNumber)
	if trimmed == "" {
		return ""
	}
	return "#" + trimmed
}

// TruncateTitle clips a title to the channel limit. Counts runes so a
// multibyte title is never cut mid-character.
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= titleMaxLen {
		return title
	}
	return string(runes[:titleMaxLen])
}

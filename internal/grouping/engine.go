package grouping

import (
	"sort"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// GroupImages sorts images by filename with the natural comparator and
// partitions the result into consecutive groups of groupSize. The final
// group may hold between 1 and groupSize images. Image IDs are preserved
// (existing images are reassigned, not recreated); every card gets a fresh
// ID, a sequential sort order starting at sortOffset, and contiguous
// 0-based image positions.
func GroupImages(lotID uuid.UUID, images []models.CardImage, groupSize, sortOffset int) ([]models.Card, error) {
	if groupSize <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group size must be a positive integer")
	}
	if len(images) == 0 {
		return []models.Card{}, nil
	}

	sorted := make([]models.CardImage, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i].FileName, sorted[j].FileName)
	})

	cards := make([]models.Card, 0, (len(sorted)+groupSize-1)/groupSize)
	for start := 0; start < len(sorted); start += groupSize {
		end := start + groupSize
		if end > len(sorted) {
			end = len(sorted)
		}

		card := models.Card{
			ID:            uuid.New(),
			LotID:         lotID,
			SortOrder:     sortOffset + len(cards),
			ConditionType: enums.ConditionTypeUngraded,
			Status:        enums.CardStatusPending,
			Attributes:    pq.StringArray{},
		}
		for pos := range sorted[start:end] {
			img := sorted[start+pos]
			if img.ID == uuid.Nil {
				img.ID = uuid.New()
			}
			img.CardID = card.ID
			img.Position = pos
			card.Images = append(card.Images, img)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Flatten reassembles a lot's image sequence in original relative upload
// order: cards by current sort order, then images by position within each
// card. This is the input regrouping feeds back into GroupImages.
func Flatten(cards []models.Card) []models.CardImage {
	sorted := make([]models.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})

	var images []models.CardImage
	for _, card := range sorted {
		imgs := make([]models.CardImage, len(card.Images))
		copy(imgs, card.Images)
		sort.SliceStable(imgs, func(i, j int) bool {
			return imgs[i].Position < imgs[j].Position
		})
		images = append(images, imgs...)
	}
	return images
}

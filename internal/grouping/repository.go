package grouping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/lotlister-backend/pkg/db"
	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// Repository persists card groupings for a lot.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetLot loads the lot or returns NotFound.
func (r *Repository) GetLot(ctx context.Context, lotID uuid.UUID) (*models.Lot, error) {
	var lot models.Lot
	err := r.db.WithContext(ctx).First(&lot, "id = ?", lotID).Error
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lot not found")
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// CountCards returns how many cards the lot currently has.
func (r *Repository) CountCards(ctx context.Context, lotID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).Where("lot_id = ?", lotID).Count(&count).Error
	return int(count), err
}

// ListCardsWithImages loads the lot's cards ordered by sort order, each
// with its images ordered by position.
func (r *Repository) ListCardsWithImages(ctx context.Context, lotID uuid.UUID) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("sort_order ASC").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&cards).Error
	return cards, err
}

// InsertCards appends new cards (with their images) to the lot.
func (r *Repository) InsertCards(ctx context.Context, cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&cards).Error
}

// ReplaceCards swaps the lot's full card set in one transaction: the old
// cards (and their images, via cascade) are deleted, the new grouping is
// inserted, and the lot's group size is updated. Either all of it lands or
// none of it does.
func (r *Repository) ReplaceCards(ctx context.Context, lotID uuid.UUID, newGroupSize int, cards []models.Card) error {
	return db.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		// Detach image rows from the old cards first so they can be
		// re-homed onto the new cards instead of cascading away.
		if err := tx.Exec("DELETE FROM card_images WHERE card_id IN (SELECT id FROM cards WHERE lot_id = ?)", lotID).Error; err != nil {
			return err
		}
		if err := tx.Where("lot_id = ?", lotID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if len(cards) > 0 {
			if err := tx.Create(&cards).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Lot{}).Where("id = ?", lotID).Update("group_size", newGroupSize).Error
	})
}

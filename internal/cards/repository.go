package cards

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/lotlister-backend/pkg/db"
	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// Repository persists individual cards.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get loads one card with its images ordered by position.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&card, "id = ?", id).Error
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// ListByLot returns the lot's cards in display order with ordered images.
func (r *Repository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]models.Card, error) {
	var result []models.Card
	err := r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("sort_order ASC").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&result).Error
	return result, err
}

// UpdateColumns applies a partial field update to one card.
func (r *Repository) UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Card{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
	}
	return nil
}

// Insert stores a new card row (images excluded).
func (r *Repository) Insert(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Omit("Images").Create(card).Error
}

// MaxSortOrder returns the highest sort order in the lot, or -1 when empty.
func (r *Repository) MaxSortOrder(ctx context.Context, lotID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("lot_id = ?", lotID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// BulkUpdateStatus sets the status on every card in the lot and returns
// how many rows changed.
func (r *Repository) BulkUpdateStatus(ctx context.Context, lotID uuid.UUID, status enums.CardStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("lot_id = ?", lotID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// Delete removes one card; its images cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Card{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
	}
	return nil
}

package export

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/lotlister-backend/pkg/db"
	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// Repository loads the inputs an export needs and persists profiles.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetLot loads one lot or returns NotFound.
func (r *Repository) GetLot(ctx context.Context, id uuid.UUID) (*models.Lot, error) {
	var lot models.Lot
	err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lot not found")
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// ListCards returns the lot's cards in display order with ordered images.
func (r *Repository) ListCards(ctx context.Context, lotID uuid.UUID) ([]models.Card, error) {
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

// GetProfile loads the lot's export profile; a missing row reports
// NotFound so the service can substitute defaults.
func (r *Repository) GetProfile(ctx context.Context, lotID uuid.UUID) (*models.ExportProfile, error) {
	var profile models.ExportProfile
	err := r.db.WithContext(ctx).First(&profile, "lot_id = ?", lotID).Error
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "export profile not found")
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile inserts or replaces the lot's single profile row, keyed
// on the lot id.
func (r *Repository) UpsertProfile(ctx context.Context, profile *models.ExportProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lot_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}

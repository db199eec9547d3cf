package lots

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/lotlister-backend/pkg/db"
	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// Repository persists lots.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new lot.
func (r *Repository) Create(ctx context.Context, lot *models.Lot) (*models.Lot, error) {
	if err := r.db.WithContext(ctx).Create(lot).Error; err != nil {
		return nil, err
	}
	return lot, nil
}

// Get loads one lot or returns NotFound.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Lot, error) {
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

// List returns every lot, most recently viewed first.
func (r *Repository) List(ctx context.Context) ([]models.Lot, error) {
	var lots []models.Lot
	err := r.db.WithContext(ctx).Order("last_viewed_at DESC").Find(&lots).Error
	return lots, err
}

// TouchLastViewed bumps the lot's last-viewed timestamp.
func (r *Repository) TouchLastViewed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Lot{}).
		Where("id = ?", id).
		Update("last_viewed_at", time.Now().UTC()).Error
}

// Delete removes the lot; cards, images, and the export profile cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Lot{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "lot not found")
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Lot is a named collection of cards being prepared for sale together.
type Lot struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	GroupSize  int       `gorm:"column:group_size;not null;default:2"`
	Cards      []Card    `gorm:"foreignKey:LotID;constraint:OnDelete:CASCADE"`
	LastViewed time.Time `gorm:"column:last_viewed_at;autoCreateTime"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// CardImage stores one uploaded photo assigned to a card. Position is the
// 0-based slot within the owning card and must stay contiguous.
type CardImage struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CardID       uuid.UUID `gorm:"column:card_id;type:uuid;not null;index"`
	FileName     string    `gorm:"column:file_name;not null"`
	OriginalKey  string    `gorm:"column:original_key;not null"`
	ThumbnailKey string    `gorm:"column:thumbnail_key;not null;default:''"`
	Position     int       `gorm:"column:position;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

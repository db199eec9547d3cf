package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/lotlister-backend/pkg/enums"
)

// Card is one sellable item: an ordered set of images plus listing metadata.
//
// ConditionType is the canonical graded/ungraded discriminator. Graded is a
// deprecated duplicate kept only so the raw export can round-trip legacy
// data; nothing else may read it.
type Card struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LotID          uuid.UUID           `gorm:"column:lot_id;type:uuid;not null;index"`
	SortOrder      int                 `gorm:"column:sort_order;not null;default:0"`
	Title          string              `gorm:"column:title;not null;default:''"`
	Price          decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	Category       string              `gorm:"column:category;not null;default:''"`
	Year           string              `gorm:"column:year;not null;default:''"`
	Brand          string              `gorm:"column:brand;not null;default:''"`
	SetName        string              `gorm:"column:set_name;not null;default:''"`
	Name           string              `gorm:"column:name;not null;default:''"`
	CardNumber     string              `gorm:"column:card_number;not null;default:''"`
	SubsetParallel string              `gorm:"column:subset_parallel;not null;default:''"`
	Attributes     pq.StringArray      `gorm:"column:attributes;type:text[];default:ARRAY[]::text[]"`
	Team           string              `gorm:"column:team;not null;default:''"`
	Variation      string              `gorm:"column:variation;not null;default:''"`
	Graded         bool                `gorm:"column:graded;not null;default:false"`
	ConditionType  enums.ConditionType `gorm:"column:condition_type;not null;default:'ungraded'"`
	Grader         string              `gorm:"column:grader;not null;default:''"`
	Grade          string              `gorm:"column:grade;not null;default:''"`
	CertNo         string              `gorm:"column:cert_no;not null;default:''"`
	Condition      string              `gorm:"column:condition;not null;default:''"`
	Description    string              `gorm:"column:description;not null;default:''"`
	Status         enums.CardStatus    `gorm:"column:status;not null;default:'pending'"`
	Images         []CardImage         `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

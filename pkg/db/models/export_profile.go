package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/lotlister-backend/pkg/enums"
)

// ExportProfile holds per-lot listing defaults for the bulk-upload export.
// Exactly one row exists per lot; it is created with defaults on first
// access and upserted on save.
type ExportProfile struct {
	ID                 uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LotID              uuid.UUID          `gorm:"column:lot_id;type:uuid;not null;uniqueIndex"`
	TemplateName       string             `gorm:"column:template_name;not null;default:''"`
	CategoryID         string             `gorm:"column:category_id;not null;default:''"`
	StoreCategoryID    string             `gorm:"column:store_category_id;not null;default:'0'"`
	ListingType        enums.ListingType  `gorm:"column:listing_type;not null;default:'Auction'"`
	StartPrice         decimal.Decimal    `gorm:"column:start_price;type:numeric(12,2);not null;default:0"`
	DurationDays       int                `gorm:"column:duration_days;not null;default:7"`
	ScheduleMode       enums.ScheduleMode `gorm:"column:schedule_mode;not null;default:'immediate'"`
	ScheduledDate      *string            `gorm:"column:scheduled_date"`
	ScheduledTime      *string            `gorm:"column:scheduled_time"`
	StaggerEnabled     bool               `gorm:"column:stagger_enabled;not null;default:false"`
	StaggerSeconds     int                `gorm:"column:stagger_seconds;not null;default:0"`
	ShippingService    string             `gorm:"column:shipping_service;not null;default:''"`
	FreeShipping       bool               `gorm:"column:free_shipping;not null;default:false"`
	ShippingCost       decimal.Decimal    `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0"`
	AdditionalItemCost decimal.Decimal    `gorm:"column:additional_item_cost;type:numeric(12,2);not null;default:0"`
	HandlingDays       int                `gorm:"column:handling_days;not null;default:3"`
	ReturnsAccepted    bool               `gorm:"column:returns_accepted;not null;default:true"`
	ReturnsWithinDays  int                `gorm:"column:returns_within_days;not null;default:14"`
	RefundMethod       string             `gorm:"column:refund_method;not null;default:''"`
	ReturnShippingPaid string             `gorm:"column:return_shipping_paid;not null;default:''"`
	ItemLocation       string             `gorm:"column:item_location;not null;default:''"`
	ImmediatePay       bool               `gorm:"column:immediate_pay;not null;default:false"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

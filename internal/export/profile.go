package export

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
)

// DefaultProfile is the documented "7 Day Auction" template a lot gets on
// first access, before the seller has saved anything.
func DefaultProfile(lotID uuid.UUID) models.ExportProfile {
	return models.ExportProfile{
		ID:                 uuid.New(),
		LotID:              lotID,
		TemplateName:       "7 Day Auction",
		CategoryID:         "261328",
		StoreCategoryID:    "0",
		ListingType:        enums.ListingTypeAuction,
		StartPrice:         decimal.NewFromFloat(4.99),
		DurationDays:       7,
		ScheduleMode:       enums.ScheduleModeScheduled,
		StaggerEnabled:     true,
		StaggerSeconds:     15,
		ShippingService:    "USPS Ground Advantage",
		FreeShipping:       false,
		ShippingCost:       decimal.NewFromFloat(3.99),
		AdditionalItemCost: decimal.NewFromFloat(1.49),
		HandlingDays:       3,
		ReturnsAccepted:    true,
		ReturnsWithinDays:  14,
		RefundMethod:       "Money Back",
		ReturnShippingPaid: "Seller",
		ImmediatePay:       false,
	}
}

package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/lotlister-backend/api/responses"
	"github.com/angelmondragon/lotlister-backend/api/validators"
	"github.com/angelmondragon/lotlister-backend/internal/export"
	"github.com/angelmondragon/lotlister-backend/pkg/config"
	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
	"github.com/angelmondragon/lotlister-backend/pkg/logger"
)

func GetExportProfile(svc export.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lotID, err := validators.UUIDParam(r, "lotID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), lotID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type exportProfileRequest struct {
	TemplateName       string  `json:"template_name" validate:"required"`
	CategoryID         string  `json:"category_id" validate:"required"`
	StoreCategoryID    string  `json:"store_category_id"`
	ListingType        string  `json:"listing_type" validate:"required"`
	StartPrice         string  `json:"start_price" validate:"required"`
	DurationDays       int     `json:"duration_days" validate:"required,min=1,max=30"`
	ScheduleMode       string  `json:"schedule_mode" validate:"required"`
	ScheduledDate      *string `json:"scheduled_date"`
	ScheduledTime      *string `json:"scheduled_time"`
	StaggerEnabled     bool    `json:"stagger_enabled"`
	StaggerSeconds     int     `json:"stagger_seconds" validate:"min=0"`
	ShippingService    string  `json:"shipping_service" validate:"required"`
	FreeShipping       bool    `json:"free_shipping"`
	ShippingCost       string  `json:"shipping_cost"`
	AdditionalItemCost string  `json:"additional_item_cost"`
	HandlingDays       int     `json:"handling_days" validate:"min=0,max=30"`
	ReturnsAccepted    bool    `json:"returns_accepted"`
	ReturnsWithinDays  int     `json:"returns_within_days" validate:"min=0"`
	RefundMethod       string  `json:"refund_method"`
	ReturnShippingPaid string  `json:"return_shipping_paid"`
	ItemLocation       string  `json:"item_location"`
	ImmediatePay       bool    `json:"immediate_pay"`
}

func (p exportProfileRequest) toModel() (models.ExportProfile, error) {
	listingType, err := enums.ParseListingType(p.ListingType)
	if err != nil {
		return models.ExportProfile{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid listing_type")
	}
	scheduleMode, err := enums.ParseScheduleMode(p.ScheduleMode)
	if err != nil {
		return models.ExportProfile{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid schedule_mode")
	}

	startPrice, err := parseMoney("start_price", p.StartPrice)
	if err != nil {
		return models.ExportProfile{}, err
	}
	shippingCost, err := parseMoney("shipping_cost", p.ShippingCost)
	if err != nil {
		return models.ExportProfile{}, err
	}
	additionalCost, err := parseMoney("additional_item_cost", p.AdditionalItemCost)
	if err != nil {
		return models.ExportProfile{}, err
	}

	return models.ExportProfile{
		TemplateName:       p.TemplateName,
		CategoryID:         p.CategoryID,
		StoreCategoryID:    p.StoreCategoryID,
		ListingType:        listingType,
		StartPrice:         startPrice,
		DurationDays:       p.DurationDays,
		ScheduleMode:       scheduleMode,
		ScheduledDate:      p.ScheduledDate,
		ScheduledTime:      p.ScheduledTime,
		StaggerEnabled:     p.StaggerEnabled,
		StaggerSeconds:     p.StaggerSeconds,
		ShippingService:    p.ShippingService,
		FreeShipping:       p.FreeShipping,
		ShippingCost:       shippingCost,
		AdditionalItemCost: additionalCost,
		HandlingDays:       p.HandlingDays,
		ReturnsAccepted:    p.ReturnsAccepted,
		ReturnsWithinDays:  p.ReturnsWithinDays,
		RefundMethod:       p.RefundMethod,
		ReturnShippingPaid: p.ReturnShippingPaid,
		ItemLocation:       p.ItemLocation,
		ImmediatePay:       p.ImmediatePay,
	}, nil
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%s must be a decimal number", field))
	}
	return value, nil
}

func SaveExportProfile(svc export.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lotID, err := validators.UUIDParam(r, "lotID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload exportProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.SaveProfile(r.Context(), lotID, profile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, saved)
	}
}

// ExportReadiness reports which cards still block an export, for UI
// gating ahead of the authoritative server-side check.
func ExportReadiness(svc export.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lotID, err := validators.UUIDParam(r, "lotID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		issues, total, err := svc.Readiness(r.Context(), lotID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"total":      total,
			"incomplete": issues,
			"ready":      len(issues) == 0,
		})
	}
}

// DownloadExport streams the generated CSV with a suggested filename.
//
// Query parameters: format (raw|ebay, default ebay), schema_version,
// tz_offset_minutes, image_base_url (overrides the configured base).
func DownloadExport(svc export.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lotID, err := validators.UUIDParam(r, "lotID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		opts, err := exportOptionsFromRequest(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := svc.BuildExport(r.Context(), lotID, opts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Content); err != nil && logg != nil {
			logg.Error(r.Context(), "export.write_failed", err)
		}
	}
}

func exportOptionsFromRequest(r *http.Request, cfg *config.Config) (export.Options, error) {
	query := r.URL.Query()

	format := enums.ExportFormatEbay
	if raw := query.Get("format"); raw != "" {
		parsed, err := enums.ParseExportFormat(raw)
		if err != nil {
			return export.Options{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid format")
		}
		format = parsed
	}

	var version enums.SchemaVersion
	if raw := query.Get("schema_version"); raw != "" {
		parsed, err := enums.ParseSchemaVersion(raw)
		if err != nil {
			return export.Options{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid schema_version")
		}
		version = parsed
	}

	tzOffset, err := validators.IntQuery(r, "tz_offset_minutes", 0)
	if err != nil {
		return export.Options{}, err
	}

	baseURL := cfg.Export.ImageBaseURL
	if raw := query.Get("image_base_url"); raw != "" {
		baseURL = raw
	}

	return export.Options{
		Format:          format,
		SchemaVersion:   version,
		ImageBaseURL:    baseURL,
		TZOffsetMinutes: tzOffset,
	}, nil
}

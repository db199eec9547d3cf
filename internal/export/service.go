package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
	"github.com/angelmondragon/lotlister-backend/pkg/logger"
	"github.com/angelmondragon/lotlister-backend/pkg/metrics"
)

type exportRepository interface {
	GetLot(ctx context.Context, id uuid.UUID) (*models.Lot, error)
	ListCards(ctx context.Context, lotID uuid.UUID) ([]models.Card, error)
	GetProfile(ctx context.Context, lotID uuid.UUID) (*models.ExportProfile, error)
	UpsertProfile(ctx context.Context, profile *models.ExportProfile) error
}

// Options are the request-scoped export parameters; none are persisted.
type Options struct {
	Format enums.ExportFormat
	// SchemaVersion pins a bulk-upload revision; zero means latest.
	SchemaVersion enums.SchemaVersion
	// ImageBaseURL, when set, rewrites storage keys into absolute URLs.
	ImageBaseURL string
	// TZOffsetMinutes converts the profile's operator-local schedule
	// times to UTC.
	TZOffsetMinutes int
}

// File is a finished export ready for download.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Service builds export files and manages per-lot export profiles.
type Service interface {
	GetProfile(ctx context.Context, lotID uuid.UUID) (*models.ExportProfile, error)
	SaveProfile(ctx context.Context, lotID uuid.UUID, profile models.ExportProfile) (*models.ExportProfile, error)
	Readiness(ctx context.Context, lotID uuid.UUID) ([]CardIssue, int, error)
	BuildExport(ctx context.Context, lotID uuid.UUID, opts Options) (*File, error)
}

type service struct {
	repo    exportRepository
	metrics *metrics.ExportMetrics
	log     *logger.Logger
	now     func() time.Time
}

// NewService constructs the export service.
func NewService(repo exportRepository, exportMetrics *metrics.ExportMetrics, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("export repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		metrics: exportMetrics,
		log:     log,
		now:     time.Now,
	}, nil
}

// GetProfile returns the lot's profile, creating the default "7 Day
// Auction" template on first access.
func (s *service) GetProfile(ctx context.Context, lotID uuid.UUID) (*models.ExportProfile, error) {
	if _, err := s.repo.GetLot(ctx, lotID); err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, lotID)
	if err == nil {
		return profile, nil
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	created := DefaultProfile(lotID)
	if err := s.repo.UpsertProfile(ctx, &created); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist default export profile")
	}
	return &created, nil
}

// SaveProfile upserts the lot's profile. Enum fields must be valid;
// completeness of scheduled date/time is deferred to export time so a
// seller can save work in progress.
func (s *service) SaveProfile(ctx context.Context, lotID uuid.UUID, profile models.ExportProfile) (*models.ExportProfile, error) {
	if _, err := s.repo.GetLot(ctx, lotID); err != nil {
		return nil, err
	}
	if !profile.ListingType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown listing type %q", profile.ListingType))
	}
	if !profile.ScheduleMode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown schedule mode %q", profile.ScheduleMode))
	}
	if profile.StaggerSeconds < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stagger seconds must not be negative")
	}
	if profile.StartPrice.IsNegative() || profile.ShippingCost.IsNegative() || profile.AdditionalItemCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices and costs must not be negative")
	}

	profile.LotID = lotID
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := s.repo.UpsertProfile(ctx, &profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist export profile")
	}
	return &profile, nil
}

// Readiness reports which of the lot's cards are incomplete, plus the
// total card count, so a UI can show "3 of 12 cards incomplete".
func (s *service) Readiness(ctx context.Context, lotID uuid.UUID) ([]CardIssue, int, error) {
	if _, err := s.repo.GetLot(ctx, lotID); err != nil {
		return nil, 0, err
	}
	cards, err := s.repo.ListCards(ctx, lotID)
	if err != nil {
		return nil, 0, err
	}
	return CheckLotReadiness(cards), len(cards), nil
}

// BuildExport produces the full CSV file for a lot, all-or-nothing. The
// bulk-upload format re-validates profile and card readiness server-side
// regardless of any client-side gating; the raw dump preserves records
// as-is without gating.
func (s *service) BuildExport(ctx context.Context, lotID uuid.UUID, opts Options) (*File, error) {
	ctx = s.log.WithLotID(ctx, lotID.String())

	if !opts.Format.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown export format %q", opts.Format))
	}
	if opts.SchemaVersion == "" {
		opts.SchemaVersion = enums.SchemaVersionLatest
	}
	if !opts.SchemaVersion.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown schema version %q", opts.SchemaVersion))
	}

	lot, err := s.repo.GetLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	cards, err := s.repo.ListCards(ctx, lotID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cards for export")
	}
	if len(cards) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lot has no cards to export")
	}

	var rows [][]string
	switch opts.Format {
	case enums.ExportFormatRaw:
		rows = append(rows, rawColumns)
		for _, card := range cards {
			rows = append(rows, buildRawRow(card))
		}
	case enums.ExportFormatEbay:
		rows, err = s.buildEbayRows(ctx, lotID, cards, opts)
		if err != nil {
			return nil, err
		}
	}

	content, err := writeCSV(rows)
	if err != nil {
		s.metrics.IncFailure("serialization")
		return nil, err
	}

	s.metrics.AddRows(opts.Format.String(), len(cards))
	s.log.Info(s.log.WithFields(ctx, map[string]any{
		"format": opts.Format.String(),
		"cards":  len(cards),
	}), "export.complete")

	return &File{
		Name:        BuildFilename(lot.Name, len(cards), opts.Format, s.now().UTC()),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

func (s *service) buildEbayRows(ctx context.Context, lotID uuid.UUID, cards []models.Card, opts Options) ([][]string, error) {
	profile, err := s.GetProfile(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if err := ValidateProfile(*profile); err != nil {
		s.metrics.IncFailure("invalid_profile")
		return nil, err
	}
	if issues := CheckLotReadiness(cards); len(issues) > 0 {
		s.metrics.IncFailure("not_ready")
		return nil, pkgerrors.New(pkgerrors.CodeNotReady,
			fmt.Sprintf("%d of %d cards are not ready for export", len(issues), len(cards))).
			WithDetails(map[string]any{
				"incomplete": issues,
				"total":      len(cards),
			})
	}

	header, err := SchemaHeader(opts.SchemaVersion)
	if err != nil {
		return nil, err
	}
	rows := [][]string{infoRow(opts.SchemaVersion, len(header)), header}
	for i, card := range cards {
		resolved, err := ResolveCondition(card)
		if err != nil {
			s.metrics.IncFailure("ambiguity")
			return nil, err
		}
		if !resolved.DescriptorRecognized && card.ConditionType == enums.ConditionTypeUngraded {
			s.log.Warn(s.log.WithCardID(ctx, card.ID.String()),
				"export.condition_descriptor_fallback")
		}
		schedule, err := ComputeScheduleTime(*profile, i, opts.TZOffsetMinutes)
		if err != nil {
			s.metrics.IncFailure("invalid_profile")
			return nil, err
		}
		row, err := buildEbayRow(opts.SchemaVersion, rowContext{
			card:      card,
			profile:   *profile,
			condition: resolved,
			schedule:  schedule,
			baseURL:   opts.ImageBaseURL,
		})
		if err != nil {
			s.metrics.IncFailure("serialization")
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

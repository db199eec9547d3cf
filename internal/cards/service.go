package cards

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

type cardsRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Card, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]models.Card, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error
	Insert(ctx context.Context, card *models.Card) error
	MaxSortOrder(ctx context.Context, lotID uuid.UUID) (int, error)
	BulkUpdateStatus(ctx context.Context, lotID uuid.UUID, status enums.CardStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type lotLocker interface {
	AcquireLotLock(ctx context.Context, lotID string, ttl time.Duration) (func(context.Context) error, error)
}

// Service exposes per-card editing operations.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Card, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]models.Card, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Card, error)
	Clone(ctx context.Context, id uuid.UUID) (*models.Card, error)
	BulkUpdateStatus(ctx context.Context, lotID uuid.UUID, status string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    cardsRepository
	locker  lotLocker
	lockTTL time.Duration
}

// NewService constructs the cards service.
func NewService(repo cardsRepository, locker lotLocker, lockTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cards repository required")
	}
	if locker == nil {
		return nil, fmt.Errorf("lot locker required")
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &service{repo: repo, locker: locker, lockTTL: lockTTL}, nil
}

// editableColumns maps API field names to card columns. Anything absent is
// not editable through this path (ids, sort order, timestamps, images).
var editableColumns = map[string]string{
	"title":           "title",
	"price":           "price",
	"category":        "category",
	"year":            "year",
	"brand":           "brand",
	"set_name":        "set_name",
	"name":            "name",
	"card_number":     "card_number",
	"subset_parallel": "subset_parallel",
	"team":            "team",
	"variation":       "variation",
	"graded":          "graded",
	"condition_type":  "condition_type",
	"grader":          "grader",
	"grade":           "grade",
	"cert_no":         "cert_no",
	"condition":       "condition",
	"description":     "description",
	"status":          "status",
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) ListByLot(ctx context.Context, lotID uuid.UUID) ([]models.Card, error) {
	return s.repo.ListByLot(ctx, lotID)
}

// UpdateFields applies a partial update. Enum-backed and numeric fields are
// validated before anything is written; one bad field rejects the whole
// request.
func (s *service) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Card, error) {
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	columns := map[string]any{}
	for field, raw := range fields {
		column, ok := editableColumns[field]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q is not editable", field))
		}
		value, err := normalizeFieldValue(field, raw)
		if err != nil {
			return nil, err
		}
		columns[column] = value
	}

	if err := s.repo.UpdateColumns(ctx, id, columns); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func normalizeFieldValue(field string, raw any) (any, error) {
	switch field {
	case "price":
		str := fmt.Sprintf("%v", raw)
		price, err := decimal.NewFromString(strings.TrimSpace(str))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal number")
		}
		if price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		return price, nil
	case "graded":
		b, ok := raw.(bool)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "graded must be a boolean")
		}
		return b, nil
	case "condition_type":
		ct, err := enums.ParseConditionType(fmt.Sprintf("%v", raw))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid condition_type")
		}
		return ct, nil
	case "status":
		st, err := enums.ParseCardStatus(fmt.Sprintf("%v", raw))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		return st, nil
	default:
		str, ok := raw.(string)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("field %q must be a string", field))
		}
		return str, nil
	}
}

// Clone duplicates a card's listing metadata into a new card appended at
// the end of the lot. Images are not copied; the clone starts without any.
func (s *service) Clone(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	source, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	maxOrder, err := s.repo.MaxSortOrder(ctx, source.LotID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "determine clone position")
	}

	clone := *source
	clone.ID = uuid.New()
	clone.SortOrder = maxOrder + 1
	clone.Images = nil
	clone.Status = enums.CardStatusPending
	clone.CreatedAt = source.CreatedAt
	if err := s.repo.Insert(ctx, &clone); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cloned card")
	}
	return &clone, nil
}

// BulkUpdateStatus sets every card in the lot to the given status under
// the per-lot lock, so it cannot interleave with a concurrent regroup.
func (s *service) BulkUpdateStatus(ctx context.Context, lotID uuid.UUID, status string) (int64, error) {
	parsed, err := enums.ParseCardStatus(status)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	release, err := s.locker.AcquireLotLock(ctx, lotID.String(), s.lockTTL)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = release(ctx)
	}()

	changed, err := s.repo.BulkUpdateStatus(ctx, lotID, parsed)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bulk update card status")
	}
	return changed, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

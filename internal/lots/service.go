package lots

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

const defaultGroupSize = 2

type lotsRepository interface {
	Create(ctx context.Context, lot *models.Lot) (*models.Lot, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Lot, error)
	List(ctx context.Context) ([]models.Lot, error)
	TouchLastViewed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes lot lifecycle operations.
type Service interface {
	Create(ctx context.Context, name string, groupSize int) (*models.Lot, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Lot, error)
	List(ctx context.Context) ([]models.Lot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo lotsRepository
}

// NewService constructs the lots service.
func NewService(repo lotsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("lots repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, name string, groupSize int) (*models.Lot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lot name is required")
	}
	if groupSize < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group size must be a positive integer")
	}
	if groupSize == 0 {
		groupSize = defaultGroupSize
	}

	lot := &models.Lot{ID: uuid.New(), Name: name, GroupSize: groupSize}
	created, err := s.repo.Create(ctx, lot)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist lot")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Lot, error) {
	lot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Viewing drives the staleness ordering on the lot list; failure to
	// record it should not fail the read.
	_ = s.repo.TouchLastViewed(ctx, id)
	return lot, nil
}

func (s *service) List(ctx context.Context) ([]models.Lot, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

package grouping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
	"github.com/angelmondragon/lotlister-backend/pkg/metrics"
)

type repository interface {
	GetLot(ctx context.Context, lotID uuid.UUID) (*models.Lot, error)
	CountCards(ctx context.Context, lotID uuid.UUID) (int, error)
	ListCardsWithImages(ctx context.Context, lotID uuid.UUID) ([]models.Card, error)
	InsertCards(ctx context.Context, cards []models.Card) error
	ReplaceCards(ctx context.Context, lotID uuid.UUID, newGroupSize int, cards []models.Card) error
}

type lotLocker interface {
	AcquireLotLock(ctx context.Context, lotID string, ttl time.Duration) (func(context.Context) error, error)
}

// Service turns uploaded image batches into cards and regroups whole lots.
type Service interface {
	GroupNewImages(ctx context.Context, lotID uuid.UUID, images []models.CardImage, groupSize int) ([]models.Card, error)
	Regroup(ctx context.Context, lotID uuid.UUID, newGroupSize int) ([]models.Card, error)
}

type service struct {
	repo    repository
	locker  lotLocker
	metrics *metrics.ExportMetrics
	lockTTL time.Duration
}

// NewService constructs the grouping service.
func NewService(repo repository, locker lotLocker, m *metrics.ExportMetrics, lockTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("grouping repository required")
	}
	if locker == nil {
		return nil, fmt.Errorf("lot locker required")
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &service{repo: repo, locker: locker, metrics: m, lockTTL: lockTTL}, nil
}

// GroupNewImages partitions a freshly uploaded batch into cards appended
// after the lot's existing cards. A zero groupSize falls back to the lot's
// configured size; negative sizes are rejected. The per-lot lock covers the
// count and the insert so a concurrent regroup cannot renumber the lot
// between them.
func (s *service) GroupNewImages(ctx context.Context, lotID uuid.UUID, images []models.CardImage, groupSize int) ([]models.Card, error) {
	release, err := s.locker.AcquireLotLock(ctx, lotID.String(), s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = release(ctx)
	}()

	lot, err := s.repo.GetLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if groupSize == 0 {
		groupSize = lot.GroupSize
	}

	start := time.Now()
	offset, err := s.repo.CountCards(ctx, lotID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count existing cards")
	}

	cards, err := GroupImages(lotID, images, groupSize, offset)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return cards, nil
	}

	if err := s.repo.InsertCards(ctx, cards); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist card groups")
	}
	s.metrics.ObserveGrouping("group", time.Since(start))
	return cards, nil
}

// Regroup replaces every card in the lot with a new grouping computed over
// the lot's flattened image sequence. The replacement is all-or-nothing:
// the repository swap runs in one transaction, and a per-lot lock keeps
// concurrent regroups or bulk edits from interleaving. Manually entered
// card metadata does not survive; callers are expected to warn the user.
func (s *service) Regroup(ctx context.Context, lotID uuid.UUID, newGroupSize int) ([]models.Card, error) {
	if newGroupSize <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group size must be a positive integer")
	}

	release, err := s.locker.AcquireLotLock(ctx, lotID.String(), s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = release(ctx)
	}()

	if _, err := s.repo.GetLot(ctx, lotID); err != nil {
		return nil, err
	}

	start := time.Now()
	existing, err := s.repo.ListCardsWithImages(ctx, lotID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current cards")
	}

	images := Flatten(existing)
	cards, err := GroupImages(lotID, images, newGroupSize, 0)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceCards(ctx, lotID, newGroupSize, cards); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace card groups")
	}
	s.metrics.ObserveGrouping("regroup", time.Since(start))
	return cards, nil
}

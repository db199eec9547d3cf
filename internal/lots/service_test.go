package lots

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

type stubRepo struct {
	lots    map[uuid.UUID]*models.Lot
	touched []uuid.UUID
}

func newStubRepo() *stubRepo {
	return &stubRepo{lots: map[uuid.UUID]*models.Lot{}}
}

func (s *stubRepo) Create(_ context.Context, lot *models.Lot) (*models.Lot, error) {
	s.lots[lot.ID] = lot
	return lot, nil
}

func (s *stubRepo) Get(_ context.Context, id uuid.UUID) (*models.Lot, error) {
	lot, ok := s.lots[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lot not found")
	}
	return lot, nil
}

func (s *stubRepo) List(context.Context) ([]models.Lot, error) {
	var result []models.Lot
	for _, lot := range s.lots {
		result = append(result, *lot)
	}
	return result, nil
}

func (s *stubRepo) TouchLastViewed(_ context.Context, id uuid.UUID) error {
	s.touched = append(s.touched, id)
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.lots[id]; !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "lot not found")
	}
	delete(s.lots, id)
	return nil
}

func TestCreateDefaultsGroupSize(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	lot, err := svc.Create(context.Background(), "  Shoebox Find  ", 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lot.Name != "Shoebox Find" {
		t.Errorf("name = %q", lot.Name)
	}
	if lot.GroupSize != defaultGroupSize {
		t.Errorf("group size = %d, want %d", lot.GroupSize, defaultGroupSize)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), "   ", 2)
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateRejectsNegativeGroupSize(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	if _, err := svc.Create(context.Background(), "Shoebox", -1); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGetTouchesLastViewed(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	created, err := svc.Create(context.Background(), "Shoebox", 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(repo.touched) != 1 || repo.touched[0] != created.ID {
		t.Errorf("touched = %v", repo.touched)
	}
}

func TestDeleteMissingLot(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Errorf("unexpected error: %v", err)
	}
}

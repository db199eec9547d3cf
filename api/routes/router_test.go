package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/lotlister-backend/internal/cards"
	"github.com/angelmondragon/lotlister-backend/internal/export"
	"github.com/angelmondragon/lotlister-backend/internal/grouping"
	"github.com/angelmondragon/lotlister-backend/internal/lots"
	"github.com/angelmondragon/lotlister-backend/pkg/config"
	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubLotsService struct{}

func (stubLotsService) Create(_ context.Context, name string, groupSize int) (*models.Lot, error) {
	return &models.Lot{ID: uuid.New(), Name: name, GroupSize: groupSize}, nil
}

func (stubLotsService) Get(_ context.Context, id uuid.UUID) (*models.Lot, error) {
	return &models.Lot{ID: id, Name: "Shoebox Find"}, nil
}

func (stubLotsService) List(context.Context) ([]models.Lot, error) {
	return nil, nil
}

func (stubLotsService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubCardsService struct{}

func (stubCardsService) Get(_ context.Context, id uuid.UUID) (*models.Card, error) {
	return &models.Card{ID: id}, nil
}

func (stubCardsService) ListByLot(context.Context, uuid.UUID) ([]models.Card, error) {
	return nil, nil
}

func (stubCardsService) UpdateFields(_ context.Context, id uuid.UUID, _ map[string]any) (*models.Card, error) {
	return &models.Card{ID: id}, nil
}

func (stubCardsService) Clone(_ context.Context, id uuid.UUID) (*models.Card, error) {
	return &models.Card{ID: uuid.New()}, nil
}

func (stubCardsService) BulkUpdateStatus(context.Context, uuid.UUID, string) (int64, error) {
	return 0, nil
}

func (stubCardsService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubGroupingService struct{}

func (stubGroupingService) GroupNewImages(context.Context, uuid.UUID, []models.CardImage, int) ([]models.Card, error) {
	return nil, nil
}

func (stubGroupingService) Regroup(context.Context, uuid.UUID, int) ([]models.Card, error) {
	return nil, nil
}

type stubExportService struct{}

func (stubExportService) GetProfile(_ context.Context, lotID uuid.UUID) (*models.ExportProfile, error) {
	profile := export.DefaultProfile(lotID)
	return &profile, nil
}

func (stubExportService) SaveProfile(_ context.Context, lotID uuid.UUID, profile models.ExportProfile) (*models.ExportProfile, error) {
	profile.LotID = lotID
	return &profile, nil
}

func (stubExportService) Readiness(context.Context, uuid.UUID) ([]export.CardIssue, int, error) {
	return nil, 0, nil
}

func (stubExportService) BuildExport(context.Context, uuid.UUID, export.Options) (*export.File, error) {
	return &export.File{
		Name:        "ShoeboxFind_2_items_ebay_export_03-01-26.csv",
		ContentType: "text/csv",
		Content:     []byte("a,b\r\n"),
	}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	var (
		_ lots.Service     = stubLotsService{}
		_ cards.Service    = stubCardsService{}
		_ grouping.Service = stubGroupingService{}
		_ export.Service   = stubExportService{}
	)

	return NewRouter(cfg, logg, stubPinger{}, stubPinger{}, Services{
		Lots:     stubLotsService{},
		Cards:    stubCardsService{},
		Grouping: stubGroupingService{},
		Export:   stubExportService{},
	})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
		}
	}
}

func TestRouterExportDownloadHeaders(t *testing.T) {
	router := newTestRouter(t)

	path := "/api/v1/lots/" + uuid.NewString() + "/export/download?format=ebay"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("content type = %q", got)
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "ShoeboxFind_2_items_ebay_export_03-01-26.csv") {
		t.Errorf("content disposition = %q", disposition)
	}
}

func TestRouterRejectsBadLotID(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/lots/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRouterCreateLotValidation(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lots", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

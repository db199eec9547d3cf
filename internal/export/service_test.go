package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
	"github.com/angelmondragon/lotlister-backend/pkg/logger"
)

type stubExportRepo struct {
	lot      *models.Lot
	cards    []models.Card
	profile  *models.ExportProfile
	upserted *models.ExportProfile
}

func (s *stubExportRepo) GetLot(_ context.Context, id uuid.UUID) (*models.Lot, error) {
	if s.lot == nil || s.lot.ID != id {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lot not found")
	}
	return s.lot, nil
}

func (s *stubExportRepo) ListCards(_ context.Context, _ uuid.UUID) ([]models.Card, error) {
	return s.cards, nil
}

func (s *stubExportRepo) GetProfile(_ context.Context, _ uuid.UUID) (*models.ExportProfile, error) {
	if s.profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "export profile not found")
	}
	return s.profile, nil
}

func (s *stubExportRepo) UpsertProfile(_ context.Context, profile *models.ExportProfile) error {
	copied := *profile
	s.upserted = &copied
	s.profile = &copied
	return nil
}

func newExportService(t *testing.T, repo *stubExportRepo) *service {
	t.Helper()
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, nil, log)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	typed := svc.(*service)
	typed.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return typed
}

func exportFixture() (*stubExportRepo, uuid.UUID) {
	lotID := uuid.New()
	profile := exportTestProfile()
	profile.LotID = lotID

	first := readyCard()
	first.LotID = lotID
	second := readyCard()
	second.ID = uuid.New()
	second.LotID = lotID
	second.SortOrder = 1
	second.ConditionType = enums.ConditionTypeGraded
	second.Grader = "PSA"
	second.Grade = "9"
	second.CertNo = "555"

	return &stubExportRepo{
		lot:     &models.Lot{ID: lotID, Name: "Shoebox Find", GroupSize: 2},
		cards:   []models.Card{first, second},
		profile: &profile,
	}, lotID
}

func TestBuildExportEbay(t *testing.T) {
	repo, lotID := exportFixture()
	svc := newExportService(t, repo)

	file, err := svc.BuildExport(context.Background(), lotID, Options{
		Format:       enums.ExportFormatEbay,
		ImageBaseURL: "https://img.example.com",
	})
	if err != nil {
		t.Fatalf("BuildExport: %v", err)
	}

	if file.Name != "ShoeboxFind_2_items_ebay_export_03-01-26.csv" {
		t.Errorf("file name = %q", file.Name)
	}
	if file.ContentType != "text/csv" {
		t.Errorf("content type = %q", file.ContentType)
	}

	lines := strings.Split(string(file.Content), "\r\n")
	// info row + header + two cards + trailing terminator.
	if len(lines) != 5 || lines[4] != "" {
		t.Fatalf("line count = %d: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "#INFO,Version=2024.2") {
		t.Errorf("info row = %q", lines[0])
	}

	reader := csv.NewReader(bytes.NewReader(file.Content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	header, _ := SchemaHeader(enums.SchemaVersion2024_2)
	if len(records[1]) != len(header) {
		t.Errorf("header width = %d, want %d", len(records[1]), len(header))
	}

	// Stagger: card rows carry base time and base+15s.
	scheduleIdx := -1
	for i, column := range header {
		if column == "ScheduleTime" {
			scheduleIdx = i
		}
	}
	if records[2][scheduleIdx] != "2026-03-01 10:00:00" {
		t.Errorf("first schedule = %q", records[2][scheduleIdx])
	}
	if records[3][scheduleIdx] != "2026-03-01 10:00:15" {
		t.Errorf("second schedule = %q", records[3][scheduleIdx])
	}
}

func TestBuildExportRawSkipsReadinessGating(t *testing.T) {
	repo, lotID := exportFixture()
	repo.cards[0].Year = ""
	svc := newExportService(t, repo)

	file, err := svc.BuildExport(context.Background(), lotID, Options{Format: enums.ExportFormatRaw})
	if err != nil {
		t.Fatalf("raw export must not gate on readiness: %v", err)
	}
	if !strings.HasPrefix(string(file.Content), "id,lot_id,sort_order") {
		t.Errorf("raw export must start with the raw header, got %q", string(file.Content)[:40])
	}
	if strings.Contains(string(file.Content), "#INFO") {
		t.Error("raw export must not carry an info row")
	}
}

func TestBuildExportNotReadyIdentifiesCards(t *testing.T) {
	repo, lotID := exportFixture()
	repo.cards[1].Year = ""
	svc := newExportService(t, repo)

	_, err := svc.BuildExport(context.Background(), lotID, Options{Format: enums.ExportFormatEbay})
	if err == nil {
		t.Fatal("expected not-ready error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotReady {
		t.Fatalf("unexpected error: %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("details = %v", typed.Details())
	}
	issues, ok := details["incomplete"].([]CardIssue)
	if !ok || len(issues) != 1 || issues[0].CardID != repo.cards[1].ID.String() {
		t.Errorf("incomplete cards = %v", details["incomplete"])
	}
}

func TestBuildExportAmbiguousConditionAborts(t *testing.T) {
	repo, lotID := exportFixture()
	repo.cards[1].ConditionType = "slabbed"
	svc := newExportService(t, repo)

	_, err := svc.BuildExport(context.Background(), lotID, Options{Format: enums.ExportFormatEbay})
	if err == nil {
		t.Fatal("expected mapping ambiguity")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// An unknown condition type blocks readiness before mapping runs;
	// either way the export must refuse, never guess.
	if typed.Code() != pkgerrors.CodeAmbiguity && typed.Code() != pkgerrors.CodeNotReady {
		t.Errorf("unexpected code %s", typed.Code())
	}
}

func TestBuildExportEmptyLot(t *testing.T) {
	repo, lotID := exportFixture()
	repo.cards = nil
	svc := newExportService(t, repo)

	_, err := svc.BuildExport(context.Background(), lotID, Options{Format: enums.ExportFormatRaw})
	if err == nil {
		t.Fatal("expected error for empty lot")
	}
}

func TestBuildExportInvalidProfileBlocks(t *testing.T) {
	repo, lotID := exportFixture()
	repo.profile.ScheduledDate = nil
	svc := newExportService(t, repo)

	_, err := svc.BuildExport(context.Background(), lotID, Options{Format: enums.ExportFormatEbay})
	if err == nil {
		t.Fatal("scheduled mode without a date must block export")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGetProfileCreatesDefaultOnFirstAccess(t *testing.T) {
	repo, lotID := exportFixture()
	repo.profile = nil
	svc := newExportService(t, repo)

	profile, err := svc.GetProfile(context.Background(), lotID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.TemplateName != "7 Day Auction" {
		t.Errorf("template = %q", profile.TemplateName)
	}
	if repo.upserted == nil {
		t.Error("default profile must be persisted on first access")
	}
	if profile.LotID != lotID {
		t.Errorf("profile lot = %s, want %s", profile.LotID, lotID)
	}
	if !profile.StaggerEnabled || profile.StaggerSeconds != 15 {
		t.Errorf("default stagger = %v/%d", profile.StaggerEnabled, profile.StaggerSeconds)
	}
}

func TestSaveProfileValidatesEnums(t *testing.T) {
	repo, lotID := exportFixture()
	svc := newExportService(t, repo)

	bad := exportTestProfile()
	bad.ListingType = "Dutch"
	if _, err := svc.SaveProfile(context.Background(), lotID, bad); err == nil {
		t.Fatal("expected validation error for unknown listing type")
	}

	good := exportTestProfile()
	saved, err := svc.SaveProfile(context.Background(), lotID, good)
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if saved.LotID != lotID {
		t.Errorf("saved profile lot = %s, want %s", saved.LotID, lotID)
	}
}

func TestReadinessReportsCounts(t *testing.T) {
	repo, lotID := exportFixture()
	repo.cards[0].Brand = ""
	svc := newExportService(t, repo)

	issues, total, err := svc.Readiness(context.Background(), lotID)
	if err != nil {
		t.Fatalf("Readiness: %v", err)
	}
	if total != 2 || len(issues) != 1 {
		t.Errorf("issues=%d total=%d", len(issues), total)
	}
}

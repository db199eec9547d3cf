package export

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/lotlister-backend/pkg/enums"
)

func TestBuildFilename(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got := BuildFilename("Shoebox Find #3!", 12, enums.ExportFormatEbay, at)
	if got != "ShoeboxFind3_12_items_ebay_export_03-01-26.csv" {
		t.Errorf("filename = %q", got)
	}

	got = BuildFilename("Shoebox Find #3!", 12, enums.ExportFormatRaw, at)
	if got != "ShoeboxFind3_12_items_raw_03-01-26.csv" {
		t.Errorf("filename = %q", got)
	}
}

func TestBuildFilenameTruncatesNameTo30(t *testing.T) {
	long := strings.Repeat("A", 45)
	got := BuildFilename(long, 1, enums.ExportFormatRaw, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	want := strings.Repeat("A", 30) + "_1_items_raw_01-02-26.csv"
	if got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}
}

func TestBuildFilenameEmptyNameFallback(t *testing.T) {
	got := BuildFilename("!!!", 2, enums.ExportFormatRaw, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if !strings.HasPrefix(got, "lot_2_items_raw_") {
		t.Errorf("filename = %q", got)
	}
}

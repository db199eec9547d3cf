package export

import (
	"strings"
	"testing"

	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
)

func TestGenerateTitleFromFields(t *testing.T) {
	card := models.Card{
		Year:           "2024",
		SetName:        "Topps",
		Name:           "Mike Trout",
		CardNumber:     "27",
		SubsetParallel: "Refractor",
	}
	got := GenerateTitle(card)
	want := "2024 Topps Mike Trout #27 Refractor"
	if got != want {
		t.Errorf("GenerateTitle = %q, want %q", got, want)
	}
}

func TestGenerateTitleManualWinsVerbatim(t *testing.T) {
	card := models.Card{
		Title: "  1998 Custom Listing  ",
		Year:  "2024",
		Name:  "Mike Trout",
	}
	if got := GenerateTitle(card); got != "1998 Custom Listing" {
		t.Errorf("GenerateTitle = %q", got)
	}
}

func TestGenerateTitleSkipsBlankFields(t *testing.T) {
	card := models.Card{Year: "2024", Name: "Mike Trout"}
	if got := GenerateTitle(card); got != "2024 Mike Trout" {
		t.Errorf("GenerateTitle = %q", got)
	}
}

func TestGenerateTitleCollapsesWhitespace(t *testing.T) {
	card := models.Card{Year: " 2024 ", SetName: "Topps  Chrome", Name: "Mike Trout"}
	if got := GenerateTitle(card); got != "2024 Topps Chrome Mike Trout" {
		t.Errorf("GenerateTitle = %q", got)
	}
}

func TestGenerateTitleFallbackNeverEmpty(t *testing.T) {
	got := GenerateTitle(models.Card{})
	if got != TitleFallback {
		t.Errorf("GenerateTitle = %q, want %q", got, TitleFallback)
	}
	if got == "" {
		t.Fatal("fallback must never be empty")
	}
}

func TestTruncateTitleAppliesChannelLimit(t *testing.T) {
	long := strings.Repeat("a", 100)
	if got := TruncateTitle(long); len(got) != 80 {
		t.Errorf("len = %d, want 80", len(got))
	}
	short := "2024 Topps Mike Trout"
	if got := TruncateTitle(short); got != short {
		t.Errorf("short title must pass through untouched, got %q", got)
	}
}

func TestTruncateTitleRespectsRuneBoundaries(t *testing.T) {
	long := strings.Repeat("é", 90)
	got := TruncateTitle(long)
	if len([]rune(got)) != 80 {
		t.Errorf("rune len = %d, want 80", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "é") {
		t.Error("truncation split a multibyte character")
	}
}

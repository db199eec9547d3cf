package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/lotlister-backend/pkg/enums"
)

const filenameNameMaxLen = 30

// BuildFilename suggests a download name of the form
// {sanitized lot name}_{count}_items_{raw|ebay_export}_{MM-dd-yy}.csv.
func BuildFilename(lotName string, itemCount int, format enums.ExportFormat, at time.Time) string {
	formatPart := "raw"
	if format == enums.ExportFormatEbay {
		formatPart = "ebay_export"
	}
	return fmt.Sprintf("%s_%d_items_%s_%s.csv",
		sanitizeFilenamePart(lotName),
		itemCount,
		formatPart,
		at.Format("01-02-06"),
	)
}

// sanitizeFilenamePart strips everything outside [A-Za-z0-9_] and clips
// the result to 30 characters.
func sanitizeFilenamePart(name string) string {
	var builder strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			builder.WriteRune(r)
		}
	}
	sanitized := builder.String()
	if sanitized == "" {
		sanitized = "lot"
	}
	if len(sanitized) > filenameNameMaxLen {
		sanitized = sanitized[:filenameNameMaxLen]
	}
	return sanitized
}

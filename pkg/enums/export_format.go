package enums

import "fmt"

// ExportFormat selects which CSV shape an export produces.
type ExportFormat string

const (
	ExportFormatRaw  ExportFormat = "raw"
	ExportFormatEbay ExportFormat = "ebay"
)

var validExportFormats = []ExportFormat{
	ExportFormatRaw,
	ExportFormatEbay,
}

// String implements fmt.Stringer.
func (f ExportFormat) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ExportFormat.
func (f ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseExportFormat converts raw input into an ExportFormat.
func ParseExportFormat(value string) (ExportFormat, error) {
	for _, candidate := range validExportFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}

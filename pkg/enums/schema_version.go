package enums

import "fmt"

// SchemaVersion identifies a historical revision of the bulk-upload column
// layout. The column lists themselves live in the export package.
type SchemaVersion string

const (
	SchemaVersion2023_1 SchemaVersion = "2023.1"
	SchemaVersion2024_2 SchemaVersion = "2024.2"

	// SchemaVersionLatest is what exports target unless a request pins one.
	SchemaVersionLatest = SchemaVersion2024_2
)

var validSchemaVersions = []SchemaVersion{
	SchemaVersion2023_1,
	SchemaVersion2024_2,
}

// String implements fmt.Stringer.
func (v SchemaVersion) String() string {
	return string(v)
}

// IsValid reports whether the value is a known SchemaVersion.
func (v SchemaVersion) IsValid() bool {
	for _, candidate := range validSchemaVersions {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseSchemaVersion converts raw input into a SchemaVersion.
func ParseSchemaVersion(value string) (SchemaVersion, error) {
	for _, candidate := range validSchemaVersions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schema version %q", value)
}

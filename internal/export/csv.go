package export

import (
	"bytes"
	"strings"

	pkgerrors "github.com/angelmondragon/lotlister-backend/pkg/errors"
)

// writeCSV serializes rows into channel-faithful CSV text. Every row,
// including the last, ends with CRLF, and a field is quoted only when it
// contains a comma, a double quote, or a line break. encoding/csv also
// quotes leading whitespace and leaves the final row unterminated under
// some writers, so the byte-exact rules live here instead.
func writeCSV(rows [][]string) ([]byte, error) {
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeSerialization, "no rows to serialize")
	}

	width := len(rows[0])
	var buf bytes.Buffer
	for i, row := range rows {
		if len(row) != width {
			return nil, pkgerrors.New(pkgerrors.CodeSerialization,
				"row width does not match the declared header").WithDetails(map[string]any{
				"row":      i,
				"expected": width,
				"actual":   len(row),
			})
		}
		for j, field := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeCSVField(&buf, field)
		}
		buf.WriteString("\r\n")
	}
	return buf.Bytes(), nil
}

func writeCSVField(buf *bytes.Buffer, field string) {
	if !strings.ContainsAny(field, ",\"\r\n") {
		buf.WriteString(field)
		return
	}
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
	buf.WriteByte('"')
}

package ingest

import "strings"

// ParseRows converts raw sheet rows into typed records. rows[0] is the
// header row and is skipped without inspection. A data row whose first
// cell is empty is a blank-row artifact of the spreadsheet tool and is
// dropped silently, but its position still counts: FileRow always equals
// the 1-based row number in the original file.
func ParseRows(rows []RawRow, schema Schema) []ParsedRecord {
	var records []ParsedRecord
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if leadingCellEmpty(row) {
			continue
		}

		fields := make(map[string]Value, len(schema.Columns))
		for j, col := range schema.Columns {
			raw := ""
			if j < len(row) {
				raw = row[j]
			}
			fields[col.Name] = NormalizeCell(raw, col.Kind)
		}
		records = append(records, ParsedRecord{FileRow: i + 1, Fields: fields})
	}
	return records
}

func leadingCellEmpty(row RawRow) bool {
	return len(row) == 0 || strings.TrimSpace(row[0]) == ""
}

package importer

import "strings"

// Record is one materialized data row: the raw field values keyed by
// header name, plus the 1-based spreadsheet row number (the header is
// row 1) used when reporting errors back to the author.
type Record struct {
	Row    int
	Fields map[string]string
}

// Get returns the raw value for a column, or "" when absent. Columns the
// target collection does not recognize are simply never asked for, which
// keeps extra spreadsheet columns harmless.
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// Materialize zips the header row with each data row positionally.
// Empty header cells are dropped, missing trailing cells default to "",
// and rows whose every cell is blank are skipped while still occupying
// their spreadsheet row number.
func Materialize(rows [][]string) []Record {
	if len(rows) < 2 {
		return nil
	}

	headerRow, dataRows := rows[0], rows[1:]

	// Empty header cells are dropped before zipping, so the remaining
	// names pair with cells by compacted position.
	var headers []string
	for _, h := range headerRow {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		headers = append(headers, name)
	}

	var records []Record
	for i, row := range dataRows {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		fields := make(map[string]string, len(headers))
		for pos, name := range headers {
			value := ""
			if pos < len(row) {
				value = strings.TrimSpace(row[pos])
			}
			fields[name] = value
		}

		// Header is row 1, first data row is row 2.
		records = append(records, Record{Row: i + 2, Fields: fields})
	}

	return records
}

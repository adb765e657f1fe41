package importer

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field coercers. Each takes a raw cell value and reports whether a typed
// value was present; ambiguous or unparseable input yields ok=false so the
// field stays absent from the candidate instead of being defaulted.

// ParseBool accepts the usual spreadsheet spellings case-insensitively:
// true/1/yes/y and false/0/no/n. Anything else is dropped.
func ParseBool(raw string) (bool, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch lower {
	case "true", "1", "yes", "y":
		return true, true
	case "false", "0", "no", "n":
		return false, true
	default:
		return false, false
	}
}

// ParseNumber returns the numeric value of a non-blank cell, dropping
// values that do not parse.
func ParseNumber(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseStringArray accepts either a JSON array or a delimited list.
// Pipe-separated wins over comma-separated so values containing commas can
// still be listed; segments are trimmed and empty ones dropped.
func ParseStringArray(raw string) ([]string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	if strings.HasPrefix(trimmed, "[") {
		var parsed []any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			out := make([]string, 0, len(parsed))
			for _, v := range parsed {
				out = append(out, stringify(v))
			}
			return out, true
		}
		// fall through to delimiter splitting
	}

	switch {
	case strings.Contains(trimmed, "|"):
		return splitAndTrim(trimmed, "|"), true
	case strings.Contains(trimmed, ","):
		return splitAndTrim(trimmed, ","), true
	default:
		return []string{trimmed}, true
	}
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

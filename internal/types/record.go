package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one row from the record store, keyed by source column name.
// Values keep the JSON shape the store returned (string, float64, bool, []any).
type Record map[string]any

// Get resolves a logical attribute to a trimmed string, trying every alias in
// order and returning the first non-empty value.
func (r Record) Get(f Field) string {
	if r == nil {
		return ""
	}
	for _, name := range Aliases(f) {
		v, ok := r[name]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(stringify(v)); s != "" {
			return s
		}
	}
	return ""
}

// Has reports whether any alias of f is present with a non-empty value.
func (r Record) Has(f Field) bool {
	return r.Get(f) != ""
}

// IsActive treats a record as active unless its active flag is explicitly false.
func (r Record) IsActive() bool {
	for _, name := range Aliases(FieldActive) {
		v, ok := r[name]
		if !ok || v == nil {
			continue
		}
		switch val := v.(type) {
		case bool:
			return val
		case string:
			switch strings.ToLower(strings.TrimSpace(val)) {
			case "false", "0", "ne", "no", "n":
				return false
			}
			return true
		case float64:
			return val != 0
		}
		return true
	}
	return true
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		if val {
			return "da"
		}
		return "ne"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(val, ", ")
	case map[string]any:
		// Airtable attachment/link objects carry a display name or url.
		for _, k := range []string{"name", "url", "text"} {
			if s, ok := val[k].(string); ok {
				return s
			}
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

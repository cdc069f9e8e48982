package schema

import "strings"

// autoGeneratedTokens are default values the backend computes at write time.
// They are suppressed rather than surfaced as static defaults.
var autoGeneratedTokens = map[string]struct{}{
	"now":                 {},
	"uuid":                {},
	"incrementalposition": {},
	"currentuser":         {},
	"autoincrement":       {},
}

// NormalizeDefault converts a raw metadata default into the value surfaced
// on the compiled contract. The second return is false when the default
// should be treated as absent: nil values, server-computed tokens, and
// containers that are empty after recursive filtering.
func NormalizeDefault(raw any) (any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		return normalizeStringDefault(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if norm, ok := NormalizeDefault(val); ok {
				out[key] = norm
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []any:
		out := make([]any, 0, len(v))
		for _, val := range v {
			if norm, ok := NormalizeDefault(val); ok {
				out = append(out, norm)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	default:
		return v, true
	}
}

func normalizeStringDefault(s string) (any, bool) {
	unquoted := unquote(strings.TrimSpace(s))
	if _, auto := autoGeneratedTokens[strings.ToLower(unquoted)]; auto {
		return nil, false
	}
	return unquoted, true
}

// unquote strips one layer of surrounding single or double quotes, so the
// export tokens "'active'" and `"''"` become active and the empty string.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadString reads a string argument, trimmed. Required-but-missing or
// wrongly typed values error.
func ReadString(args map[string]any, key string, required bool) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("parameter %q is required", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		if required {
			return "", fmt.Errorf("parameter %q must be a string", key)
		}
		return "", nil
	}
	return strings.TrimSpace(s), nil
}

// ReadNumber reads a numeric argument, tolerating numeric strings.
func ReadNumber(args map[string]any, key string, required bool) (float64, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return 0, false, fmt.Errorf("parameter %q is required", key)
		}
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false, fmt.Errorf("parameter %q must be a number", key)
		}
		return f, true, nil
	}
	return 0, false, fmt.Errorf("parameter %q must be a number", key)
}

// ReadIntDefault reads an integer argument, falling back to a default when
// the argument is absent or unusable.
func ReadIntDefault(args map[string]any, key string, defaultVal int) int {
	n, present, err := ReadNumber(args, key, false)
	if err != nil || !present {
		return defaultVal
	}
	return int(n)
}

// ReadMap reads an object argument.
func ReadMap(args map[string]any, key string, required bool) (map[string]any, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return nil, fmt.Errorf("parameter %q is required", key)
		}
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an object", key)
	}
	return m, nil
}

// ReadStringSlice reads a string array argument; a bare string is accepted
// as a one-element list, non-string elements are dropped.
func ReadStringSlice(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{strings.TrimSpace(v)}
	default:
		return nil
	}
}

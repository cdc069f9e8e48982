package sanitize

import (
	"math"
	"strconv"
	"strings"
)

// RelationValueKind tags the recognized input shapes for a relation value.
type RelationValueKind int

const (
	// RelationNull is an explicit clear (JSON null).
	RelationNull RelationValueKind = iota
	// RelationID is a single usable record id.
	RelationID
	// RelationIDList is a list of usable record ids.
	RelationIDList
	// RelationEmptyList is an explicit clear of a MULTIPLE relation.
	RelationEmptyList
	// RelationInvalid carried nothing usable; the key is omitted.
	RelationInvalid
)

// RelationValue is the tagged normal form of an arbitrary caller-supplied
// relation value. Callers accept nested objects, bare ids, id arrays, and
// wrapper objects interchangeably; classification happens once here instead
// of ad hoc type sniffing at each use site.
type RelationValue struct {
	Kind RelationValueKind
	ID   string
	IDs  []string
}

// classifySingle applies the SINGLE-cardinality rule to one value:
// null clears, non-empty strings and finite numbers become ids, objects
// contribute a non-empty string id or value field, anything else is unusable.
func classifySingle(v any) RelationValue {
	switch t := v.(type) {
	case nil:
		return RelationValue{Kind: RelationNull}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return RelationValue{Kind: RelationID, ID: s}
		}
	case float64:
		if !math.IsNaN(t) && !math.IsInf(t, 0) {
			return RelationValue{Kind: RelationID, ID: strconv.FormatFloat(t, 'f', -1, 64)}
		}
	case int:
		return RelationValue{Kind: RelationID, ID: strconv.Itoa(t)}
	case map[string]any:
		for _, key := range []string{"id", "value"} {
			if s, ok := t[key].(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					return RelationValue{Kind: RelationID, ID: s}
				}
			}
		}
	}
	return RelationValue{Kind: RelationInvalid}
}

// classifyMultiple applies the MULTIPLE-cardinality rule: null and empty
// arrays (including empty .ids wrappers) are explicit clears; everything
// else is converted element-wise with the SINGLE rule, invalid elements
// dropped and duplicates removed. A non-empty input that yields zero ids is
// RelationInvalid: "nothing usable supplied" is kept distinct from an
// intentional clear so the sanitizer can omit rather than wipe.
func classifyMultiple(v any) RelationValue {
	switch t := v.(type) {
	case nil:
		return RelationValue{Kind: RelationEmptyList}
	case []any:
		if len(t) == 0 {
			return RelationValue{Kind: RelationEmptyList}
		}
		return collectIDs(t)
	case map[string]any:
		if rawIDs, present := t["ids"]; present {
			list, ok := rawIDs.([]any)
			if !ok {
				return RelationValue{Kind: RelationInvalid}
			}
			if len(list) == 0 {
				return RelationValue{Kind: RelationEmptyList}
			}
			return collectIDs(list)
		}
		return collectIDs([]any{t})
	default:
		return collectIDs([]any{t})
	}
}

func collectIDs(values []any) RelationValue {
	seen := make(map[string]struct{}, len(values))
	ids := make([]string, 0, len(values))
	for _, v := range values {
		single := classifySingle(v)
		if single.Kind != RelationID {
			continue
		}
		if _, dup := seen[single.ID]; dup {
			continue
		}
		seen[single.ID] = struct{}{}
		ids = append(ids, single.ID)
	}
	if len(ids) == 0 {
		return RelationValue{Kind: RelationInvalid}
	}
	return RelationValue{Kind: RelationIDList, IDs: ids}
}

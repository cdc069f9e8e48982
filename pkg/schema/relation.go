package schema

import "strings"

// Cardinality describes how many target records a relation points at.
type Cardinality string

const (
	CardinalitySingle   Cardinality = "SINGLE"
	CardinalityMultiple Cardinality = "MULTIPLE"
)

// Relation is the compiled descriptor of one RELATION field.
type Relation struct {
	FieldName    string      `json:"fieldName"`
	TargetObject string      `json:"targetObject"`
	Cardinality  Cardinality `json:"cardinality"`
	// Alias is the flat identifier field callers may use instead of a
	// nested relation object, e.g. company -> companyId.
	Alias string `json:"alias"`
}

// cardinalityFromRelationType maps the metadata export's relation type onto a
// cardinality. Unrecognized relation types resolve false and the field is
// excluded from the contract without aborting compilation.
func cardinalityFromRelationType(relationType string) (Cardinality, bool) {
	switch strings.ToUpper(strings.TrimSpace(relationType)) {
	case "MANY_TO_ONE", "ONE_TO_ONE":
		return CardinalitySingle, true
	case "ONE_TO_MANY", "MANY_TO_MANY":
		return CardinalityMultiple, true
	default:
		return "", false
	}
}

// DeriveAlias computes the flat identifier field name for a relation field.
// The derivation is idempotent: a name that already carries the Id/Ids
// suffix (case-insensitive) is returned unchanged.
func DeriveAlias(fieldName string, c Cardinality) string {
	lower := strings.ToLower(fieldName)
	if c == CardinalityMultiple {
		if strings.HasSuffix(lower, "ids") {
			return fieldName
		}
		return fieldName + "Ids"
	}
	if strings.HasSuffix(lower, "id") {
		return fieldName
	}
	return fieldName + "Id"
}

package schema

// FieldKind is the source field type as exported by the Twenty metadata API.
type FieldKind string

const (
	KindText        FieldKind = "TEXT"
	KindUUID        FieldKind = "UUID"
	KindEmail       FieldKind = "EMAIL"
	KindPhone       FieldKind = "PHONE"
	KindLink        FieldKind = "LINK"
	KindSelect      FieldKind = "SELECT"
	KindMultiSelect FieldKind = "MULTI_SELECT"
	KindRating      FieldKind = "RATING"
	KindDate        FieldKind = "DATE"
	KindDateTime    FieldKind = "DATE_TIME"
	KindRichText    FieldKind = "RICH_TEXT"
	KindNumber      FieldKind = "NUMBER"
	KindNumeric     FieldKind = "NUMERIC"
	KindPosition    FieldKind = "POSITION"
	KindBoolean     FieldKind = "BOOLEAN"
	KindArray       FieldKind = "ARRAY"
	KindFullName    FieldKind = "FULL_NAME"
	KindAddress     FieldKind = "ADDRESS"
	KindCurrency    FieldKind = "CURRENCY"
	KindLinks       FieldKind = "LINKS"
	KindEmails      FieldKind = "EMAILS"
	KindPhones      FieldKind = "PHONES"
	KindActor       FieldKind = "ACTOR"
	KindRawJSON     FieldKind = "RAW_JSON"
	KindRelation    FieldKind = "RELATION"
)

// StructuralType returns the JSON schema fragment for a field kind.
// Complex kinds have fixed shapes that are not derived from the metadata
// export; this is a design-time mapping table. Unrecognized kinds fall back
// to string so a new backend field type never breaks compilation.
func StructuralType(kind FieldKind) map[string]any {
	switch kind {
	case KindText, KindUUID, KindEmail, KindPhone, KindLink,
		KindSelect, KindRating, KindDate, KindDateTime, KindRichText:
		return map[string]any{"type": "string"}
	case KindNumber, KindNumeric, KindPosition:
		return map[string]any{"type": "number"}
	case KindBoolean:
		return map[string]any{"type": "boolean"}
	case KindMultiSelect, KindArray:
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
	case KindFullName:
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"firstName":  map[string]any{"type": "string"},
				"lastName":   map[string]any{"type": "string"},
				"middleName": map[string]any{"type": "string"},
				"prefix":     map[string]any{"type": "string"},
				"suffix":     map[string]any{"type": "string"},
			},
		}
	case KindAddress:
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"addressLine1": map[string]any{"type": "string"},
				"addressLine2": map[string]any{"type": "string"},
				"city":         map[string]any{"type": "string"},
				"state":        map[string]any{"type": "string"},
				"postalCode":   map[string]any{"type": "string"},
				"country":      map[string]any{"type": "string"},
			},
		}
	case KindCurrency:
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"amount":   map[string]any{"type": "number"},
				"currency": map[string]any{"type": "string"},
			},
			"required": []string{"amount", "currency"},
		}
	case KindLinks:
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"primaryLinkUrl":   map[string]any{"type": "string"},
				"primaryLinkLabel": map[string]any{"type": "string"},
				"secondaryLinks":   map[string]any{"type": []string{"array", "null"}},
			},
		}
	case KindEmails, KindPhones:
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"value":   map[string]any{"type": "string"},
					"type":    map[string]any{"type": "string"},
					"primary": map[string]any{"type": "boolean"},
				},
			},
		}
	case KindActor:
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":   map[string]any{"type": "string"},
				"type": map[string]any{"type": "string"},
			},
		}
	case KindRawJSON:
		return map[string]any{"type": "object"}
	default:
		return map[string]any{"type": "string"}
	}
}

// relationStructuralType returns the flat identifier shape for a relation.
func relationStructuralType(c Cardinality) map[string]any {
	if c == CardinalityMultiple {
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
	}
	return map[string]any{"type": "string"}
}

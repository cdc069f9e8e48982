package schema

import "strings"

// systemManagedFields are rejected from writable properties: record identity,
// audit timestamps and actors, soft-delete marker, and ordering position.
var systemManagedFields = map[string]struct{}{
	"id":        {},
	"createdAt": {},
	"updatedAt": {},
	"deletedAt": {},
	"createdBy": {},
	"updatedBy": {},
	"position":  {},
}

// ObjectContract is the compiled description of one CRM object: its JSON
// schema properties, required set, relation descriptors, and field-kind
// classification. Contracts are immutable after compilation and superseded
// wholesale on registry rebuild, never mutated in place.
type ObjectContract struct {
	NameSingular  string         `json:"nameSingular"`
	NamePlural    string         `json:"namePlural"`
	LabelSingular string         `json:"labelSingular"`
	LabelPlural   string         `json:"labelPlural"`
	Description   string         `json:"description,omitempty"`
	Properties    map[string]any `json:"properties"`
	Required      []string       `json:"required"`
	Relations     []Relation     `json:"relations"`

	// Kinds classifies every declared field by its source kind, for the
	// payload sanitizer's complex-field coercion.
	Kinds map[string]FieldKind `json:"-"`
}

// IsRequired reports whether a field belongs to the contract's required set.
func (c *ObjectContract) IsRequired(name string) bool {
	for _, r := range c.Required {
		if r == name {
			return true
		}
	}
	return false
}

// RelationByField resolves a relation by its declared field name.
func (c *ObjectContract) RelationByField(name string) *Relation {
	for i := range c.Relations {
		if c.Relations[i].FieldName == name {
			return &c.Relations[i]
		}
	}
	return nil
}

// RelationByAlias resolves a relation by its flat identifier alias.
func (c *ObjectContract) RelationByAlias(name string) *Relation {
	for i := range c.Relations {
		if c.Relations[i].Alias == name {
			return &c.Relations[i]
		}
	}
	return nil
}

// FieldKind returns the source kind of a declared field, or "" when the
// field is unknown to the contract.
func (c *ObjectContract) FieldKind(name string) FieldKind {
	return c.Kinds[name]
}

// WritableProperties returns the subset of properties a caller may set on
// create/update, excluding system-managed fields.
func (c *ObjectContract) WritableProperties() map[string]any {
	out := make(map[string]any, len(c.Properties))
	for name, prop := range c.Properties {
		if _, managed := systemManagedFields[name]; managed {
			continue
		}
		out[name] = prop
	}
	return out
}

// WritableRequired intersects the required set with writable properties.
func (c *ObjectContract) WritableRequired() []string {
	var out []string
	for _, name := range c.Required {
		if _, managed := systemManagedFields[name]; managed {
			continue
		}
		out = append(out, name)
	}
	return out
}

// LabelOrSingular prefers the human label for display, falling back to the
// singular API name.
func (c *ObjectContract) LabelOrSingular() string {
	if strings.TrimSpace(c.LabelSingular) != "" {
		return c.LabelSingular
	}
	return c.NameSingular
}

// Matches reports whether the contract answers to the given name through any
// of its plural, singular, or label forms, case-insensitive.
func (c *ObjectContract) Matches(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, candidate := range c.KnownNames() {
		if strings.ToLower(candidate) == name {
			return true
		}
	}
	return false
}

// KnownNames lists every name form the contract can be resolved by.
func (c *ObjectContract) KnownNames() []string {
	names := make([]string, 0, 4)
	for _, n := range []string{c.NamePlural, c.NameSingular, c.LabelPlural, c.LabelSingular} {
		if strings.TrimSpace(n) != "" {
			names = append(names, n)
		}
	}
	return names
}

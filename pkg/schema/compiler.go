package schema

import (
	"github.com/rs/zerolog"
)

// Compiler turns raw metadata records into object contracts.
type Compiler struct {
	store *Store
	log   zerolog.Logger
}

// NewCompiler creates a compiler over the given metadata store.
func NewCompiler(store *Store, log zerolog.Logger) *Compiler {
	return &Compiler{store: store, log: log.With().Str("component", "schema-compiler").Logger()}
}

// Compile resolves an object by any known name and builds its contract.
// Returns nil when the object is unknown; callers treat that as an
// unsupported object, not a fatal error.
func (c *Compiler) Compile(name string) *ObjectContract {
	obj := c.store.Lookup(name)
	if obj == nil {
		return nil
	}
	return c.CompileObject(obj)
}

// CompileObject builds the contract for one raw metadata record. A field
// participates only if it is active and not system-managed; relation fields
// additionally need a resolvable cardinality. Fields with an unrecognized
// relation type are skipped without aborting compilation.
func (c *Compiler) CompileObject(obj *ObjectMetadata) *ObjectContract {
	contract := &ObjectContract{
		NameSingular:  obj.NameSingular,
		NamePlural:    obj.NamePlural,
		LabelSingular: obj.LabelSingular,
		LabelPlural:   obj.LabelPlural,
		Description:   obj.Description,
		Properties:    make(map[string]any),
		Kinds:         make(map[string]FieldKind),
	}

	for _, field := range obj.Fields {
		if !field.IsActive || field.IsSystem {
			continue
		}
		if field.Type == KindRelation {
			c.compileRelation(contract, field)
			continue
		}
		contract.Properties[field.Name] = c.compileField(field)
		contract.Kinds[field.Name] = field.Type
		if c.isRequired(field) {
			contract.Required = append(contract.Required, field.Name)
		}
	}

	// Relation aliases are injected after declared fields so a declared
	// property always wins an alias collision.
	for _, rel := range contract.Relations {
		if _, exists := contract.Properties[rel.Alias]; exists {
			continue
		}
		prop := relationStructuralType(rel.Cardinality)
		if rel.TargetObject != "" {
			if rel.Cardinality == CardinalityMultiple {
				prop["description"] = rel.TargetObject + " record ids"
			} else {
				prop["description"] = rel.TargetObject + " record id"
			}
		}
		contract.Properties[rel.Alias] = prop
	}
	return contract
}

func (c *Compiler) compileField(field FieldMetadata) map[string]any {
	prop := StructuralType(field.Type)
	if field.Description != "" {
		prop["description"] = field.Description
	} else if field.Label != "" {
		prop["description"] = field.Label
	}
	if len(field.Options) > 0 {
		values := make([]string, 0, len(field.Options))
		for _, opt := range field.Options {
			values = append(values, opt.Value)
		}
		if field.Type == KindMultiSelect {
			if items, ok := prop["items"].(map[string]any); ok {
				items["enum"] = values
			}
		} else {
			prop["enum"] = values
		}
	}
	if def, ok := NormalizeDefault(field.DefaultValue); ok {
		prop["default"] = def
	}
	return prop
}

func (c *Compiler) compileRelation(contract *ObjectContract, field FieldMetadata) {
	if field.Relation == nil {
		c.log.Debug().Str("object", contract.NameSingular).Str("field", field.Name).
			Msg("Relation field without relation metadata, skipping")
		return
	}
	cardinality, ok := cardinalityFromRelationType(field.Relation.RelationType)
	if !ok {
		c.log.Debug().Str("object", contract.NameSingular).Str("field", field.Name).
			Str("relation_type", field.Relation.RelationType).
			Msg("Unrecognized relation type, skipping field")
		return
	}
	rel := Relation{
		FieldName:    field.Name,
		TargetObject: field.Relation.Target.NameSingular,
		Cardinality:  cardinality,
		Alias:        DeriveAlias(field.Name, cardinality),
	}
	contract.Relations = append(contract.Relations, rel)

	prop := relationStructuralType(cardinality)
	if field.Description != "" {
		prop["description"] = field.Description
	} else if field.Label != "" {
		prop["description"] = field.Label
	}
	contract.Properties[field.Name] = prop
	contract.Kinds[field.Name] = KindRelation
	if c.isRequired(field) {
		contract.Required = append(contract.Required, field.Name)
	}
}

// isRequired applies the contract-level required rule: non-nullable with no
// surfaced default.
func (c *Compiler) isRequired(field FieldMetadata) bool {
	if field.IsNullable {
		return false
	}
	_, hasDefault := NormalizeDefault(field.DefaultValue)
	return !hasDefault
}

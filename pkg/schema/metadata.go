// Package schema compiles the Twenty metadata export into per-object
// contracts: JSON schema properties, required sets, and relation descriptors.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// FieldOption is one entry of a SELECT / MULTI_SELECT option list.
type FieldOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Position int    `json:"position"`
	Color    string `json:"color"`
}

// RelationTarget identifies the object on the far side of a relation.
type RelationTarget struct {
	NameSingular string `json:"nameSingular"`
	NamePlural   string `json:"namePlural"`
}

// RelationDefinition is the raw relation metadata attached to RELATION fields.
type RelationDefinition struct {
	RelationType string         `json:"relationType"`
	Target       RelationTarget `json:"targetObjectMetadata"`
}

// FieldMetadata is one raw schema field as exported by the metadata API.
// Immutable once loaded.
type FieldMetadata struct {
	Name         string              `json:"name"`
	Label        string              `json:"label"`
	Description  string              `json:"description"`
	Type         FieldKind           `json:"type"`
	IsActive     bool                `json:"isActive"`
	IsSystem     bool                `json:"isSystem"`
	IsNullable   bool                `json:"isNullable"`
	DefaultValue any                 `json:"defaultValue"`
	Options      []FieldOption       `json:"options"`
	Relation     *RelationDefinition `json:"relationDefinition"`
}

// ObjectMetadata is one raw object record from the metadata export.
type ObjectMetadata struct {
	ID            string          `json:"id"`
	NameSingular  string          `json:"nameSingular"`
	NamePlural    string          `json:"namePlural"`
	LabelSingular string          `json:"labelSingular"`
	LabelPlural   string          `json:"labelPlural"`
	Description   string          `json:"description"`
	IsActive      bool            `json:"isActive"`
	IsSystem      bool            `json:"isSystem"`
	Fields        []FieldMetadata `json:"fields"`
}

// Store holds the loaded metadata catalog plus a name index. No business
// logic lives here; the compiler consumes it read-only.
type Store struct {
	objects []ObjectMetadata
	index   map[string]int
}

// NewStore builds a store and its lookup index from raw object records.
// Objects are indexed by plural, singular, and both labels, lowercased.
// The first object to claim a name keeps it.
func NewStore(objects []ObjectMetadata) *Store {
	s := &Store{objects: objects, index: make(map[string]int)}
	for i, obj := range objects {
		for _, name := range []string{obj.NamePlural, obj.NameSingular, obj.LabelPlural, obj.LabelSingular} {
			key := strings.ToLower(strings.TrimSpace(name))
			if key == "" {
				continue
			}
			if _, ok := s.index[key]; !ok {
				s.index[key] = i
			}
		}
	}
	return s
}

// Lookup resolves an object by any known name, case-insensitive.
// Returns nil on miss; callers treat that as "unsupported object".
func (s *Store) Lookup(name string) *ObjectMetadata {
	if s == nil {
		return nil
	}
	i, ok := s.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return &s.objects[i]
}

// Active returns the active, non-system objects in export order.
func (s *Store) Active() []ObjectMetadata {
	if s == nil {
		return nil
	}
	var out []ObjectMetadata
	for _, obj := range s.objects {
		if obj.IsActive && !obj.IsSystem {
			out = append(out, obj)
		}
	}
	return out
}

// Len reports the number of loaded objects.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.objects)
}

// LoadStore reads the object/field metadata catalog from disk. The document
// may be a bare array of objects or wrapped under "objects" or
// "data.objects". Decoding uses JSON5 so hand-maintained exports with
// comments or trailing commas still load; strict JSON is a subset.
func LoadStore(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata catalog: %w", err)
	}
	objects, err := decodeObjects(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata catalog %s: %w", path, err)
	}
	return NewStore(objects), nil
}

func decodeObjects(raw []byte) ([]ObjectMetadata, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var objects []ObjectMetadata
		if err := json5.Unmarshal(trimmed, &objects); err != nil {
			return nil, err
		}
		return objects, nil
	}
	var wrapper struct {
		Objects []ObjectMetadata `json:"objects"`
		Data    struct {
			Objects []ObjectMetadata `json:"objects"`
		} `json:"data"`
	}
	if err := json5.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper.Objects) > 0 {
		return wrapper.Objects, nil
	}
	return wrapper.Data.Objects, nil
}

// Operation is one entry of the introspection-style operation catalog.
type Operation struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Object      string `json:"object,omitempty"`
	Description string `json:"description,omitempty"`
}

// OperationCatalog holds the optional operation listing loaded alongside the
// metadata catalog. A missing catalog file yields an empty, usable catalog.
type OperationCatalog struct {
	Operations []Operation
}

// LoadOperationCatalog reads the operation catalog from disk. A missing file
// is tolerated: operation-listing calls then report empty rather than
// failing compilation.
func LoadOperationCatalog(path string) (*OperationCatalog, error) {
	if path == "" {
		return &OperationCatalog{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &OperationCatalog{}, nil
		}
		return nil, fmt.Errorf("failed to read operation catalog: %w", err)
	}
	ops, err := decodeOperations(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse operation catalog %s: %w", path, err)
	}
	return &OperationCatalog{Operations: ops}, nil
}

func decodeOperations(raw []byte) ([]Operation, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var ops []Operation
		if err := json5.Unmarshal(trimmed, &ops); err != nil {
			return nil, err
		}
		return ops, nil
	}
	var wrapper struct {
		Operations []Operation `json:"operations"`
	}
	if err := json5.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Operations, nil
}

// Filter returns catalog entries matching the given constraints. Empty kind
// and substring match everything; limit <= 0 means no limit.
func (c *OperationCatalog) Filter(kind, contains string, limit int) []Operation {
	if c == nil {
		return nil
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	contains = strings.ToLower(strings.TrimSpace(contains))
	var out []Operation
	for _, op := range c.Operations {
		if kind != "" && strings.ToLower(op.Kind) != kind {
			continue
		}
		if contains != "" && !strings.Contains(strings.ToLower(op.Name), contains) {
			continue
		}
		out = append(out, op)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// MarshalJSON keeps the catalog's wire form stable as a bare operation list.
func (c *OperationCatalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Operations)
}

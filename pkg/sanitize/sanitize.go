// Package sanitize normalizes arbitrary caller payloads into the shape the
// CRM REST API accepts: relation fields collapse onto their flat identifier
// aliases and complex scalars are coerced to their canonical object forms.
package sanitize

import (
	"github.com/rs/zerolog"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/schema"
)

// Sanitizer applies per-contract payload normalization.
type Sanitizer struct {
	log zerolog.Logger
}

// New creates a sanitizer.
func New(log zerolog.Logger) *Sanitizer {
	return &Sanitizer{log: log.With().Str("component", "sanitizer").Logger()}
}

// Sanitize returns a normalized copy of payload for the given contract.
// Relation fields are emitted under their alias only; LINKS fields are
// coerced; an id key is always stripped, since identifiers travel in
// the operation's addressing, never in a mutable body. Best-effort: values
// the sanitizer does not recognize pass through unchanged.
func (s *Sanitizer) Sanitize(payload map[string]any, contract *schema.ObjectContract) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		if key == "id" {
			continue
		}
		rel := contract.RelationByField(key)
		if rel == nil {
			rel = contract.RelationByAlias(key)
		}
		if rel != nil {
			s.applyRelation(out, rel, key, value)
			continue
		}
		if contract.FieldKind(key) == schema.KindLinks {
			out[key] = NormalizeLink(value)
			continue
		}
		out[key] = value
	}
	delete(out, "id")
	return out
}

func (s *Sanitizer) applyRelation(out map[string]any, rel *schema.Relation, key string, value any) {
	if rel.Cardinality == schema.CardinalityMultiple {
		switch rv := classifyMultiple(value); rv.Kind {
		case RelationEmptyList:
			out[rel.Alias] = []string{}
		case RelationIDList:
			out[rel.Alias] = rv.IDs
		default:
			// Non-empty input with zero usable ids: omitted, not cleared.
			s.log.Debug().Str("field", key).Str("alias", rel.Alias).
				Msg("Dropping relation value with no usable ids")
		}
		return
	}
	switch rv := classifySingle(value); rv.Kind {
	case RelationNull:
		out[rel.Alias] = nil
	case RelationID:
		out[rel.Alias] = rv.ID
	default:
		s.log.Debug().Str("field", key).Str("alias", rel.Alias).
			Msg("Dropping unusable relation value")
	}
}

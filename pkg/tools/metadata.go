package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func listObjectsTool(deps Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        "list_objects",
			Description: "List every CRM object type currently available, with names and labels.",
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		},
		Kind: KindMetadata,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			snap := deps.Registry.Current()
			summaries := make([]map[string]any, 0, snap.Len())
			for _, c := range snap.Contracts() {
				summaries = append(summaries, map[string]any{
					"nameSingular":  c.NameSingular,
					"namePlural":    c.NamePlural,
					"labelSingular": c.LabelSingular,
					"labelPlural":   c.LabelPlural,
					"fields":        len(c.Properties),
					"relations":     len(c.Relations),
				})
			}
			return SuccessResult(fmt.Sprintf("%d objects available", len(summaries)), map[string]any{
				"objects":      summaries,
				"fromFallback": snap.FromFallback(),
			})
		},
	}
}

func describeObjectTool(deps Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        "describe_object",
			Description: "Show the compiled schema of one CRM object: properties, required fields, and relations.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"object": map[string]any{"type": "string", "description": "Object name (singular, plural, or label)"},
				},
				"required": []string{"object"},
			},
		},
		Kind: KindMetadata,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			name, err := ReadString(args, "object", true)
			if err != nil {
				return ResolutionError("%v", err)
			}
			contract := resolveContract(deps, name)
			if contract == nil {
				return ResolutionError("unknown object %q", name)
			}
			return SuccessResult(fmt.Sprintf("Schema for %s", contract.NamePlural), contract)
		},
	}
}

func listOperationsTool(deps Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        "list_operations",
			Description: "List backend operations from the introspection catalog, filterable by kind and name substring.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"kind":     map[string]any{"type": "string", "description": "Operation kind, e.g. query or mutation"},
					"contains": map[string]any{"type": "string", "description": "Substring the operation name must contain"},
					"limit":    map[string]any{"type": "number", "description": "Maximum entries to return"},
				},
			},
		},
		Kind: KindMetadata,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			kind, _ := ReadString(args, "kind", false)
			contains, _ := ReadString(args, "contains", false)
			limit := ReadIntDefault(args, "limit", 0)

			// Keep the catalog in step with the registry sources.
			deps.Registry.Current()
			ops := deps.Registry.Catalog().Filter(kind, contains, limit)
			return SuccessResult(fmt.Sprintf("%d operations", len(ops)), map[string]any{"operations": ops})
		},
	}
}

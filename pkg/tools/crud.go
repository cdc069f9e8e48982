package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/normalize"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/schema"
)

const (
	defaultListLimit  = 20
	defaultListOffset = 0
)

func createTool(deps Deps, contract *schema.ObjectContract) *Tool {
	plural := contract.NamePlural
	return &Tool{
		Tool: mcp.Tool{
			Name:        "create_" + toSnake(contract.NameSingular),
			Description: fmt.Sprintf("Create a new %s record.", contract.LabelOrSingular()),
			InputSchema: map[string]any{
				"type":       "object",
				"properties": contract.WritableProperties(),
				"required":   contract.WritableRequired(),
			},
		},
		Kind:   KindCreate,
		Object: plural,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			c := resolveContract(deps, plural)
			if c == nil {
				return ResolutionError("unknown object %q", plural)
			}
			body := deps.Sanitizer.Sanitize(args, c)
			decoded, _, err := deps.Client.RequestJSON(ctx, http.MethodPost, restEndpoint(c), body)
			if err != nil {
				return TransportError(err)
			}
			return SuccessResult(fmt.Sprintf("Created %s record", c.NameSingular), decoded)
		},
	}
}

func getTool(deps Deps, contract *schema.ObjectContract) *Tool {
	plural := contract.NamePlural
	return &Tool{
		Tool: mcp.Tool{
			Name:        "get_" + toSnake(contract.NameSingular),
			Description: fmt.Sprintf("Fetch one %s record by id.", contract.LabelOrSingular()),
			InputSchema: idOnlySchema(),
		},
		Kind:   KindGet,
		Object: plural,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			c, id, res := resolveWithID(deps, plural, args)
			if res != nil {
				return res
			}
			decoded, _, err := deps.Client.RequestJSON(ctx, http.MethodGet, restEndpoint(c)+"/"+url.PathEscape(id), nil)
			if err != nil {
				return TransportError(err)
			}
			return SuccessResult(fmt.Sprintf("Fetched %s %s", c.NameSingular, id), decoded)
		},
	}
}

func updateTool(deps Deps, contract *schema.ObjectContract) *Tool {
	plural := contract.NamePlural
	properties := contract.WritableProperties()
	properties["id"] = map[string]any{"type": "string", "description": "Record id to update"}
	return &Tool{
		Tool: mcp.Tool{
			Name:        "update_" + toSnake(contract.NameSingular),
			Description: fmt.Sprintf("Update an existing %s record.", contract.LabelOrSingular()),
			InputSchema: map[string]any{
				"type":       "object",
				"properties": properties,
				"required":   []string{"id"},
			},
		},
		Kind:   KindUpdate,
		Object: plural,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			c, id, res := resolveWithID(deps, plural, args)
			if res != nil {
				return res
			}
			body := deps.Sanitizer.Sanitize(args, c)
			decoded, _, err := deps.Client.RequestJSON(ctx, http.MethodPatch, restEndpoint(c)+"/"+url.PathEscape(id), body)
			if err != nil {
				return TransportError(err)
			}
			return SuccessResult(fmt.Sprintf("Updated %s %s", c.NameSingular, id), decoded)
		},
	}
}

func listTool(deps Deps, contract *schema.ObjectContract) *Tool {
	plural := contract.NamePlural
	return &Tool{
		Tool: mcp.Tool{
			Name:        "list_" + toSnake(plural),
			Description: fmt.Sprintf("List %s records with optional search and filters.", contract.LabelOrSingular()),
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit":   map[string]any{"type": "number", "default": defaultListLimit},
					"offset":  map[string]any{"type": "number", "default": defaultListOffset},
					"search":  map[string]any{"type": "string", "description": "Free-text search"},
					"filters": map[string]any{"type": "object", "description": "Field filters"},
				},
			},
		},
		Kind:   KindList,
		Object: plural,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			c := resolveContract(deps, plural)
			if c == nil {
				return ResolutionError("unknown object %q", plural)
			}
			return executeList(ctx, deps, c, args)
		},
	}
}

func deleteTool(deps Deps, contract *schema.ObjectContract) *Tool {
	plural := contract.NamePlural
	return &Tool{
		Tool: mcp.Tool{
			Name:        "delete_" + toSnake(contract.NameSingular),
			Description: fmt.Sprintf("Delete one %s record by id.", contract.LabelOrSingular()),
			InputSchema: idOnlySchema(),
		},
		Kind:   KindDelete,
		Object: plural,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			c, id, res := resolveWithID(deps, plural, args)
			if res != nil {
				return res
			}
			decoded, _, err := deps.Client.RequestJSON(ctx, http.MethodDelete, restEndpoint(c)+"/"+url.PathEscape(id), nil)
			if err != nil {
				return TransportError(err)
			}
			return SuccessResult(fmt.Sprintf("Deleted %s %s", c.NameSingular, id), decoded)
		},
	}
}

// executeList issues the collection call and flattens heterogeneous
// pagination shapes. Responses without a recognizable record array are
// surfaced raw.
func executeList(ctx context.Context, deps Deps, c *schema.ObjectContract, args map[string]any) *Result {
	query := url.Values{}
	query.Set("limit", fmt.Sprintf("%d", ReadIntDefault(args, "limit", defaultListLimit)))
	query.Set("offset", fmt.Sprintf("%d", ReadIntDefault(args, "offset", defaultListOffset)))
	if search, _ := ReadString(args, "search", false); search != "" {
		query.Set("search", search)
	}
	filters, err := ReadMap(args, "filters", false)
	if err != nil {
		return ResolutionError("invalid filters: %v", err)
	}
	if len(filters) > 0 {
		encoded, err := encodeFilters(filters)
		if err != nil {
			return ResolutionError("invalid filters: %v", err)
		}
		query.Set("filter", encoded)
	}

	decoded, _, err := deps.Client.RequestJSON(ctx, http.MethodGet, restEndpoint(c)+"?"+query.Encode(), nil)
	if err != nil {
		return TransportError(err)
	}
	if normalized, ok := normalize.Normalize(decoded); ok {
		return SuccessResult(fmt.Sprintf("Listed %d %s", len(normalized.Items), c.NamePlural), normalized)
	}
	return SuccessResult(fmt.Sprintf("Listed %s", c.NamePlural), decoded)
}

func encodeFilters(filters map[string]any) (string, error) {
	encoded, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func idOnlySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{"type": "string", "description": "Record id"},
		},
		"required": []string{"id"},
	}
}

// resolveWithID resolves the contract and the required id argument, or
// returns a resolution error result. Both failures abort before any network
// call.
func resolveWithID(deps Deps, plural string, args map[string]any) (*schema.ObjectContract, string, *Result) {
	c := resolveContract(deps, plural)
	if c == nil {
		return nil, "", ResolutionError("unknown object %q", plural)
	}
	id, err := ReadString(args, "id", true)
	if err != nil {
		return nil, "", ResolutionError("%v", err)
	}
	if id == "" {
		return nil, "", ResolutionError("parameter %q is required", "id")
	}
	return c, id, nil
}

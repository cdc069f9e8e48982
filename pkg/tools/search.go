package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/normalize"
)

const defaultSearchLimit = 10

// searchWeights rank objects in multi-object search results. People and
// companies are what a query usually means; auxiliary objects trail.
var searchWeights = map[string]float64{
	"people":        1.0,
	"companies":     0.9,
	"opportunities": 0.8,
	"notes":         0.7,
	"tasks":         0.6,
}

const defaultSearchWeight = 0.5

type searchHit struct {
	Object string  `json:"object"`
	Score  float64 `json:"score"`
	Record any     `json:"record"`
}

func searchTool(deps Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        "search_records",
			Description: "Search across multiple CRM object types at once and return weighted, merged results.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Free-text search query"},
					"objects": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"description": "Object types to search; defaults to all registered objects",
					},
					"limit": map[string]any{"type": "number", "default": defaultSearchLimit},
				},
				"required": []string{"query"},
			},
		},
		Kind: KindSearch,
		Execute: func(ctx context.Context, args map[string]any) *Result {
			query, err := ReadString(args, "query", true)
			if err != nil {
				return ResolutionError("%v", err)
			}
			limit := ReadIntDefault(args, "limit", defaultSearchLimit)

			snap := deps.Registry.Current()
			targets := ReadStringSlice(args, "objects")
			if len(targets) == 0 {
				targets = snap.PluralKeys()
			}

			var hits []searchHit
			searchErrors := make(map[string]string)
			for _, name := range targets {
				contract := snap.Resolve(name)
				if contract == nil {
					searchErrors[name] = "unknown object"
					continue
				}
				records, err := searchOne(ctx, deps, contract.NamePlural, query, limit)
				if err != nil {
					// Per-object failures degrade the result instead of
					// aborting the whole search.
					searchErrors[contract.NamePlural] = err.Error()
					continue
				}
				weight, ok := searchWeights[contract.NamePlural]
				if !ok {
					weight = defaultSearchWeight
				}
				for i, record := range records {
					hits = append(hits, searchHit{
						Object: contract.NamePlural,
						Score:  weight * (1 - float64(i)/float64(len(records)+1)),
						Record: record,
					})
				}
			}

			sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
			if limit > 0 && len(hits) > limit {
				hits = hits[:limit]
			}

			payload := map[string]any{"results": hits}
			if len(searchErrors) > 0 {
				payload["errors"] = searchErrors
			}
			return SuccessResult(fmt.Sprintf("%d results for %q", len(hits), query), payload)
		},
	}
}

func searchOne(ctx context.Context, deps Deps, plural, query string, limit int) ([]any, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", fmt.Sprintf("%d", limit))
	decoded, _, err := deps.Client.RequestJSON(ctx, http.MethodGet, "/rest/"+plural+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if normalized, ok := normalize.Normalize(decoded); ok {
		return normalized.Items, nil
	}
	return nil, nil
}

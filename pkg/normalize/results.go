// Package normalize flattens the heterogeneous pagination shapes the CRM
// returns for list and search calls into one record list + summary form.
package normalize

import (
	"strconv"

	"go.mau.fi/util/ptr"
)

// Summary condenses the pagination facts a caller usually wants.
type Summary struct {
	Total       *float64 `json:"total,omitempty"`
	HasNextPage *bool    `json:"hasNextPage,omitempty"`
}

// Result is a normalized list response. Raw always carries the original
// response so nothing is lost in translation.
type Result struct {
	Items      []any          `json:"items"`
	Summary    *Summary       `json:"summary,omitempty"`
	Pagination map[string]any `json:"pagination,omitempty"`
	Raw        any            `json:"raw,omitempty"`
}

// recordKeys are probed in order when the response is not itself an array.
var recordKeys = []string{"data", "items", "records"}

// topLevelPaginationKeys are collected into a synthesized pagination object
// when neither pageInfo nor meta is present.
var topLevelPaginationKeys = []string{
	"nextCursor", "prevCursor", "hasNextPage", "hasPreviousPage", "total", "totalCount",
}

// Normalize extracts the record list and pagination summary from an API
// response regardless of its shape. The boolean is false when no record
// array was found anywhere; callers then surface the raw response
// unmodified, with no synthetic wrapper.
func Normalize(raw any) (*Result, bool) {
	if items, ok := raw.([]any); ok {
		return &Result{Items: items, Raw: raw}, true
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}

	var items []any
	found := false
	for _, key := range recordKeys {
		if arr, ok := obj[key].([]any); ok {
			items = arr
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	return &Result{
		Items:      items,
		Summary:    extractSummary(obj),
		Pagination: extractPagination(obj),
		Raw:        raw,
	}, true
}

func extractPagination(obj map[string]any) map[string]any {
	if pageInfo, ok := obj["pageInfo"].(map[string]any); ok {
		return pageInfo
	}
	if meta, ok := obj["meta"].(map[string]any); ok {
		for _, key := range []string{"pagination", "page", "total", "count"} {
			if _, present := meta[key]; present {
				return meta
			}
		}
	}
	synthesized := make(map[string]any)
	for _, key := range topLevelPaginationKeys {
		if v, present := obj[key]; present {
			synthesized[key] = v
		}
	}
	if len(synthesized) == 0 {
		return nil
	}
	return synthesized
}

func extractSummary(obj map[string]any) *Summary {
	summary := &Summary{}
	sources := []map[string]any{obj}
	if pageInfo, ok := obj["pageInfo"].(map[string]any); ok {
		sources = append(sources, pageInfo)
	}
	if meta, ok := obj["meta"].(map[string]any); ok {
		sources = append(sources, meta)
	}

	for _, src := range sources {
		if summary.Total == nil {
			for _, key := range []string{"totalCount", "total", "totalItems", "count"} {
				if n, ok := asNumber(src[key]); ok {
					summary.Total = ptr.Ptr(n)
					break
				}
			}
		}
		if summary.HasNextPage == nil {
			if b, ok := src["hasNextPage"].(bool); ok {
				summary.HasNextPage = ptr.Ptr(b)
			} else if b, ok := src["hasMore"].(bool); ok {
				summary.HasNextPage = ptr.Ptr(b)
			} else if cursor, present := src["nextCursor"]; present {
				summary.HasNextPage = ptr.Ptr(truthy(cursor))
			}
		}
	}

	if summary.Total == nil && summary.HasNextPage == nil {
		return nil
	}
	return summary
}

// asNumber accepts the count encodings seen in the wild: JSON numbers and
// numeric strings.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

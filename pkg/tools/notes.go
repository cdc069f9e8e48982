package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tidwall/gjson"
)

// linkTargetFields are the identifier fields a link target may contribute,
// besides the note id itself.
var linkTargetFields = []string{"personId", "companyId", "workspaceMemberId"}

func noteWithLinksTool(deps Deps) *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name: "create_note_with_links",
			Description: "Create a note and link it to a person, optionally a company, " +
				"and any number of additional targets, in one operation.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"note":      map[string]any{"type": "object", "description": "Note payload, e.g. {\"title\": ...}"},
					"personId":  map[string]any{"type": "string", "description": "Person record to link the note to"},
					"companyId": map[string]any{"type": "string", "description": "Optional company record to link"},
					"targets": map[string]any{
						"type":        "array",
						"description": "Additional link targets",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"personId":          map[string]any{"type": "string"},
								"companyId":         map[string]any{"type": "string"},
								"workspaceMemberId": map[string]any{"type": "string"},
							},
						},
					},
				},
				"required": []string{"note", "personId"},
			},
		},
		Kind:   KindComposite,
		Object: "notes",
		Execute: func(ctx context.Context, args map[string]any) *Result {
			return executeNoteWithLinks(ctx, deps, args)
		},
	}
}

// executeNoteWithLinks is a state-free multi-step orchestration: create the
// note, resolve its id, then submit the deduplicated link requests
// sequentially. A link failure aborts the remaining loop but never rolls
// back the already-created note.
func executeNoteWithLinks(ctx context.Context, deps Deps, args map[string]any) *Result {
	note, err := ReadMap(args, "note", true)
	if err != nil {
		return ResolutionError("%v", err)
	}
	personID, err := ReadString(args, "personId", true)
	if err != nil {
		return ResolutionError("%v", err)
	}
	if personID == "" {
		return ResolutionError("parameter %q is required", "personId")
	}
	companyID, _ := ReadString(args, "companyId", false)

	snap := deps.Registry.Current()
	notesContract := snap.Resolve("notes")
	joinContract := snap.Resolve("noteTargets")
	if notesContract == nil || joinContract == nil {
		return ResolutionError("note linking is unavailable: notes or noteTargets object is not registered")
	}

	body := deps.Sanitizer.Sanitize(note, notesContract)
	_, raw, err := deps.Client.RequestJSON(ctx, http.MethodPost, restEndpoint(notesContract), body)
	if err != nil {
		return TransportError(err)
	}
	noteID := extractRecordID(raw)
	if noteID == "" {
		return ResolutionError("could not resolve the created note's id from the response")
	}

	requests := buildLinkRequests(noteID, personID, companyID, args["targets"])
	links := make([]map[string]any, 0, len(requests))
	for _, request := range requests {
		_, linkRaw, err := deps.Client.RequestJSON(ctx, http.MethodPost, restEndpoint(joinContract), request)
		if err != nil {
			result := TransportError(err)
			result.Message = fmt.Sprintf("note %s created, but linking failed: %s", noteID, result.Message)
			result.Payload = map[string]any{"noteId": noteID, "links": links}
			return result
		}
		entry := map[string]any{"request": request}
		if linkID := extractRecordID(linkRaw); linkID != "" {
			entry["id"] = linkID
		} else {
			// Non-fatal: surface the raw payload when no id resolves.
			var decoded any
			if json.Unmarshal(linkRaw, &decoded) == nil {
				entry["response"] = decoded
			}
		}
		links = append(links, entry)
	}

	return SuccessResult(
		fmt.Sprintf("Created note %s with %d links", noteID, len(links)),
		map[string]any{"noteId": noteID, "links": links},
	)
}

// buildLinkRequests assembles the deduplicated, ordered link request set:
// always note+person, then note+company when given, then one request per
// usable extra target. Deduplication keys on the request's sorted key-value
// pairs.
func buildLinkRequests(noteID, personID, companyID string, rawTargets any) []map[string]any {
	var requests []map[string]any
	seen := make(map[string]struct{})

	add := func(req map[string]any) {
		key := dedupKey(req)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		requests = append(requests, req)
	}

	add(map[string]any{"noteId": noteID, "personId": personID})
	if companyID != "" {
		add(map[string]any{"noteId": noteID, "companyId": companyID})
	}

	targets, _ := rawTargets.([]any)
	for _, rawTarget := range targets {
		target, ok := rawTarget.(map[string]any)
		if !ok {
			continue
		}
		req := map[string]any{"noteId": noteID}
		for _, field := range linkTargetFields {
			if v, _ := ReadString(target, field, false); v != "" {
				req[field] = v
			}
		}
		// A target must contribute at least one field besides the note id.
		if len(req) > 1 {
			add(req)
		}
	}
	return requests
}

func dedupKey(req map[string]any) string {
	pairs := make([]string, 0, len(req))
	for k, v := range req {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}

// extractRecordID resolves a created record's id from a raw response body:
// direct id first, then data.id, then record.id, recursing into arrays by
// taking the first resolvable element.
func extractRecordID(raw []byte) string {
	return findRecordID(gjson.ParseBytes(raw))
}

func findRecordID(v gjson.Result) string {
	if v.IsArray() {
		for _, element := range v.Array() {
			if id := findRecordID(element); id != "" {
				return id
			}
		}
		return ""
	}
	if !v.IsObject() {
		return ""
	}
	if id := v.Get("id"); id.Exists() {
		if id.Type == gjson.String && id.Str != "" {
			return id.Str
		}
		if id.Type == gjson.Number {
			return id.String()
		}
	}
	for _, key := range []string{"data", "record"} {
		if nested := v.Get(key); nested.Exists() {
			if id := findRecordID(nested); id != "" {
				return id
			}
		}
	}
	return ""
}

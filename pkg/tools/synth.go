package tools

import (
	"context"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/registry"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/sanitize"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/schema"
)

// Transport is the slice of the REST client the tools need.
type Transport interface {
	RequestJSON(ctx context.Context, method, endpoint string, body any) (any, []byte, error)
}

// Deps bundles the collaborators every synthesized tool executes against.
// Executors resolve contracts through the registry at call time, so a
// registry rebuild between synthesis and execution is always honored.
type Deps struct {
	Client    Transport
	Registry  *registry.Builder
	Sanitizer *sanitize.Sanitizer
	Log       zerolog.Logger
}

// Synthesize projects the snapshot's contracts into the full tool set:
// five CRUD tools per object plus the cross-cutting metadata and search
// tools. The composite note-linking tool is only emitted when both the
// notes and noteTargets contracts are registered.
func Synthesize(deps Deps, snap *registry.Snapshot) []*Tool {
	var out []*Tool
	for _, contract := range snap.Contracts() {
		out = append(out,
			createTool(deps, contract),
			getTool(deps, contract),
			updateTool(deps, contract),
			listTool(deps, contract),
			deleteTool(deps, contract),
		)
	}
	out = append(out,
		listObjectsTool(deps),
		describeObjectTool(deps),
		listOperationsTool(deps),
		searchTool(deps),
	)
	if snap.Resolve("notes") != nil && snap.Resolve("noteTargets") != nil {
		out = append(out, noteWithLinksTool(deps))
	}
	return out
}

// resolveContract looks an object up in the live snapshot, triggering a
// rebuild when the metadata source went stale.
func resolveContract(deps Deps, name string) *schema.ObjectContract {
	return deps.Registry.Current().Resolve(name)
}

// restEndpoint returns the collection endpoint for a contract.
func restEndpoint(contract *schema.ObjectContract) string {
	return "/rest/" + contract.NamePlural
}

// toSnake converts a camelCase object name to snake_case for tool names,
// e.g. noteTarget -> note_target.
func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package server wires the schema registry, REST client, and synthesized
// tools into an MCP server speaking stdio.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/robfig/cron/v3"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/config"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/registry"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/sanitize"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/tools"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/twenty"
)

const serverName = "twenty-crm-mcp-server"

// Server owns the MCP session and keeps the published tool set in step
// with the compiled schema registry.
type Server struct {
	cfg     *config.Config
	log     zerolog.Logger
	mcp     *mcp.Server
	builder *registry.Builder
	tools   *tools.Registry
	deps    tools.Deps
	cron    *cron.Cron
	version string
}

// New assembles a server from config. It compiles the initial registry
// snapshot (falling back to the embedded contract set when the metadata
// source is unusable) and publishes the synthesized tools.
func New(cfg *config.Config, version string, log zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := twenty.NewClient(twenty.Options{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		TimeoutSecs: cfg.TimeoutSecs,
		Log:         log,
	})

	builder := registry.NewBuilder(cfg.MetadataPath, cfg.OperationsPath, log)
	deps := tools.Deps{
		Client:    client,
		Registry:  builder,
		Sanitizer: sanitize.New(log),
		Log:       log,
	}

	s := &Server{
		cfg:     cfg,
		log:     log.With().Str("component", "server").Logger(),
		builder: builder,
		tools:   tools.NewRegistry(),
		deps:    deps,
		version: version,
	}
	s.mcp = mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, &mcp.ServerOptions{
		Instructions: "Tools for the Twenty CRM: per-object create/get/update/list/delete, " +
			"schema introspection, cross-object search, and note linking.",
	})

	snap := builder.Rebuild()
	s.syncTools(snap)

	if cfg.RefreshEnabled() {
		s.cron = cron.New()
		_, err := s.cron.AddFunc(cfg.Refresh.Cron, s.refresh)
		if err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", cfg.Refresh.Cron, err)
		}
	}
	return s, nil
}

// Run serves MCP over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	if s.cron != nil {
		s.cron.Start()
		defer s.cron.Stop()
	}
	s.log.Info().
		Str("version", s.version).
		Int("tools", s.tools.Len()).
		Bool("fallback_schema", s.builder.Snapshot().FromFallback()).
		Msg("serving MCP over stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// refresh rebuilds the registry and republishes the tool set. Executors
// already resolve contracts per call; this keeps the advertised tool list
// itself current on long-running sessions.
func (s *Server) refresh() {
	snap := s.builder.Current()
	s.syncTools(snap)
}

// syncTools publishes the synthesized tool set for a snapshot, retracting
// tools whose objects disappeared. AddTool replaces by name, so surviving
// tools are updated in place.
func (s *Server) syncTools(snap *registry.Snapshot) {
	synthesized := tools.Synthesize(s.deps, snap)
	removed := s.tools.Replace(synthesized)
	if len(removed) > 0 {
		s.mcp.RemoveTools(removed...)
		s.log.Info().Strs("tools", removed).Msg("retracted tools for removed objects")
	}
	for _, tool := range synthesized {
		s.mcp.AddTool(&tool.Tool, s.handler(tool))
	}
	s.log.Debug().
		Int("tools", len(synthesized)).
		Int("objects", snap.Len()).
		Bool("fallback", snap.FromFallback()).
		Msg("tool set synchronized")
}

// handler adapts a tool executor to the MCP call surface. Tool failures
// become error results on the wire, never transport errors.
func (s *Server) handler(tool *tools.Tool) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := xid.New().String()
		log := s.log.With().Str("call_id", callID).Str("tool", tool.Name).Logger()

		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			log.Warn().Err(err).Msg("unreadable tool arguments")
			return errorCallResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		start := time.Now()
		result := tool.Execute(ctx, args)
		log.Debug().
			Dur("duration", time.Since(start)).
			Bool("error", result.IsError()).
			Msg("tool call finished")

		encoded, err := json.Marshal(result)
		if err != nil {
			log.Error().Err(err).Msg("unencodable tool result")
			return errorCallResult("internal error: result encoding failed"), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(encoded)}},
			IsError: result.IsError(),
		}, nil
	}
}

// decodeArguments tolerates the argument encodings seen across client
// implementations: raw JSON bytes, an already-decoded object, or nothing.
func decodeArguments(v any) (map[string]any, error) {
	switch args := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return args, nil
	case json.RawMessage:
		return unmarshalArguments([]byte(args))
	case []byte:
		return unmarshalArguments(args)
	default:
		return nil, fmt.Errorf("unsupported arguments type %T", v)
	}
}

func unmarshalArguments(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func errorCallResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

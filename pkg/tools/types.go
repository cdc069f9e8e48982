// Package tools projects compiled object contracts into MCP tool
// descriptors and implements their execution against the CRM REST API.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Kind categorizes tools by the operation they perform.
type Kind string

const (
	KindCreate    Kind = "create"
	KindGet       Kind = "get"
	KindUpdate    Kind = "update"
	KindList      Kind = "list"
	KindDelete    Kind = "delete"
	KindMetadata  Kind = "metadata"
	KindSearch    Kind = "search"
	KindComposite Kind = "composite"
)

// Tool wraps an MCP tool descriptor with its execution logic and the object
// it operates on.
type Tool struct {
	mcp.Tool      // Name, Description, InputSchema
	Kind     Kind // create, get, update, list, delete, metadata, search, composite
	Object   string
	Execute  func(ctx context.Context, args map[string]any) *Result
}

// ResultStatus indicates the outcome of a tool execution.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// Result is the structured outcome returned across the tool boundary.
// Errors never propagate past it: a failed call becomes an error result with
// transport detail and, where applicable, a remediation hint.
type Result struct {
	Status  ResultStatus  `json:"status"`
	Message string        `json:"message,omitempty"`
	Payload any           `json:"payload,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload carries the structured error shape surfaced to the caller.
type ErrorPayload struct {
	Message  string            `json:"message"`
	Status   int               `json:"status,omitempty"`
	Endpoint string            `json:"endpoint,omitempty"`
	Method   string            `json:"method,omitempty"`
	Body     any               `json:"body,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	Hint     string            `json:"hint,omitempty"`
}

// IsError reports whether the result carries an error.
func (r *Result) IsError() bool {
	return r.Status == ResultError
}

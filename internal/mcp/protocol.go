// Package mcp serves the tool registry over the Model Context Protocol, a
// JSON-RPC 2.0 dialect. The same dispatcher backs the HTTP and stdio
// transports.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/JonMunkholm/codemash/internal/conference"
	"github.com/JonMunkholm/codemash/internal/logging"
	"github.com/JonMunkholm/codemash/internal/tools"
)

// Protocol revisions this server speaks, newest first.
var supportedVersions = []string{"2025-06-18", "2025-03-26", "2024-11-05"}

// LatestVersion is offered when the client asks for a revision we do not know.
var LatestVersion = supportedVersions[0]

// Methods.
const (
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized"
	MethodCancelled   = "notifications/cancelled"
	MethodPing        = "ping"
	MethodToolsList   = "tools/list"
	MethodToolsCall   = "tools/call"
)

// Implementation names a protocol peer.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeParams struct {
	ProtocolVersion string         `json:"protocolVersion"`
	ClientInfo      Implementation `json:"clientInfo"`
}

// InitializeResult answers initialize.
type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    Capabilities   `json:"capabilities"`
	ServerInfo      Implementation `json:"serverInfo"`
	Instructions    string         `json:"instructions,omitempty"`
}

// Capabilities advertises the tool feature only.
type Capabilities struct {
	Tools ToolsCapability `json:"tools"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ListToolsResult answers tools/list.
type ListToolsResult struct {
	Tools []tools.Tool `json:"tools"`
}

type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Content is a text content block.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallToolResult answers tools/call. Tool failures are results with IsError
// set, not protocol errors.
type CallToolResult struct {
	Content           []Content       `json:"content"`
	StructuredContent json.RawMessage `json:"structuredContent,omitempty"`
	IsError           bool            `json:"isError,omitempty"`
}

// Server dispatches protocol methods to a tool registry.
type Server struct {
	tools        *tools.Registry
	info         Implementation
	instructions string
}

// NewServer returns a dispatcher for reg.
func NewServer(reg *tools.Registry, info Implementation, instructions string) *Server {
	return &Server{tools: reg, info: info, instructions: instructions}
}

// Dispatch handles one request and returns its result. Errors are always
// *jsonrpc2.Error. Notifications return (nil, nil) unless malformed.
func (s *Server) Dispatch(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case MethodInitialize:
		return s.initialize(ctx, req)
	case MethodPing:
		return struct{}{}, nil
	case MethodToolsList:
		return ListToolsResult{Tools: s.tools.All()}, nil
	case MethodToolsCall:
		return s.callTool(ctx, req)
	}

	if req.Notif {
		logging.FromContext(ctx).Debug("notification", "method", req.Method)
		return nil, nil
	}
	return nil, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeMethodNotFound,
		Message: fmt.Sprintf("method not found: %s", req.Method),
	}
}

func (s *Server) initialize(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	var params initializeParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}

	version := LatestVersion
	if slices.Contains(supportedVersions, params.ProtocolVersion) {
		version = params.ProtocolVersion
	}

	logging.FromContext(ctx).Info("client initialized",
		"client", params.ClientInfo.Name,
		"client_version", params.ClientInfo.Version,
		"protocol_version", version,
	)

	return InitializeResult{
		ProtocolVersion: version,
		Capabilities:    Capabilities{Tools: ToolsCapability{}},
		ServerInfo:      s.info,
		Instructions:    s.instructions,
	}, nil
}

func (s *Server) callTool(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	var params callToolParams
	if err := unmarshalParams(req, &params); err != nil {
		return nil, err
	}
	if params.Name == "" {
		return nil, invalidParams(errors.New("tool name is required"))
	}

	result, err := s.tools.Call(ctx, params.Name, params.Arguments)
	if errors.Is(err, tools.ErrUnknownTool) {
		return nil, invalidParams(err)
	}
	if err != nil {
		return CallToolResult{
			Content: []Content{{Type: "text", Text: conference.FormatUserError(err)}},
			IsError: true,
		}, nil
	}

	return toolResult(result)
}

// toolResult renders a tool value as a JSON text block plus structured
// content. Structured content must be an object, so other values are
// wrapped as {"result": value}.
func toolResult(v any) (CallToolResult, error) {
	text, err := json.Marshal(v)
	if err != nil {
		return CallToolResult{}, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}

	structured := json.RawMessage(text)
	if !bytes.HasPrefix(text, []byte("{")) {
		wrapped, err := json.Marshal(map[string]json.RawMessage{"result": text})
		if err != nil {
			return CallToolResult{}, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
		}
		structured = wrapped
	}

	return CallToolResult{
		Content:           []Content{{Type: "text", Text: string(text)}},
		StructuredContent: structured,
	}, nil
}

func unmarshalParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return nil
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return invalidParams(err)
	}
	return nil
}

func invalidParams(err error) *jsonrpc2.Error {
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
}

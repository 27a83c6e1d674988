package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tickertape-ai/tickertape/internal/config"
	"github.com/tickertape-ai/tickertape/jsonrpc"
)

// Server represents an MCP server that processes JSON-RPC requests against
// a market data provider. The tool catalog is built once at construction
// and never mutated.
type Server struct {
	provider Provider
	logger   *slog.Logger
	cfg      *config.Config
	info     ServerInfo
	tools    []Tool
	handlers map[string]ToolHandler
}

// ServerOption configures a Server
type ServerOption func(*Server) error

// WithProvider sets the market data provider backing the tool catalog
func WithProvider(provider Provider) ServerOption {
	return func(s *Server) error {
		if provider == nil {
			return fmt.Errorf("provider cannot be nil")
		}
		s.provider = provider
		return nil
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}

// WithConfig sets the tool-filtering configuration
func WithConfig(cfg *config.Config) ServerOption {
	return func(s *Server) error {
		if cfg == nil {
			return fmt.Errorf("config cannot be nil")
		}
		s.cfg = cfg
		return nil
	}
}

// WithServerInfo sets the name and version advertised during initialize
func WithServerInfo(name, version string) ServerOption {
	return func(s *Server) error {
		s.info = ServerInfo{Name: name, Version: version}
		return nil
	}
}

// NewServer creates a new MCP server instance
func NewServer(opts ...ServerOption) (*Server, error) {
	s := &Server{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg:    config.DefaultConfig(),
		info:   ServerInfo{Name: "tickertape", Version: "dev"},
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.provider == nil {
		return nil, fmt.Errorf("no provider configured")
	}

	defs := catalog()
	s.tools = make([]Tool, 0, len(defs))
	s.handlers = make(map[string]ToolHandler, len(defs))
	for _, def := range defs {
		if s.cfg.IsToolDisabled(def.Tool.Name) {
			continue
		}
		s.tools = append(s.tools, def.Tool)
		s.handlers[def.Tool.Name] = def.Handler
	}

	return s, nil
}

// Tools returns the enabled tool descriptors in catalog order.
func (s *Server) Tools() []Tool {
	return s.tools
}

var _ jsonrpc.Handler = (*Server)(nil)

// Handle processes a single JSON-RPC request and returns its response.
// Notification methods return nil: no response is to be written.
func (s *Server) Handle(ctx context.Context, request jsonrpc.Request) *jsonrpc.Response {
	if strings.HasPrefix(request.Method, "notifications/") {
		s.logger.Debug("notification received", "method", request.Method)
		return nil
	}

	result, err := s.route(ctx, request)
	if err != nil {
		s.logger.Error("request failed", "method", request.Method, "error", err)
		var rpcErr *jsonrpc.Error
		if !errors.As(err, &rpcErr) {
			rpcErr = jsonrpc.Errorf(jsonrpc.ErrInternal, "%s", err)
		}
		return jsonrpc.NewResponse(request.ID, nil, rpcErr)
	}
	return jsonrpc.NewResponse(request.ID, result, nil)
}

func (s *Server) route(ctx context.Context, request jsonrpc.Request) (jsonrpc.Result, error) {
	switch request.Method {
	case "initialize":
		return s.handleInitialize()
	case "tools/list":
		return s.handleToolsList()
	case "tools/call":
		return s.handleToolsCall(ctx, request.Params)
	default:
		return nil, jsonrpc.Errorf(jsonrpc.ErrInternal, "Unknown method: %s", request.Method)
	}
}

func (s *Server) handleInitialize() (jsonrpc.Result, error) {
	return InitializeResponse{
		ProtocolVersion: Version,
		Capabilities: ServerCapabilities{
			Tools: &ToolsCapability{ListChanged: false},
		},
		ServerInfo: s.info,
	}, nil
}

func (s *Server) handleToolsList() (jsonrpc.Result, error) {
	return ToolsListResponse{Tools: s.tools}, nil
}

// handleToolsCall dispatches one tool invocation. Tool-level failures of
// any kind are reported inside a successful RPC response with IsError set;
// only unparseable params escape as a protocol-level error.
func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (jsonrpc.Result, error) {
	var call ToolCallRequest
	if len(params) > 0 {
		if err := json.Unmarshal(params, &call); err != nil {
			return nil, fmt.Errorf("invalid tools/call params: %w", err)
		}
	}

	handler, ok := s.handlers[call.Name]
	if !ok {
		s.logger.Error("unknown tool requested", "tool", call.Name)
		return errorResult("Unknown tool: " + call.Name), nil
	}

	result, err := handler(ctx, s.provider, Arguments(call.Arguments))
	if err != nil {
		s.logger.Error("tool call failed", "tool", call.Name, "error", err)
		return errorResult("Error: " + err.Error()), nil
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		s.logger.Error("tool result not serializable", "tool", call.Name, "error", err)
		return errorResult("Error: " + err.Error()), nil
	}

	s.logger.Debug("tool call succeeded", "tool", call.Name)
	return ToolCallResponse{
		Content: []Content{NewTextContent(string(text))},
	}, nil
}

func errorResult(text string) ToolCallResponse {
	return ToolCallResponse{
		Content: []Content{NewTextContent(text)},
		IsError: true,
	}
}

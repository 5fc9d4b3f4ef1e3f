package rpc

import (
	"context"
	"encoding/json"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forcekit/mcp-salesforce/registry"
	"github.com/forcekit/mcp-salesforce/transport"
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Server dispatches JSON-RPC requests from a transport against a registry.
type Server struct {
	reg  *registry.Registry
	tr   transport.Transport
	log  *zap.Logger
	info ServerInfo
}

type ServerOption func(*Server)

func WithLogger(log *zap.Logger) ServerOption {
	return func(s *Server) { s.log = log }
}

func WithServerInfo(info ServerInfo) ServerOption {
	return func(s *Server) { s.info = info }
}

func NewServer(reg *registry.Registry, tr transport.Transport, opts ...ServerOption) *Server {
	s := &Server{
		reg:  reg,
		tr:   tr,
		log:  zap.NewNop(),
		info: ServerInfo{Name: "mcp-salesforce", Version: "dev"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads requests until the transport or context ends.
func (s *Server) Run(ctx context.Context) error {
	for {
		raw, err := s.tr.Next(ctx)
		if err != nil {
			return err
		}
		go s.handle(ctx, raw)
	}
}

func (s *Server) handle(ctx context.Context, raw json.RawMessage) {
	start := time.Now()
	reqID := uuid.NewString()

	var req rpcRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.log.Warn("unparseable request", zap.String("request_id", reqID), zap.Error(err))
		s.sendError(ctx, nil, ErrParse)
		return
	}

	log := s.log.With(zap.String("request_id", reqID), zap.String("method", req.Method))

	switch req.Method {
	case "initialize":
		res := InitializeResult{ProtocolVersion: ProtocolVersion, ServerInfo: s.info}
		s.send(ctx, req.ID, res)
	case "notifications/initialized":
		// client acknowledgement, nothing to send
	case "ping":
		s.send(ctx, req.ID, struct{}{})
	case "tools/list":
		s.send(ctx, req.ID, struct {
			Tools []*registry.ToolDesc `json:"tools"`
		}{Tools: s.reg.Tools()})
	case "tools/call":
		s.handleToolCall(ctx, log, req)
	case "resources/list":
		s.send(ctx, req.ID, struct {
			Resources []*registry.ResourceDesc `json:"resources"`
		}{Resources: s.reg.Resources()})
	case "resources/templates/list":
		s.send(ctx, req.ID, struct {
			ResourceTemplates []*registry.ResourceTemplateDesc `json:"resourceTemplates"`
		}{ResourceTemplates: s.reg.ResourceTemplates()})
	case "resources/read":
		s.handleResourceRead(ctx, log, req)
	default:
		s.sendError(ctx, req.ID, ErrorMethodNotFound(req.Method))
	}

	log.Debug("request handled", zap.Duration("duration", time.Since(start)))
}

func (s *Server) send(ctx context.Context, id json.RawMessage, result any) {
	resp := rpcResponse{JSONRPC: "2.0", ID: id, Result: result}
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("marshal response", zap.Error(err))
		return
	}
	if err := s.tr.Send(ctx, data); err != nil {
		s.log.Error("send response", zap.Error(err))
	}
}

func (s *Server) sendError(ctx context.Context, id json.RawMessage, rpcErr *Error) {
	resp := rpcResponse{JSONRPC: "2.0", ID: id, Error: rpcErr}
	data, _ := json.Marshal(resp)
	if err := s.tr.Send(ctx, data); err != nil {
		s.log.Error("send error response", zap.Error(err))
	}
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolCall(ctx context.Context, log *zap.Logger, req rpcRequest) {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(ctx, req.ID, ErrInvalidParams)
		return
	}
	tool := s.reg.FindTool(params.Name)
	if tool == nil {
		s.sendError(ctx, req.ID, ErrorMethodNotFound(params.Name))
		return
	}
	arg := reflect.New(tool.Handler.Req()).Interface()
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, arg); err != nil {
			s.sendError(ctx, req.ID, ErrInvalidParams)
			return
		}
	}
	val, err := tool.Handler.Call(ctx, reflect.ValueOf(arg).Elem().Interface())
	if err != nil {
		// Tool execution failures are tool results, not protocol errors.
		log.Warn("tool failed", zap.String("tool", params.Name), zap.Error(err))
		s.send(ctx, req.ID, NewToolResultError(err.Error()))
		return
	}
	s.send(ctx, req.ID, asToolResult(val))
}

// asToolResult passes CallToolResult values through verbatim and renders
// anything else as a JSON text block.
func asToolResult(val any) CallToolResult {
	switch v := val.(type) {
	case CallToolResult:
		return v
	case *CallToolResult:
		return *v
	}
	data, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return NewToolResultError(err.Error())
	}
	return NewToolResultText(string(data))
}

func (s *Server) handleResourceRead(ctx context.Context, log *zap.Logger, req rpcRequest) {
	var params ResourceReadParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.URI == "" {
		s.sendError(ctx, req.ID, ErrInvalidParams)
		return
	}
	if _, err := url.Parse(params.URI); err != nil {
		s.sendError(ctx, req.ID, ErrInvalidParams)
		return
	}
	handler, mime := s.reg.FindResourceHandler(params.URI)
	if handler == nil {
		s.sendError(ctx, req.ID, ErrorMethodNotFound(params.URI))
		return
	}
	val, err := handler.Read(ctx, params.URI)
	if err != nil {
		log.Warn("resource read failed", zap.String("uri", params.URI), zap.Error(err))
		s.sendError(ctx, req.ID, ErrorInternal(err))
		return
	}
	text, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		s.sendError(ctx, req.ID, ErrorInternal(err))
		return
	}
	s.send(ctx, req.ID, ResourceReadResult{Contents: []ResourceContent{{
		URI:      params.URI,
		MimeType: mime,
		Text:     string(text),
	}}})
}

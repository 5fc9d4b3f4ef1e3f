package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/forcekit/mcp-salesforce/registry"
	"github.com/forcekit/mcp-salesforce/rpc"
	"github.com/forcekit/mcp-salesforce/transport"
)

func startHTTPTestServer(t *testing.T) (url string, cancel func()) {
	t.Helper()

	tr, err := transport.NewHTTPTransport("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	reg := registry.New()
	registry.RegisterTool(reg, "echo", func(ctx context.Context, in struct {
		Msg string `json:"msg"`
	}) (rpc.CallToolResult, error) {
		return rpc.NewToolResultText(in.Msg), nil
	})

	srv := rpc.NewServer(reg, tr)
	ctx, cancelCtx := context.WithCancel(context.Background())
	go func() { _ = srv.Run(ctx) }()

	return "http://" + tr.Addr(), func() {
		cancelCtx()
		_ = tr.Close()
	}
}

func postRPC(t *testing.T, url string, req any) map[string]json.RawMessage {
	t.Helper()
	data, _ := json.Marshal(req)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var out map[string]json.RawMessage
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal %q: %v", body, err)
	}
	return out
}

func TestHTTPTransportEndToEnd(t *testing.T) {
	url, cancel := startHTTPTestServer(t)
	defer cancel()

	out := postRPC(t, url, map[string]any{"jsonrpc": "2.0", "id": 1, "method": "tools/list"})
	if _, ok := out["error"]; ok {
		t.Fatalf("unexpected error: %s", out["error"])
	}
	var result struct {
		Tools []registry.ToolDesc `json:"tools"`
	}
	if err := json.Unmarshal(out["result"], &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Tools) != 1 || result.Tools[0].Name != "echo" {
		t.Fatalf("unexpected tools: %+v", result.Tools)
	}
}

func TestHTTPTransportToolCall(t *testing.T) {
	url, cancel := startHTTPTestServer(t)
	defer cancel()

	out := postRPC(t, url, map[string]any{
		"jsonrpc": "2.0", "id": 2, "method": "tools/call",
		"params": map[string]any{"name": "echo", "arguments": map[string]any{"msg": "hello"}},
	})
	var result rpc.CallToolResult
	if err := json.Unmarshal(out["result"], &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(result.Content) != 1 || result.Content[0].Text != "hello" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestHTTPTransportRejectsGet(t *testing.T) {
	url, cancel := startHTTPTestServer(t)
	defer cancel()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

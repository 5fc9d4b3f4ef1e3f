package transport

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"sync"
)

type httpMessage struct {
	id     string
	req    json.RawMessage
	respCh chan json.RawMessage
}

// HTTPTransport serves JSON-RPC over HTTP POST. Each request blocks until
// the server sends the response with the matching JSON-RPC id.
type HTTPTransport struct {
	srv     *http.Server
	ln      net.Listener
	reqCh   chan httpMessage
	mu      sync.Mutex
	pending map[string]chan json.RawMessage
}

// NewHTTPTransport returns a Transport listening on addr. Pass an addr with
// port 0 to pick a free port; Addr reports the bound address.
func NewHTTPTransport(addr string) (*HTTPTransport, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	tr := &HTTPTransport{
		ln:      ln,
		reqCh:   make(chan httpMessage, 16),
		pending: make(map[string]chan json.RawMessage),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", tr.handle)
	tr.srv = &http.Server{Handler: mux}
	go func() { _ = tr.srv.Serve(ln) }()
	return tr, nil
}

// Addr reports the address the transport is listening on.
func (h *HTTPTransport) Addr() string { return h.ln.Addr().String() }

func (h *HTTPTransport) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var tmp struct {
		ID json.RawMessage `json:"id"`
	}
	_ = json.Unmarshal(body, &tmp)
	msg := httpMessage{
		id:     string(tmp.ID),
		req:    json.RawMessage(body),
		respCh: make(chan json.RawMessage, 1),
	}
	select {
	case h.reqCh <- msg:
	case <-r.Context().Done():
		return
	}
	if msg.id == "" {
		// notification, no response will come
		w.WriteHeader(http.StatusAccepted)
		return
	}
	select {
	case resp := <-msg.respCh:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(resp)
	case <-r.Context().Done():
	}
}

func (h *HTTPTransport) Next(ctx context.Context) (json.RawMessage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case msg, ok := <-h.reqCh:
		if !ok {
			return nil, io.EOF
		}
		if msg.id != "" {
			h.mu.Lock()
			h.pending[msg.id] = msg.respCh
			h.mu.Unlock()
		}
		return msg.req, nil
	}
}

func (h *HTTPTransport) Send(ctx context.Context, resp json.RawMessage) error {
	var tmp struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(resp, &tmp); err != nil {
		return err
	}
	id := string(tmp.ID)
	h.mu.Lock()
	ch, ok := h.pending[id]
	if ok {
		delete(h.pending, id)
	}
	h.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case ch <- resp:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *HTTPTransport) Close() error {
	return h.srv.Shutdown(context.Background())
}

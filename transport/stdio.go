package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
)

// Transport delivers raw JSON-RPC messages to the server and carries
// responses back. Responses may be sent from concurrent handler goroutines.
type Transport interface {
	Next(ctx context.Context) (json.RawMessage, error)
	Send(ctx context.Context, resp json.RawMessage) error
	Close() error
}

// stdioTransport speaks newline-delimited JSON over stdin/stdout. Nothing
// else may write to stdout while it is in use; loggers must target stderr
// or a file.
type stdioTransport struct {
	in  *bufio.Reader
	out io.Writer
	mu  sync.Mutex
}

// StdioTransport returns a Transport bound to the process stdin/stdout.
func StdioTransport() Transport {
	return NewStdioTransport(os.Stdin, os.Stdout)
}

// NewStdioTransport is StdioTransport over arbitrary streams, for tests.
func NewStdioTransport(in io.Reader, out io.Writer) Transport {
	return &stdioTransport{in: bufio.NewReader(in), out: out}
}

func (s *stdioTransport) Next(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	line, err := s.in.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return json.RawMessage(line), nil
		}
		return nil, err
	}
	return json.RawMessage(line), nil
}

func (s *stdioTransport) Send(ctx context.Context, resp json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.out.Write(append(resp, '\n'))
	return err
}

func (s *stdioTransport) Close() error { return nil }

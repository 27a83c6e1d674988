package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tickertape-ai/tickertape/jsonrpc"
)

// StdioTransport frames the JSON-RPC exchange over a byte stream: one
// request per input line, one response line per non-notification request,
// flushed before the next line is read. Diagnostics go to the logger only;
// the output stream carries nothing but responses.
type StdioTransport struct {
	handler jsonrpc.Handler
	scanner *bufio.Scanner
	writer  *json.Encoder
	bufOut  *bufio.Writer
	logger  *slog.Logger
}

// NewStdioTransport creates a new stdio transport
func NewStdioTransport(handler jsonrpc.Handler, in io.Reader, out io.Writer, logger *slog.Logger) *StdioTransport {
	scanner := bufio.NewScanner(in)
	// Set a reasonable max size for each line
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	bufOut := bufio.NewWriter(out)
	return &StdioTransport{
		handler: handler,
		scanner: scanner,
		writer:  json.NewEncoder(bufOut),
		bufOut:  bufOut,
		logger:  logger,
	}
}

// Run reads requests line by line until end of stream or context
// cancellation. Requests are handled strictly in order, one at a time.
// Malformed JSON lines are logged and dropped without a response: their
// id cannot be recovered, so no error can be correlated to them.
func (t *StdioTransport) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if !t.scanner.Scan() {
				if err := t.scanner.Err(); err != nil {
					return fmt.Errorf("scanner error: %w", err)
				}
				return nil
			}

			line := t.scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}

			t.logger.Debug("request received", "line", line)

			var request jsonrpc.Request
			if err := json.Unmarshal([]byte(line), &request); err != nil {
				t.logger.Error("invalid JSON", "error", err)
				continue
			}

			response := t.handler.Handle(ctx, request)
			if response == nil {
				continue
			}

			if err := t.writer.Encode(response); err != nil {
				t.logger.Error("error encoding response", "error", err)
			}
			t.bufOut.Flush()
		}
	}
}

package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickertape-ai/tickertape/jsonrpc"
)

type mockHandler struct {
	calls      int
	handleFunc func(ctx context.Context, request jsonrpc.Request) *jsonrpc.Response
}

func (m *mockHandler) Handle(ctx context.Context, request jsonrpc.Request) *jsonrpc.Response {
	m.calls++
	return m.handleFunc(ctx, request)
}

func TestTransport_Run(t *testing.T) {
	echo := func(ctx context.Context, request jsonrpc.Request) *jsonrpc.Response {
		return jsonrpc.NewResponse(request.ID, "ok", nil)
	}

	tests := []struct {
		name        string
		input       string
		handleFunc  func(ctx context.Context, request jsonrpc.Request) *jsonrpc.Response
		expectedOut string
		expectCalls int
	}{
		{
			name:       "successful request",
			input:      `{"jsonrpc": "2.0", "method": "tools/list", "id": 1}`,
			handleFunc: echo,
			expectedOut: `{"jsonrpc":"2.0","result":"ok","id":1}
`,
			expectCalls: 1,
		},
		{
			name:        "malformed JSON is dropped without a response",
			input:       `{"jsonrpc": "2.0" method: invalid}`,
			handleFunc:  echo,
			expectedOut: "",
			expectCalls: 0,
		},
		{
			name: "malformed line does not affect following requests",
			input: `not json at all
{"jsonrpc": "2.0", "method": "tools/list", "id": 2}`,
			handleFunc: echo,
			expectedOut: `{"jsonrpc":"2.0","result":"ok","id":2}
`,
			expectCalls: 1,
		},
		{
			name: "responses preserve request order",
			input: `{"jsonrpc": "2.0", "method": "tools/list", "id": 1}
{"jsonrpc": "2.0", "method": "tools/list", "id": 2}`,
			handleFunc: echo,
			expectedOut: `{"jsonrpc":"2.0","result":"ok","id":1}
{"jsonrpc":"2.0","result":"ok","id":2}
`,
			expectCalls: 2,
		},
		{
			name: "blank lines are skipped",
			input: `
{"jsonrpc": "2.0", "method": "tools/list", "id": 1}

`,
			handleFunc: echo,
			expectedOut: `{"jsonrpc":"2.0","result":"ok","id":1}
`,
			expectCalls: 1,
		},
		{
			name:  "notification produces no output",
			input: `{"jsonrpc": "2.0", "method": "notifications/initialized"}`,
			handleFunc: func(ctx context.Context, request jsonrpc.Request) *jsonrpc.Response {
				return nil
			},
			expectedOut: "",
			expectCalls: 1,
		},
		{
			name:        "empty input",
			input:       "",
			handleFunc:  echo,
			expectedOut: "",
			expectCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &mockHandler{handleFunc: tt.handleFunc}

			input := tt.input
			if input != "" && !strings.HasSuffix(input, "\n") {
				input += "\n"
			}

			in := strings.NewReader(input)
			out := &bytes.Buffer{}

			transport := NewStdioTransport(handler, in, out, nil)
			err := transport.Run(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedOut, out.String())
			assert.Equal(t, tt.expectCalls, handler.calls)
		})
	}
}

func TestTransport_RunContextCancelled(t *testing.T) {
	handler := &mockHandler{handleFunc: func(ctx context.Context, request jsonrpc.Request) *jsonrpc.Response {
		return jsonrpc.NewResponse(request.ID, "ok", nil)
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := strings.NewReader(`{"jsonrpc": "2.0", "method": "tools/list", "id": 1}` + "\n")
	out := &bytes.Buffer{}

	transport := NewStdioTransport(handler, in, out, nil)
	err := transport.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestTransport_OversizedLine(t *testing.T) {
	handler := &mockHandler{handleFunc: func(ctx context.Context, request jsonrpc.Request) *jsonrpc.Response {
		return jsonrpc.NewResponse(request.ID, "ok", nil)
	}}

	in := strings.NewReader(strings.Repeat("a", 2*1024*1024) + "\n")
	out := &bytes.Buffer{}

	transport := NewStdioTransport(handler, in, out, nil)
	err := transport.Run(context.Background())

	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.Zero(t, handler.calls)
}

func TestTransport_Integration(t *testing.T) {
	server := setupTestServer(t, &fakeProvider{})

	input := strings.Join([]string{
		`{"jsonrpc": "2.0", "method": "initialize", "params": {}, "id": 1}`,
		`{"jsonrpc": "2.0", "method": "notifications/initialized"}`,
		`{"jsonrpc": "2.0", "method": "tools/list", "id": 2}`,
		`{"jsonrpc": "2.0" oops`,
		`{"jsonrpc": "2.0", "method": "tools/call", "params": {"name": "get_ticker_isin", "arguments": {"symbol": "AAPL"}}, "id": 3}`,
		`{"jsonrpc": "2.0", "method": "resources/read", "id": 4}`,
	}, "\n") + "\n"

	in := strings.NewReader(input)
	out := &bytes.Buffer{}

	transport := NewStdioTransport(server, in, out, nil)
	require.NoError(t, transport.Run(context.Background()))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	decode := func(line string) jsonrpc.Response {
		var response jsonrpc.Response
		require.NoError(t, json.Unmarshal([]byte(line), &response))
		assert.Equal(t, "2.0", response.Version)
		return response
	}

	// initialize
	response := decode(lines[0])
	assert.Equal(t, 1, response.ID.Value())
	require.Nil(t, response.Error)
	result, ok := response.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, Version, result["protocolVersion"])

	// tools/list
	response = decode(lines[1])
	assert.Equal(t, 2, response.ID.Value())
	require.Nil(t, response.Error)
	result, ok = response.Result.(map[string]any)
	require.True(t, ok)
	tools, ok := result["tools"].([]any)
	require.True(t, ok)
	assert.Len(t, tools, 20)

	// tools/call
	response = decode(lines[2])
	assert.Equal(t, 3, response.ID.Value())
	require.Nil(t, response.Error)

	// unknown method
	response = decode(lines[3])
	assert.Equal(t, 4, response.ID.Value())
	require.NotNil(t, response.Error)
	assert.Equal(t, jsonrpc.ErrInternal, response.Error.Code)
	assert.Equal(t, "Unknown method: resources/read", response.Error.Message)
}

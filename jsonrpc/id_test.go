package jsonrpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDMarshal(t *testing.T) {
	tests := []struct {
		name string
		id   interface{}
		want string
	}{
		{name: "number", id: 1, want: "1"},
		{name: "string", id: "abc", want: `"abc"`},
		{name: "nil marshals as null", id: nil, want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewID(tt.id)
			require.NoError(t, err)
			data, err := json.Marshal(id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestIDUnmarshal(t *testing.T) {
	var id ID
	require.NoError(t, json.Unmarshal([]byte("7"), &id))
	assert.Equal(t, 7, id.Value())

	require.NoError(t, json.Unmarshal([]byte(`"req-1"`), &id))
	assert.Equal(t, "req-1", id.Value())

	require.NoError(t, json.Unmarshal([]byte("null"), &id))
	assert.True(t, id.IsNil())

	assert.Error(t, json.Unmarshal([]byte("[1]"), &id))
}

func TestNewIDRejectsOtherTypes(t *testing.T) {
	_, err := NewID(map[string]any{})
	assert.Error(t, err)
}

func TestResponseIDNull(t *testing.T) {
	resp := NewResponse(nil, nil, NewError(ErrInternal, nil))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"jsonrpc":"2.0","error":{"code":-32603,"message":"Internal error"},"id":null}`, string(data))
}

func TestErrorf(t *testing.T) {
	err := Errorf(ErrInternal, "Unknown method: %s", "tools/destroy")
	assert.Equal(t, ErrInternal, err.Code)
	assert.Equal(t, "Unknown method: tools/destroy", err.Message)
	assert.EqualError(t, err, "-32603: Unknown method: tools/destroy")
}

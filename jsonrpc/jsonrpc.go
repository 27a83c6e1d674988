// Package jsonrpc implements the JSON-RPC 2.0 wire types used by the
// stdio transport.
package jsonrpc

// Version is the JSON-RPC protocol version
const Version = "2.0"

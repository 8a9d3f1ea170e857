// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It exposes the bill search capability to AI assistants over stdio or HTTP.
package mcp

import "errors"

// ErrMissingRetriever is returned when the retrieval tool is not provided.
var ErrMissingRetriever = errors.New("mcp: retrieval tool is required")

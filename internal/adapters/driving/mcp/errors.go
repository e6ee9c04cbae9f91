// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Docsmith. It enables AI assistants like Claude to trigger documentation
// generation and inspect run history.
package mcp

import "errors"

// ErrMissingGenerationService is returned when the generation service is not provided.
var ErrMissingGenerationService = errors.New("mcp: generation service is required")

// Package driving defines the inbound ports of the Docsmith core: the
// service interfaces the CLI, TUI, and MCP adapters call into.
package driving

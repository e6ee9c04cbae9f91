package mcp

import (
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Generation runs the documentation workflow.
	Generation driving.GenerationService

	// Runs exposes run history.
	Runs driving.RunHistoryService

	// Settings provides read access to configuration.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Generation == nil {
		return ErrMissingGenerationService
	}
	// Runs and Settings are optional
	return nil
}

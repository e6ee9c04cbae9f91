package driving

import (
	"context"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

// GenerationService runs the full documentation workflow for one request.
type GenerationService interface {
	// Generate validates the request, extracts requirements, drafts the
	// requested document types, and persists the resulting package.
	//
	// A degraded success (some but not all types failed) returns a
	// PackageResult whose Failures are populated together with a nil
	// error; callers inspect Degraded(). A fatal failure returns a nil
	// result and a classified error.
	Generate(ctx context.Context, req domain.Request) (*domain.PackageResult, error)
}

// Clarifier gathers additional user input during the clarification loop.
// Implementations may be a terminal UI or a plain stdin prompt.
type Clarifier interface {
	// Ask presents the open questions and returns the user's answer.
	// proceed is true when the user asked to continue with defaults.
	Ask(ctx context.Context, questions []string) (answer string, proceed bool, err error)
}

// RunHistoryService exposes persisted run history.
type RunHistoryService interface {
	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get returns one run and its step records.
	Get(ctx context.Context, runID string) (*domain.RunRecord, []domain.StepRecord, error)
}

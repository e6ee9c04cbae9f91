package driven

import (
	"context"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

// RunStore persists run history for audit and the `runs` CLI commands.
type RunStore interface {
	// SaveRun stores or updates a run record.
	SaveRun(ctx context.Context, run domain.RunRecord) error

	// SaveSteps stores the step records of a run. Steps are append-only;
	// saving replaces nothing and is called once at run completion.
	SaveSteps(ctx context.Context, runID string, steps []domain.StepRecord) error

	// GetRun retrieves a run by ID. Missing runs return domain.ErrNotFound.
	GetRun(ctx context.Context, runID string) (*domain.RunRecord, error)

	// GetSteps retrieves the step records of a run in append order.
	GetSteps(ctx context.Context, runID string) ([]domain.StepRecord, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Close releases resources.
	Close() error
}

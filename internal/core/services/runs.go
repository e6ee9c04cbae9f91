package services

import (
	"context"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driving"
)

// Ensure RunHistoryService implements the interface.
var _ driving.RunHistoryService = (*RunHistoryService)(nil)

// RunHistoryService exposes persisted run history to the CLI.
type RunHistoryService struct {
	store driven.RunStore
}

// NewRunHistoryService creates a new run history service.
func NewRunHistoryService(store driven.RunStore) *RunHistoryService {
	return &RunHistoryService{store: store}
}

// List returns the most recent runs, newest first.
func (s *RunHistoryService) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.store.ListRuns(ctx, limit)
}

// Get returns one run and its step records.
func (s *RunHistoryService) Get(ctx context.Context, runID string) (*domain.RunRecord, []domain.StepRecord, error) {
	run, err := s.store.GetRun(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	steps, err := s.store.GetSteps(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	return run, steps, nil
}

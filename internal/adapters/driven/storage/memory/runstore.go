// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and as a fallback when persistence is disabled.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu    sync.RWMutex
	runs  map[string]domain.RunRecord
	steps map[string][]domain.StepRecord
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:  make(map[string]domain.RunRecord),
		steps: make(map[string][]domain.StepRecord),
	}
}

// SaveRun stores or updates a run record.
func (s *RunStore) SaveRun(_ context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		return domain.ErrValidation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// SaveSteps stores the step records of a run in append order.
func (s *RunStore) SaveSteps(_ context.Context, runID string, steps []domain.StepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps[runID] = append(s.steps[runID], steps...)
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(_ context.Context, runID string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// GetSteps retrieves the step records of a run in append order.
func (s *RunStore) GetSteps(_ context.Context, runID string) ([]domain.StepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	steps := make([]domain.StepRecord, len(s.steps[runID]))
	copy(steps, s.steps[runID])
	return steps, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close releases resources. It is a no-op for the in-memory store.
func (s *RunStore) Close() error {
	return nil
}

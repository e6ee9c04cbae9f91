package mcp

import (
	"context"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

// mockGenerationService is a mock implementation of driving.GenerationService.
type mockGenerationService struct {
	result  *domain.PackageResult
	lastReq domain.Request
	err     error
}

func (m *mockGenerationService) Generate(_ context.Context, req domain.Request) (*domain.PackageResult, error) {
	m.lastReq = req
	return m.result, m.err
}

// mockRunHistoryService is a mock implementation of driving.RunHistoryService.
type mockRunHistoryService struct {
	runs  []domain.RunRecord
	run   *domain.RunRecord
	steps []domain.StepRecord
	err   error
}

func (m *mockRunHistoryService) List(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.runs, m.err
}

func (m *mockRunHistoryService) Get(_ context.Context, _ string) (*domain.RunRecord, []domain.StepRecord, error) {
	return m.run, m.steps, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

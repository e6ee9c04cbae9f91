package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

// --- Mock driving services for command tests ---

type mockGenerationService struct {
	result  *domain.PackageResult
	err     error
	lastReq domain.Request
	lastCtx context.Context
	calls   int
}

func (m *mockGenerationService) Generate(ctx context.Context, req domain.Request) (*domain.PackageResult, error) {
	m.calls++
	m.lastReq = req
	m.lastCtx = ctx
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockRunsService struct {
	runs  []domain.RunRecord
	run   *domain.RunRecord
	steps []domain.StepRecord
	err   error
}

func (m *mockRunsService) List(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.runs, m.err
}

func (m *mockRunsService) Get(_ context.Context, _ string) (*domain.RunRecord, []domain.StepRecord, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.run, m.steps, nil
}

type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings != nil {
		return m.settings, nil
	}
	defaults := domain.DefaultSettings()
	return &defaults, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) Validate() error { return m.err }

// testPackageResult is a plausible successful two-document run.
func testPackageResult() *domain.PackageResult {
	return &domain.PackageResult{
		RunID: "20260101_120000_abcd1234",
		Documents: []domain.DraftDocument{
			{Type: domain.DocTypeBRD, Body: "# BRD"},
			{Type: domain.DocTypeSecurity, Body: "# Security", SecurityReviewed: true},
		},
		SummaryText: "Package overview.",
	}
}

// resetCommandContexts clears the context cobra caches on each command after
// an execution; without this, a prior test's rootCmd.Execute() leaves a stale
// context on subcommands and ExecuteContext cannot propagate a new one.
func resetCommandContexts(c *cobra.Command) {
	c.SetContext(nil)
	for _, sub := range c.Commands() {
		resetCommandContexts(sub)
	}
}

// setupTestServices swaps in mock services and resets command flags.
// The returned cleanup restores the previous state.
func setupTestServices() func() {
	oldGeneration := generationService
	oldSettings := settingsService
	oldRuns := runsService
	oldPromptDir := promptDir
	oldPromptReload := promptReload

	started := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	generationService = &mockGenerationService{result: testPackageResult()}
	settingsService = &mockSettingsService{}
	runsService = &mockRunsService{
		runs: []domain.RunRecord{{
			ID:            "20260101_120000_abcd1234",
			Request:       "Document the checkout service",
			State:         domain.StatePersisted,
			DocumentTypes: []domain.DocumentType{domain.DocTypeBRD, domain.DocTypeSecurity},
			StartedAt:     started,
			FinishedAt:    started.Add(40 * time.Second),
		}},
		run: &domain.RunRecord{
			ID:        "20260101_120000_abcd1234",
			Request:   "Document the checkout service",
			State:     domain.StatePersisted,
			OutputDir: "outputs",
			StartedAt: started,
		},
		steps: []domain.StepRecord{
			{Step: "accepted", Status: domain.StepOK, StartedAt: started, FinishedAt: started},
			{Step: "draft_brd", Status: domain.StepOK, StartedAt: started, FinishedAt: started.Add(time.Second), Detail: "1200 chars"},
		},
	}
	promptDir = "/tmp/docsmith-prompts"
	promptReload = func() {}

	resetCommandContexts(rootCmd)

	return func() {
		generationService = oldGeneration
		settingsService = oldSettings
		runsService = oldRuns
		promptDir = oldPromptDir
		promptReload = oldPromptReload

		generateCodeDir = ""
		generateFiles = nil
		generateDocType = ""
		generateInteractive = false
		generateOutput = ""
		runsLimit = 20
	}
}

package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

func TestServer_handleGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns generated documents", func(t *testing.T) {
		mockGen := &mockGenerationService{
			result: &domain.PackageResult{
				RunID: "run-1",
				Documents: []domain.DraftDocument{
					{Type: domain.DocTypeBRD, Body: "# BRD"},
					{Type: domain.DocTypeSecurity, Body: "# Security", SecurityReviewed: true},
				},
				SummaryText: "Two documents.",
			},
		}

		ports := &Ports{Generation: mockGen}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := GenerateInput{Request: "Document the billing system"}
		_, output, err := server.handleGenerate(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "run-1", output.RunID)
		require.Len(t, output.Documents, 2)
		assert.Equal(t, "BRD", output.Documents[0].Type)
		assert.Equal(t, "# BRD", output.Documents[0].Body)
		assert.True(t, output.Documents[1].SecurityReviewed)
		assert.Equal(t, "Two documents.", output.Summary)
		assert.False(t, output.Degraded)
	})

	t.Run("requests are never interactive", func(t *testing.T) {
		mockGen := &mockGenerationService{result: &domain.PackageResult{RunID: "run-1"}}
		server, err := NewServer(&Ports{Generation: mockGen})
		require.NoError(t, err)

		_, _, err = server.handleGenerate(ctx, nil, GenerateInput{Request: "something vague"})
		require.NoError(t, err)
		assert.False(t, mockGen.lastReq.Interactive)
	})

	t.Run("doc_type is normalised", func(t *testing.T) {
		mockGen := &mockGenerationService{result: &domain.PackageResult{RunID: "run-1"}}
		server, err := NewServer(&Ports{Generation: mockGen})
		require.NoError(t, err)

		input := GenerateInput{Request: "API docs", DocType: "rest-api"}
		_, _, err = server.handleGenerate(ctx, nil, input)
		require.NoError(t, err)
		assert.Equal(t, domain.DocTypeAPI, mockGen.lastReq.ForcedType)
	})

	t.Run("unknown doc_type returns validation error", func(t *testing.T) {
		server, err := NewServer(&Ports{Generation: &mockGenerationService{}})
		require.NoError(t, err)

		input := GenerateInput{Request: "something", DocType: "novel"}
		_, _, err = server.handleGenerate(ctx, nil, input)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("degraded run reports failures", func(t *testing.T) {
		mockGen := &mockGenerationService{
			result: &domain.PackageResult{
				RunID:     "run-1",
				Documents: []domain.DraftDocument{{Type: domain.DocTypeBRD, Body: "# BRD"}},
				Failures: []domain.DocumentFailure{
					{Type: domain.DocTypeNFRD, Kind: "rate_limited", Detail: "429"},
				},
			},
		}
		server, err := NewServer(&Ports{Generation: mockGen})
		require.NoError(t, err)

		_, output, err := server.handleGenerate(ctx, nil, GenerateInput{Request: "docs"})
		require.NoError(t, err)
		assert.True(t, output.Degraded)
		require.Len(t, output.Failures, 1)
		assert.Equal(t, "rate_limited", output.Failures[0].Kind)
	})

	t.Run("returns error on generation failure", func(t *testing.T) {
		mockGen := &mockGenerationService{err: errors.New("generation failed")}
		server, err := NewServer(&Ports{Generation: mockGen})
		require.NoError(t, err)

		_, _, err = server.handleGenerate(ctx, nil, GenerateInput{Request: "docs"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "generation failed")
	})
}

func TestServer_handleListRuns(t *testing.T) {
	ctx := context.Background()

	t.Run("returns runs", func(t *testing.T) {
		started := time.Date(2026, 8, 26, 10, 15, 0, 0, time.UTC)
		mockRuns := &mockRunHistoryService{
			runs: []domain.RunRecord{
				{
					ID:            "run-1",
					Request:       "Document the billing system",
					State:         domain.StatePersisted,
					DocumentTypes: []domain.DocumentType{domain.DocTypeBRD},
					StartedAt:     started,
				},
			},
		}

		server, err := NewServer(&Ports{Generation: &mockGenerationService{}, Runs: mockRuns})
		require.NoError(t, err)

		_, output, err := server.handleListRuns(ctx, nil, ListRunsInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "run-1", output.Runs[0].ID)
		assert.Equal(t, "persisted", output.Runs[0].State)
		assert.Equal(t, []string{"BRD"}, output.Runs[0].DocumentTypes)
	})

	t.Run("nil runs service returns empty", func(t *testing.T) {
		server, err := NewServer(&Ports{Generation: &mockGenerationService{}})
		require.NoError(t, err)

		_, output, err := server.handleListRuns(ctx, nil, ListRunsInput{})
		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
	})
}

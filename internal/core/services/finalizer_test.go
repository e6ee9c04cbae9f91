package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

func newTestFinalizer(t *testing.T, llm *mockLLM) *Finalizer {
	t.Helper()
	if llm == nil {
		llm = newMockLLM(nil)
	}
	return NewFinalizer(newTestRegistry(t, llm, nil), &mockPromptStore{})
}

func TestFinalizer_Finalize_NormalizesBodies(t *testing.T) {
	finalizer := newTestFinalizer(t, nil)

	docs := []domain.DraftDocument{{
		Type: domain.DocTypeBRD,
		Body: "#Title\r\n\r\nSome text.   \r\n\n\n\n\n##Section\ntext\n\n\n",
	}}

	result, err := finalizer.Finalize(context.Background(), "run-1", docs, nil)

	require.NoError(t, err)
	require.Len(t, result.Documents, 1)

	body := result.Documents[0].Body
	assert.Equal(t, "# Title\n\nSome text.\n\n## Section\ntext\n", body)
}

func TestFinalizer_Finalize_SingleDocumentSkipsSummary(t *testing.T) {
	llm := newMockLLM(nil)
	finalizer := newTestFinalizer(t, llm)

	result, err := finalizer.Finalize(context.Background(), "run-1",
		[]domain.DraftDocument{{Type: domain.DocTypeAPI, Body: "# API\n"}}, nil)

	require.NoError(t, err)
	assert.Empty(t, result.SummaryText)
	assert.Equal(t, 0, llm.callCount(domain.RoleEditor))
}

func TestFinalizer_Finalize_MultiDocumentSummary(t *testing.T) {
	var payload string
	llm := newMockLLM(func(role, p string) (string, error) {
		if domain.Role(role) == domain.RoleEditor {
			payload = p
		}
		return defaultResponder()(role, p)
	})
	finalizer := newTestFinalizer(t, llm)

	result, err := finalizer.Finalize(context.Background(), "run-1",
		[]domain.DraftDocument{
			{Type: domain.DocTypeBRD, Body: "# BRD\n\nBusiness."},
			{Type: domain.DocTypeAPI, Body: "# API\n\nEndpoints."},
		}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Package overview.", result.SummaryText)
	assert.Equal(t, 1, llm.callCount(domain.RoleEditor))

	// The summary prompt lists every document with its excerpt.
	assert.Contains(t, payload, "BRD (Business Requirements Document)")
	assert.Contains(t, payload, "API (API Documentation)")
	assert.Contains(t, payload, "Business.")
	assert.Contains(t, payload, "Endpoints.")
}

func TestFinalizer_Finalize_SummaryFailureKeepsDocuments(t *testing.T) {
	finalizer := newTestFinalizer(t, newMockLLM(func(role, p string) (string, error) {
		if domain.Role(role) == domain.RoleEditor {
			return "", domain.ErrRateLimited
		}
		return defaultResponder()(role, p)
	}))

	result, err := finalizer.Finalize(context.Background(), "run-1",
		[]domain.DraftDocument{
			{Type: domain.DocTypeBRD, Body: "# BRD"},
			{Type: domain.DocTypeAPI, Body: "# API"},
		}, nil)

	require.NoError(t, err)
	require.Len(t, result.Documents, 2)
	assert.Empty(t, result.SummaryText)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, domain.DocTypeGeneric, result.Failures[0].Type)
	assert.Equal(t, "rate_limited", result.Failures[0].Kind)
	assert.Contains(t, result.Failures[0].Detail, "package summary")
}

func TestFinalizer_Finalize_CarriesFailuresThrough(t *testing.T) {
	finalizer := newTestFinalizer(t, nil)

	failures := []domain.DocumentFailure{
		{Type: domain.DocTypeNFRD, Kind: "timeout", Detail: "draft NFRD: upstream timeout"},
	}

	result, err := finalizer.Finalize(context.Background(), "run-1",
		[]domain.DraftDocument{{Type: domain.DocTypeBRD, Body: "# BRD"}}, failures)

	require.NoError(t, err)
	assert.Equal(t, failures, result.Failures)
	assert.True(t, result.Degraded())
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 10))

	long := excerpt("0123456789abcdef", 10)
	assert.Contains(t, long, "0123456789")
	assert.Contains(t, long, "[... excerpt truncated ...]")
}

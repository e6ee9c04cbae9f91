package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
	"github.com/docsmith-labs/docsmith-cli/internal/logger"
)

// RequirementExtractor converts a raw request (plus optional code summary)
// into a structured RequirementSet. It runs exactly once per request; the
// orchestrator shares its output read-only across all drafting tasks.
type RequirementExtractor struct {
	registry *RoleRegistry
	prompts  driven.PromptStore
}

// NewRequirementExtractor creates a requirement extractor.
func NewRequirementExtractor(registry *RoleRegistry, prompts driven.PromptStore) *RequirementExtractor {
	return &RequirementExtractor{registry: registry, prompts: prompts}
}

// dispatchResponse is the expected JSON structure of the dispatcher triage.
type dispatchResponse struct {
	NeedsClarification     bool     `json:"needs_clarification"`
	DocumentTypes          []string `json:"document_types"`
	Domain                 string   `json:"domain"`
	ClarificationQuestions []string `json:"clarification_questions"`
}

// featuresResponse is the expected JSON structure of the analyst extraction.
type featuresResponse struct {
	Features      []string `json:"features"`
	OpenQuestions []string `json:"open_questions"`
}

// Extract runs the triage and analysis role calls and assembles the
// RequirementSet. extraContext carries clarification answers accumulated by
// the interactive loop; it is empty on the first pass.
//
// Upstream failures propagate unwrapped in meaning: nothing downstream can
// proceed without a requirement set, so the orchestrator treats them as
// fatal to the run.
func (e *RequirementExtractor) Extract(
	ctx context.Context,
	req domain.Request,
	codeSummary string,
	extraContext []string,
) (*domain.RequirementSet, error) {
	requestText := req.RawText
	if len(extraContext) > 0 {
		requestText += "\n\nAdditional context from clarification:\n- " +
			strings.Join(extraContext, "\n- ")
	}

	dispatch, err := e.dispatch(ctx, req, requestText)
	if err != nil {
		return nil, err
	}

	set := &domain.RequirementSet{
		DomainHint:          domain.NormalizeDomainHint(dispatch.Domain),
		ClarificationNeeded: dispatch.NeedsClarification,
		OpenQuestions:       dispatch.ClarificationQuestions,
	}
	for _, raw := range dispatch.DocumentTypes {
		set.RecommendedTypes = append(set.RecommendedTypes, domain.NormalizeDocumentType(raw))
	}

	// No recommendation and no forced type is an implicit clarification
	// signal even when the model did not flag one.
	if len(set.RecommendedTypes) == 0 && req.ForcedType == "" {
		set.ClarificationNeeded = true
		if len(set.OpenQuestions) == 0 {
			set.OpenQuestions = []string{"Which document types do you need (BRD, FRD, NFRD, CLOUD, SECURITY, API)?"}
		}
	}

	if set.ClarificationNeeded {
		logger.Info("extraction needs clarification (%d open questions)", len(set.OpenQuestions))
		return set, nil
	}

	features, err := e.analyse(ctx, requestText, codeSummary)
	if err != nil {
		return nil, err
	}
	set.Features = features.Features
	set.OpenQuestions = append(set.OpenQuestions, features.OpenQuestions...)

	logger.Info("extracted %d features, domain %q, %d recommended types",
		len(set.Features), set.DomainHint, len(set.RecommendedTypes))
	return set, nil
}

// dispatch performs the triage call with the dispatcher role.
func (e *RequirementExtractor) dispatch(ctx context.Context, req domain.Request, requestText string) (*dispatchResponse, error) {
	agent, err := e.registry.LookupOrCreate(domain.RoleDispatcher)
	if err != nil {
		return nil, err
	}

	template, err := e.prompts.Load(driven.PromptDispatch)
	if err != nil {
		return nil, fmt.Errorf("load dispatch prompt: %w", err)
	}

	payload := fmt.Sprintf(template, requestText)
	if req.ForcedType != "" {
		payload += fmt.Sprintf("\n\nThe user has pinned the document type to %s.", req.ForcedType)
	}
	if req.HasCode() {
		payload += "\n\nSource code has been provided as additional context."
	}

	res, err := agent.Invoke(ctx, payload)
	if err != nil {
		return nil, err
	}

	var out dispatchResponse
	if err := decodeModelJSON(res.Text, &out); err != nil {
		return nil, fmt.Errorf("dispatch: %w", err)
	}
	return &out, nil
}

// analyse performs the feature extraction call with the analyst role.
func (e *RequirementExtractor) analyse(ctx context.Context, requestText, codeSummary string) (*featuresResponse, error) {
	agent, err := e.registry.LookupOrCreate(domain.RoleAnalyst)
	if err != nil {
		return nil, err
	}

	template, err := e.prompts.Load(driven.PromptRequirements)
	if err != nil {
		return nil, fmt.Errorf("load requirements prompt: %w", err)
	}

	summaryBlock := "(no source code provided)"
	if codeSummary != "" {
		summaryBlock = codeSummary
	}

	res, err := agent.Invoke(ctx, fmt.Sprintf(template, requestText, summaryBlock))
	if err != nil {
		return nil, err
	}

	var out featuresResponse
	if err := decodeModelJSON(res.Text, &out); err != nil {
		return nil, fmt.Errorf("requirement analysis: %w", err)
	}
	if len(out.Features) == 0 {
		return nil, fmt.Errorf("%w: requirement analysis returned no features", domain.ErrMalformedResponse)
	}
	return &out, nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// DocumentDrafter produces one draft document body per invocation with the
// technical writer role. There are no local retries and no quality
// validation: a garbled response still becomes the body verbatim, which is
// a documented contract limitation callers must be aware of.
type DocumentDrafter struct {
	registry *RoleRegistry
	prompts  driven.PromptStore
}

// NewDocumentDrafter creates a document drafter.
func NewDocumentDrafter(registry *RoleRegistry, prompts driven.PromptStore) *DocumentDrafter {
	return &DocumentDrafter{registry: registry, prompts: prompts}
}

// Draft generates the body for one document type from the shared
// requirement set and optional code context. The returned draft always has
// SecurityReviewed false; annotation is a separate stage.
func (d *DocumentDrafter) Draft(
	ctx context.Context,
	docType domain.DocumentType,
	reqs *domain.RequirementSet,
	codeContext string,
	requestText string,
) (domain.DraftDocument, error) {
	agent, err := d.registry.LookupOrCreate(domain.RoleWriter)
	if err != nil {
		return domain.DraftDocument{}, err
	}

	template, err := d.prompts.Load(driven.PromptDraft)
	if err != nil {
		return domain.DraftDocument{}, fmt.Errorf("load draft prompt: %w", err)
	}

	if codeContext == "" {
		codeContext = "(no source code provided)"
	}

	payload := fmt.Sprintf(template,
		docType.Description(),
		renderRequirements(reqs),
		codeContext,
		requestText,
	)

	res, err := agent.Invoke(ctx, payload)
	if err != nil {
		return domain.DraftDocument{}, fmt.Errorf("draft %s: %w", docType, err)
	}

	return domain.DraftDocument{
		Type: docType,
		Body: res.Text,
		Meta: domain.GenerationMetadata{
			StartedAt:    res.StartedAt,
			FinishedAt:   res.FinishedAt,
			Model:        res.Model,
			PromptTokens: res.PromptTokens,
			OutputTokens: res.OutputTokens,
		},
	}, nil
}

// renderRequirements formats the shared requirement set as a prompt block.
func renderRequirements(reqs *domain.RequirementSet) string {
	var b strings.Builder
	if reqs.DomainHint != domain.DomainNone {
		fmt.Fprintf(&b, "Domain: %s\n", reqs.DomainHint)
	}
	if len(reqs.Features) > 0 {
		b.WriteString("Requirements:\n")
		for _, f := range reqs.Features {
			b.WriteString("- " + f + "\n")
		}
	}
	if len(reqs.OpenQuestions) > 0 {
		b.WriteString("Open questions (make reasonable assumptions):\n")
		for _, q := range reqs.OpenQuestions {
			b.WriteString("- " + q + "\n")
		}
	}
	if b.Len() == 0 {
		return "(no structured requirements extracted)"
	}
	return b.String()
}

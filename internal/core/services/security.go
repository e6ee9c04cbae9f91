package services

import (
	"context"
	"fmt"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// SecurityAnnotator appends a security and compliance section to eligible
// drafts. Eligibility is the fixed rule in domain.SecurityAnnotationRequired
// and is never derived from the user's free text, so behaviour stays
// deterministic and testable.
type SecurityAnnotator struct {
	registry *RoleRegistry
	prompts  driven.PromptStore
}

// NewSecurityAnnotator creates a security annotator.
func NewSecurityAnnotator(registry *RoleRegistry, prompts driven.PromptStore) *SecurityAnnotator {
	return &SecurityAnnotator{registry: registry, prompts: prompts}
}

// Eligible reports whether the fixed rule requires annotation for a draft.
func (a *SecurityAnnotator) Eligible(docType domain.DocumentType, hint domain.DomainHint) bool {
	return domain.SecurityAnnotationRequired(docType, hint)
}

// Annotate appends the security section and marks the draft reviewed.
// The caller is responsible for checking Eligible first; Annotate enforces
// it again so the invariant cannot be bypassed.
func (a *SecurityAnnotator) Annotate(
	ctx context.Context,
	draft domain.DraftDocument,
	reqs *domain.RequirementSet,
) (domain.DraftDocument, error) {
	if !a.Eligible(draft.Type, reqs.DomainHint) {
		return draft, fmt.Errorf("%w: document type %s is not security-sensitive",
			domain.ErrValidation, draft.Type)
	}

	agent, err := a.registry.LookupOrCreate(domain.RoleSecurityReviewer)
	if err != nil {
		return draft, err
	}

	template, err := a.prompts.Load(driven.PromptSecurityReview)
	if err != nil {
		return draft, fmt.Errorf("load security review prompt: %w", err)
	}

	hint := string(reqs.DomainHint)
	if hint == "" {
		hint = "unspecified"
	}

	res, err := agent.Invoke(ctx, fmt.Sprintf(template, hint, draft.Body))
	if err != nil {
		return draft, fmt.Errorf("security review %s: %w", draft.Type, err)
	}

	draft.Body = draft.Body + "\n\n## Security & Compliance\n\n" + res.Text
	draft.Meta.OutputTokens += domain.EstimateTokens(res.Text)
	draft.SecurityReviewed = true
	return draft, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// CodeResearcher turns a structural code outline into a prose analysis for
// prompt inclusion. It runs at most once per request, concurrently with
// requirement extraction, and only when the request carries code.
type CodeResearcher struct {
	registry *RoleRegistry
	prompts  driven.PromptStore
}

// NewCodeResearcher creates a code researcher.
func NewCodeResearcher(registry *RoleRegistry, prompts driven.PromptStore) *CodeResearcher {
	return &CodeResearcher{registry: registry, prompts: prompts}
}

// Analyze produces an architecture analysis of the outlined code base.
// The outline text is already bounded by the summariser's budget.
func (r *CodeResearcher) Analyze(ctx context.Context, summary domain.CodeSummary) (string, error) {
	agent, err := r.registry.LookupOrCreate(domain.RoleResearcher)
	if err != nil {
		return "", err
	}

	template, err := r.prompts.Load(driven.PromptCodeResearch)
	if err != nil {
		return "", fmt.Errorf("load code research prompt: %w", err)
	}

	res, err := agent.Invoke(ctx, fmt.Sprintf(template, summary.Text))
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

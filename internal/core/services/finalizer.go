package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
	"github.com/docsmith-labs/docsmith-cli/internal/logger"
)

var (
	// crlf normalises Windows line endings before any other pass.
	crlf = regexp.MustCompile(`\r\n?`)

	// tightHeading matches ATX headings missing the space after the hashes.
	tightHeading = regexp.MustCompile("(?m)^(#{1,6})([^#\\s])")

	// excessBlankLines matches runs of three or more newlines.
	excessBlankLines = regexp.MustCompile(`\n{3,}`)

	// trailingSpace matches whitespace before a line break.
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
)

// Finalizer normalises draft bodies, assembles the package result, and for
// multi-document output makes the single package summary call with the
// editor role. It performs no other LLM role logic.
type Finalizer struct {
	registry *RoleRegistry
	prompts  driven.PromptStore
	markdown goldmark.Markdown
}

// NewFinalizer creates a finalizer.
func NewFinalizer(registry *RoleRegistry, prompts driven.PromptStore) *Finalizer {
	return &Finalizer{
		registry: registry,
		prompts:  prompts,
		markdown: goldmark.New(),
	}
}

// Finalize normalises every successful draft and assembles the package.
// It is only called once all fan-out members have completed; failures are
// recorded in the result, never dropped. The summary call happens only when
// more than one document succeeded.
func (f *Finalizer) Finalize(
	ctx context.Context,
	runID string,
	docs []domain.DraftDocument,
	failures []domain.DocumentFailure,
) (*domain.PackageResult, error) {
	result := &domain.PackageResult{
		RunID:    runID,
		Failures: failures,
	}

	for _, doc := range docs {
		doc.Body = f.normalize(doc)
		result.Documents = append(result.Documents, doc)
	}

	if len(result.Documents) > 1 {
		summary, err := f.summarize(ctx, result.Documents)
		if err != nil {
			// The package is still useful without its summary; record
			// the failure instead of discarding finished documents.
			logger.Warn("package summary failed: %v", err)
			result.Failures = append(result.Failures, domain.DocumentFailure{
				Type:   domain.DocTypeGeneric,
				Kind:   domain.ErrorKind(err),
				Detail: fmt.Sprintf("package summary: %v", err),
			})
		} else {
			result.SummaryText = summary
		}
	}

	return result, nil
}

// normalize cleans whitespace and heading structure, and checks the body
// still renders as Markdown. Render failures are logged, not fatal: the
// drafter contract hands bodies through verbatim.
func (f *Finalizer) normalize(doc domain.DraftDocument) string {
	body := crlf.ReplaceAllString(doc.Body, "\n")
	body = tightHeading.ReplaceAllString(body, "$1 $2")
	body = trailingSpace.ReplaceAllString(body, "\n")
	body = excessBlankLines.ReplaceAllString(body, "\n\n")
	body = strings.TrimSpace(body) + "\n"

	if err := f.markdown.Convert([]byte(body), &strings.Builder{}); err != nil {
		logger.Warn("document %s does not render cleanly: %v", doc.Type, err)
	}
	return body
}

// summarize makes the single package summary call.
func (f *Finalizer) summarize(ctx context.Context, docs []domain.DraftDocument) (string, error) {
	agent, err := f.registry.LookupOrCreate(domain.RoleEditor)
	if err != nil {
		return "", err
	}

	template, err := f.prompts.Load(driven.PromptPackageSummary)
	if err != nil {
		return "", fmt.Errorf("load package summary prompt: %w", err)
	}

	var list strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&list, "## %s (%s)\n\n%s\n\n", doc.Type, doc.Type.Description(), excerpt(doc.Body, 1500))
	}

	res, err := agent.Invoke(ctx, fmt.Sprintf(template, list.String()))
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// excerpt bounds a document body for summary prompts.
func excerpt(body string, limit int) string {
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "\n[... excerpt truncated ...]"
}

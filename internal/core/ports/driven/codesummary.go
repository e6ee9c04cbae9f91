package driven

import (
	"context"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

// CodeSummarizer produces a bounded structural outline of source code for
// prompt inclusion. Implementations read the filesystem and never write.
type CodeSummarizer interface {
	// Summarize outlines the code named by the request (directory or
	// explicit file list) within the given character budget. The output
	// never exceeds the budget; when files are cut a truncation notice is
	// part of the text and Truncated is set.
	Summarize(ctx context.Context, req domain.Request, budget int) (domain.CodeSummary, error)
}

package driven

import (
	"context"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

// ArtifactStore writes the durable output of a run: one Markdown file per
// document, an optional package summary file, and the run log text file.
// Implementations never overwrite artifacts of other runs; file names carry
// the run timestamp and ID.
type ArtifactStore interface {
	// WriteDocument persists one generated document and returns its path.
	WriteDocument(ctx context.Context, runID string, doc domain.DraftDocument) (string, error)

	// WriteSummary persists the package summary and returns its path.
	WriteSummary(ctx context.Context, runID string, summary string) (string, error)

	// WriteRunLog persists the rendered run log and returns its path.
	WriteRunLog(ctx context.Context, log *domain.RunLog) (string, error)

	// WithOutputDir returns a store writing under dir instead of the
	// configured location. An empty dir returns the receiver unchanged.
	WithOutputDir(dir string) ArtifactStore
}

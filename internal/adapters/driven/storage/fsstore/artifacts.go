// Package fsstore persists run artifacts (generated documents, package
// summaries and run logs) as files under a configured output directory.
package fsstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes run artifacts to the local filesystem. File names
// carry the run ID, which embeds the run timestamp, so artifacts of
// different runs never collide.
type ArtifactStore struct {
	outputDir string
}

// NewArtifactStore creates an artifact store rooted at outputDir.
// If outputDir is empty, defaults to ./docsmith-output.
func NewArtifactStore(outputDir string) *ArtifactStore {
	if outputDir == "" {
		outputDir = "docsmith-output"
	}
	return &ArtifactStore{outputDir: outputDir}
}

// OutputDir returns the configured output directory.
func (s *ArtifactStore) OutputDir() string {
	return s.outputDir
}

// WithOutputDir returns a store rooted at dir. An empty dir returns the
// receiver unchanged.
func (s *ArtifactStore) WithOutputDir(dir string) driven.ArtifactStore {
	if dir == "" {
		return s
	}
	return &ArtifactStore{outputDir: dir}
}

// WriteDocument persists one generated document and returns its path.
func (s *ArtifactStore) WriteDocument(ctx context.Context, runID string, doc domain.DraftDocument) (string, error) {
	name := fmt.Sprintf("%s_%s.md", doc.Type, runID)
	return s.write(ctx, name, doc.Body)
}

// WriteSummary persists the package summary and returns its path.
func (s *ArtifactStore) WriteSummary(ctx context.Context, runID string, summary string) (string, error) {
	name := fmt.Sprintf("SUMMARY_%s.md", runID)
	return s.write(ctx, name, summary)
}

// WriteRunLog persists the rendered run log and returns its path.
func (s *ArtifactStore) WriteRunLog(ctx context.Context, log *domain.RunLog) (string, error) {
	name := fmt.Sprintf("runlog_%s.txt", log.RunID)
	return s.write(ctx, name, log.Render())
}

// write creates the output directory on first use and writes one artifact.
func (s *ArtifactStore) write(ctx context.Context, name, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", name, err)
	}
	return path, nil
}

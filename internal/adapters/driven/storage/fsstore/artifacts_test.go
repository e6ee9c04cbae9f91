package fsstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

func TestArtifactStore_WriteDocument(t *testing.T) {
	dir := t.TempDir()
	store := NewArtifactStore(dir)

	doc := domain.DraftDocument{
		Type: domain.DocTypeBRD,
		Body: "# Business Requirements\n\nContent here.\n",
	}

	path, err := store.WriteDocument(context.Background(), "20260826_101500_abcd1234", doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "BRD_20260826_101500_abcd1234.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Body, string(content))
}

func TestArtifactStore_WriteSummary(t *testing.T) {
	dir := t.TempDir()
	store := NewArtifactStore(dir)

	path, err := store.WriteSummary(context.Background(), "run-1", "Package of 3 documents.")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SUMMARY_run-1.md"), path)
}

func TestArtifactStore_WriteRunLog(t *testing.T) {
	dir := t.TempDir()
	store := NewArtifactStore(dir)

	log := domain.NewRunLog("run-1")
	log.Append("extract_requirements", log.StartedAt, domain.StepOK, "5 features")

	path, err := store.WriteRunLog(context.Background(), log)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "runlog_run-1.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Run ID: run-1")
	assert.Contains(t, string(content), "extract_requirements")
}

func TestArtifactStore_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	store := NewArtifactStore(dir)

	_, err := store.WriteSummary(context.Background(), "run-1", "text")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestArtifactStore_RunsDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	store := NewArtifactStore(dir)
	ctx := context.Background()

	doc := domain.DraftDocument{Type: domain.DocTypeFRD, Body: "first"}
	path1, err := store.WriteDocument(ctx, "run-1", doc)
	require.NoError(t, err)

	doc.Body = "second"
	path2, err := store.WriteDocument(ctx, "run-2", doc)
	require.NoError(t, err)

	assert.NotEqual(t, path1, path2)
	content, err := os.ReadFile(path1)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestArtifactStore_CancelledContext(t *testing.T) {
	store := NewArtifactStore(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.WriteSummary(ctx, "run-1", "text")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewArtifactStore_DefaultDir(t *testing.T) {
	store := NewArtifactStore("")
	assert.Equal(t, "docsmith-output", store.OutputDir())
}

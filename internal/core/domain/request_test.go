package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	t.Run("valid minimal request", func(t *testing.T) {
		req := Request{RawText: "document the checkout flow"}
		assert.NoError(t, req.Validate())
	})

	t.Run("empty text", func(t *testing.T) {
		err := Request{RawText: "   \n\t"}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown forced type", func(t *testing.T) {
		err := Request{RawText: "docs", ForcedType: DocumentType("NOVEL")}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("valid forced type", func(t *testing.T) {
		err := Request{RawText: "docs", ForcedType: DocTypeAPI}.Validate()
		assert.NoError(t, err)
	})

	t.Run("existing code directory", func(t *testing.T) {
		err := Request{RawText: "docs", CodeDir: t.TempDir()}.Validate()
		assert.NoError(t, err)
	})

	t.Run("missing code directory", func(t *testing.T) {
		err := Request{RawText: "docs", CodeDir: "/does/not/exist"}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("code path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "main.go")
		require.NoError(t, os.WriteFile(file, []byte("package main"), 0644))

		err := Request{RawText: "docs", CodeDir: file}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty file list", func(t *testing.T) {
		err := Request{RawText: "docs", CodeFiles: []string{}}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing files named in error", func(t *testing.T) {
		err := Request{RawText: "docs", CodeFiles: []string{"/missing/a.go", "/missing/b.go"}}.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "/missing/a.go")
		assert.Contains(t, err.Error(), "/missing/b.go")
	})

	t.Run("existing files", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "main.go")
		require.NoError(t, os.WriteFile(file, []byte("package main"), 0644))

		err := Request{RawText: "docs", CodeFiles: []string{file}}.Validate()
		assert.NoError(t, err)
	})

	t.Run("code dir wins over file list", func(t *testing.T) {
		// When both are set, the file list is not checked.
		err := Request{
			RawText:   "docs",
			CodeDir:   t.TempDir(),
			CodeFiles: []string{"/missing/a.go"},
		}.Validate()
		assert.NoError(t, err)
	})
}

func TestRequest_HasCode(t *testing.T) {
	assert.False(t, Request{RawText: "docs"}.HasCode())
	assert.True(t, Request{RawText: "docs", CodeDir: "src"}.HasCode())
	assert.True(t, Request{RawText: "docs", CodeFiles: []string{"main.go"}}.HasCode())
}

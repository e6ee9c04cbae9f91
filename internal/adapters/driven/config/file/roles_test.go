package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

func writeRolesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadRoleOverrides_MissingFile(t *testing.T) {
	overrides, err := LoadRoleOverrides(filepath.Join(t.TempDir(), "roles.yaml"))

	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestLoadRoleOverrides_Success(t *testing.T) {
	path := writeRolesFile(t, `
roles:
  technical_writer:
    temperature: 0.8
    max_tokens: 8192
  dispatcher:
    temperature: 0.1
`)

	overrides, err := LoadRoleOverrides(path)

	require.NoError(t, err)
	require.Len(t, overrides, 2)

	writer := overrides[domain.RoleWriter]
	require.NotNil(t, writer.Temperature)
	assert.InDelta(t, 0.8, *writer.Temperature, 0.0001)
	require.NotNil(t, writer.MaxTokens)
	assert.Equal(t, 8192, *writer.MaxTokens)

	dispatcher := overrides[domain.RoleDispatcher]
	require.NotNil(t, dispatcher.Temperature)
	assert.InDelta(t, 0.1, *dispatcher.Temperature, 0.0001)
	assert.Nil(t, dispatcher.MaxTokens)
}

func TestLoadRoleOverrides_UnknownRole(t *testing.T) {
	path := writeRolesFile(t, `
roles:
  technical_witter:
    temperature: 0.8
`)

	_, err := LoadRoleOverrides(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "technical_witter")
}

func TestLoadRoleOverrides_OutOfRangeTemperature(t *testing.T) {
	path := writeRolesFile(t, `
roles:
  editor_formatter:
    temperature: 3.5
`)

	_, err := LoadRoleOverrides(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestLoadRoleOverrides_InvalidYAML(t *testing.T) {
	path := writeRolesFile(t, "roles: [not: a: map")

	_, err := LoadRoleOverrides(path)

	assert.Error(t, err)
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

func TestRunsCmd_Use(t *testing.T) {
	assert.Equal(t, "runs", runsCmd.Use)
}

func TestRunsCmd_HasSubcommands(t *testing.T) {
	commands := runsCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "show")
}

func TestRunsListCmd_HasLimitFlag(t *testing.T) {
	flag := runsListCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)
}

func TestRunsListCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "20260101_120000_abcd1234")
	assert.Contains(t, buf.String(), "persisted")
	assert.Contains(t, buf.String(), "Document the checkout service")
	assert.Contains(t, buf.String(), "BRD, SECURITY")
}

func TestRunsListCmd_EmptyHistory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	runsService = &mockRunsService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No runs recorded.")
}

func TestRunsListCmd_ErrorsWithoutService(t *testing.T) {
	oldRuns := runsService
	runsService = nil
	defer func() {
		runsService = oldRuns
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"runs", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRunsShowCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"runs", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestRunsShowCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"runs", "show", "20260101_120000_abcd1234"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Run:     20260101_120000_abcd1234")
	assert.Contains(t, buf.String(), "State:   persisted")
	assert.Contains(t, buf.String(), "Steps:")
	assert.Contains(t, buf.String(), "accepted")
	assert.Contains(t, buf.String(), "draft_brd")
	assert.Contains(t, buf.String(), "1200 chars")
}

func TestRunsShowCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	runsService = &mockRunsService{err: domain.ErrNotFound}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"runs", "show", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "multi line", truncate("multi\nline", 20))
	assert.Equal(t, "0123...", truncate("0123456789", 7))
}

// Package cli implements the docsmith command-line interface using cobra.
// Services are injected from main before Execute runs; commands fail with a
// clear error when a required service was not configured.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driving"
	"github.com/docsmith-labs/docsmith-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services.
var (
	generationService driving.GenerationService
	settingsService   driving.SettingsService
	runsService       driving.RunHistoryService
	promptDir         string
	promptReload      func()
	llmValidator      func(*domain.AppSettings) error
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docsmith",
	Short: "Docsmith generates project documentation from natural-language requests",
	Long: `Docsmith drafts business and technical documentation (BRD, FRD, NFRD,
cloud deployment guides, security reviews, API docs) from a natural-language
request, optionally grounded in your source code.

Each run is recorded with a full audit log; see 'docsmith runs'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the CLI needs from the composition root.
type Services struct {
	Generation driving.GenerationService
	Settings   driving.SettingsService
	Runs       driving.RunHistoryService

	// PromptDir is the prompt template directory, shown by 'prompts path'.
	PromptDir string

	// PromptReload invalidates the prompt cache, used by 'prompts reload'.
	PromptReload func()

	// LLMValidator pings the configured provider, used after 'settings llm'.
	LLMValidator func(*domain.AppSettings) error
}

// SetServices injects the services the commands depend on.
func SetServices(s Services) {
	generationService = s.Generation
	settingsService = s.Settings
	runsService = s.Runs
	promptDir = s.PromptDir
	promptReload = s.PromptReload
	llmValidator = s.LLMValidator
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command. The context reaches every command via
// cmd.Context(), so a cancelled signal context stops in-flight generation.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Command docsmith is the documentation generation CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/ai"
	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/codescan"
	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/config/file"
	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/storage/fsstore"
	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/storage/memory"
	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driving/cli"
	"github.com/docsmith-labs/docsmith-cli/internal/adapters/driving/tui"
	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
	"github.com/docsmith-labs/docsmith-cli/internal/core/services"
	"github.com/docsmith-labs/docsmith-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Interrupts cancel the command context: the orchestrator stops
	// scheduling new work and flushes the run log with partial state.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load .env file (ignore error if not found)
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: initialising config: %v\n", err)
		return 1
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading settings: %v\n", err)
		return 1
	}
	applyEnvOverrides(settings)

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: initialising prompt store: %v\n", err)
		return 1
	}
	if err := promptStore.Watch(); err != nil {
		logger.Warn("prompt auto-reload disabled: %v", err)
	}
	defer promptStore.Close() //nolint:errcheck

	// Run history is best effort: a broken database never blocks generation.
	var runStore driven.RunStore
	if store, err := sqlite.NewRunStore(""); err != nil {
		logger.Warn("run history disabled: %v", err)
		runStore = memory.NewRunStore()
	} else {
		runStore = store
	}
	defer runStore.Close() //nolint:errcheck

	svcs := cli.Services{
		Settings:     settingsService,
		Runs:         services.NewRunHistoryService(runStore),
		PromptDir:    promptStore.Dir(),
		PromptReload: promptStore.Reload,
		LLMValidator: ai.ValidateLLMConfig,
	}

	// Generation needs a configured LLM; the other commands work without one.
	if llm, err := ai.CreateLLMService(settings); err != nil {
		logger.Debug("generation disabled: %v", err)
	} else {
		overrides, err := file.LoadRoleOverrides(filepath.Join(filepath.Dir(configStore.Path()), "roles.yaml"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading role overrides: %v\n", err)
			return 1
		}

		registry, err := services.NewRoleRegistry(llm, promptStore, *settings, overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: initialising role registry: %v\n", err)
			return 1
		}

		svcs.Generation = services.NewWorkflowOrchestrator(
			services.NewRequirementExtractor(registry, promptStore),
			services.NewCodeResearcher(registry, promptStore),
			codescan.NewSummarizer(),
			services.NewDocumentDrafter(registry, promptStore),
			services.NewSecurityAnnotator(registry, promptStore),
			services.NewFinalizer(registry, promptStore),
			fsstore.NewArtifactStore(settings.OutputDir),
			runStore,
			tui.NewClarifier(),
			*settings,
		)
	}

	cli.SetVersion(version)
	cli.SetServices(svcs)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error (%s): %v\n", domain.ErrorKind(err), err)
		fmt.Fprintf(os.Stderr, "Hint: %s\n", domain.RemediationHint(err))
		return 1
	}
	return 0
}

// applyEnvOverrides lets environment variables win over stored settings,
// so CI runs never need a config file.
func applyEnvOverrides(settings *domain.AppSettings) {
	if v := os.Getenv("DOCSMITH_PROVIDER"); v != "" {
		settings.Provider = domain.AIProvider(v)
	}
	if v := os.Getenv("DOCSMITH_MODEL"); v != "" {
		settings.Model = v
	}
	if v := os.Getenv("DOCSMITH_API_KEY"); v != "" {
		settings.APIKey = v
	}
	if v := os.Getenv("DOCSMITH_BASE_URL"); v != "" {
		settings.BaseURL = v
	}
	if v := os.Getenv("DOCSMITH_OUTPUT_DIR"); v != "" {
		settings.OutputDir = v
	}

	// Provider-native key variables as fallbacks.
	if settings.APIKey == "" {
		switch settings.Provider {
		case domain.AIProviderOpenAI:
			settings.APIKey = os.Getenv("OPENAI_API_KEY")
		case domain.AIProviderAnthropic:
			settings.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case domain.AIProviderOllama:
			// No key needed.
		}
	}
}

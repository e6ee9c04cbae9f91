package services

import (
	"fmt"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider   = "llm.provider"
	keyLLMModel      = "llm.model"
	keyLLMAPIKey     = "llm.api_key"
	keyLLMBaseURL    = "llm.base_url"
	keyLLMMaxTokens  = "llm.max_tokens"
	keyLLMRate       = "llm.requests_per_second"
	keyLLMBurst      = "llm.burst"
	keyOutputDir     = "output.dir"
	keySummaryBudget = "summary.budget"
	keyClarifyRounds = "clarification.rounds"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.AppSettings{
		Provider:            s.getProvider(defaults.Provider),
		Model:               s.getString(keyLLMModel, defaults.Model),
		APIKey:              s.configStore.GetString(keyLLMAPIKey),
		BaseURL:             s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
		OutputDir:           s.getString(keyOutputDir, defaults.OutputDir),
		SummaryBudget:       s.getInt(keySummaryBudget, defaults.SummaryBudget),
		MaxTokens:           s.getInt(keyLLMMaxTokens, defaults.MaxTokens),
		ClarificationRounds: s.getInt(keyClarifyRounds, defaults.ClarificationRounds),
		RequestsPerSecond:   defaults.RequestsPerSecond,
		Burst:               s.getInt(keyLLMBurst, defaults.Burst),
	}

	if raw, ok := s.configStore.Get(keyLLMRate); ok {
		switch v := raw.(type) {
		case float64:
			settings.RequestsPerSecond = v
		case int64:
			settings.RequestsPerSecond = float64(v)
		case int:
			settings.RequestsPerSecond = float64(v)
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyLLMProvider, settings.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMMaxTokens, settings.MaxTokens); err != nil {
		return fmt.Errorf("save llm max_tokens: %w", err)
	}
	if err := s.configStore.Set(keyLLMRate, settings.RequestsPerSecond); err != nil {
		return fmt.Errorf("save llm requests_per_second: %w", err)
	}
	if err := s.configStore.Set(keyLLMBurst, settings.Burst); err != nil {
		return fmt.Errorf("save llm burst: %w", err)
	}
	if err := s.configStore.Set(keyOutputDir, settings.OutputDir); err != nil {
		return fmt.Errorf("save output dir: %w", err)
	}
	if err := s.configStore.Set(keySummaryBudget, settings.SummaryBudget); err != nil {
		return fmt.Errorf("save summary budget: %w", err)
	}
	if err := s.configStore.Set(keyClarifyRounds, settings.ClarificationRounds); err != nil {
		return fmt.Errorf("save clarification rounds: %w", err)
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey, baseURL string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrValidation, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" && s.configStore.GetString(keyLLMAPIKey) == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrValidation, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Provider = provider

	// Use the provided model or fall back to the provider default.
	if model != "" {
		settings.Model = model
	} else if defaultModel, ok := domain.DefaultModels()[provider]; ok {
		settings.Model = defaultModel
	}

	if baseURL != "" {
		settings.BaseURL = baseURL
	} else if provider.IsLocal() && settings.BaseURL == "" {
		settings.BaseURL = "http://localhost:11434"
	}

	if apiKey != "" {
		settings.APIKey = apiKey
	}

	return s.Save(settings)
}

// Validate checks that the current settings can drive a run.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrValidation, settings.Provider)
	}
	if settings.Model == "" {
		return fmt.Errorf("%w: no model configured for %s", domain.ErrValidation, settings.Provider)
	}
	if settings.Provider.RequiresAPIKey() && settings.APIKey == "" {
		return fmt.Errorf("%w: %s requires an API key", domain.ErrAuth, settings.Provider)
	}
	if settings.SummaryBudget <= 0 {
		return fmt.Errorf("%w: summary budget must be positive", domain.ErrValidation)
	}
	if settings.ClarificationRounds <= 0 {
		return fmt.Errorf("%w: clarification rounds must be positive", domain.ErrValidation)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyLLMProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

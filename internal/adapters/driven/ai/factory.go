// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/docsmith-labs/docsmith-cli/internal/adapters/driven/llm/openai"
	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates the appropriate LLM service based on settings.
func CreateLLMService(settings *domain.AppSettings) (driven.LLMService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: no LLM settings", domain.ErrLLMUnavailable)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s",
			domain.ErrValidation, settings.Provider)
	}
}

// ValidateLLMConfig validates an LLM configuration by creating a service and
// pinging it. Intended for the settings commands to validate credentials on
// configuration.
func ValidateLLMConfig(settings *domain.AppSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

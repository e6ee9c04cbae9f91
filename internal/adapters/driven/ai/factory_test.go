package ai

import (
	"strings"
	"testing"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.AppSettings
		wantErr     bool
		errContains string
	}{
		{
			name:        "nil settings returns error",
			settings:    nil,
			wantErr:     true,
			errContains: "no LLM settings",
		},
		{
			name: "ollama provider creates service",
			settings: &domain.AppSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "llama3.2",
			},
			wantErr: false,
		},
		{
			name: "openai provider creates service",
			settings: &domain.AppSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
			wantErr: false,
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.AppSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
				Model:    "claude-3-5-sonnet-latest",
			},
			wantErr: false,
		},
		{
			name: "openai without API key returns error",
			settings: &domain.AppSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "gpt-4o-mini",
			},
			wantErr:     true,
			errContains: "API key",
		},
		{
			name: "unknown provider returns error",
			settings: &domain.AppSettings{
				Provider: "unknown",
				APIKey:   "test-key",
			},
			wantErr:     true,
			errContains: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc == nil {
				t.Fatal("expected non-nil service")
			}
			if svc.ModelName() != tt.settings.Model {
				t.Errorf("model = %q, want %q", svc.ModelName(), tt.settings.Model)
			}
			svc.Close()
		})
	}
}

func TestValidateLLMConfig_UnreachableOllama(t *testing.T) {
	settings := &domain.AppSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://127.0.0.1:1", // nothing listens here
		Model:    "llama3.2",
	}

	err := ValidateLLMConfig(settings)
	if err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}

func TestValidateLLMConfig_InvalidProvider(t *testing.T) {
	settings := &domain.AppSettings{
		Provider: "unknown",
		APIKey:   "test-key",
	}

	err := ValidateLLMConfig(settings)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "unsupported LLM provider") {
		t.Errorf("error should name the provider problem, got %q", err.Error())
	}
}

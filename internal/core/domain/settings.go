package domain

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API or any OpenAI-compatible
	// endpoint, including Azure OpenAI deployments via a base URL override.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderOllama:
		return "Ollama (local)"
	default:
		return "Unknown"
	}
}

// DefaultModels returns the default model for each provider.
func DefaultModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderOllama:    "llama3.2",
	}
}

// AppSettings is the persistent application configuration.
type AppSettings struct {
	// Provider selects the LLM adapter.
	Provider AIProvider

	// Model is the model or deployment name.
	Model string

	// APIKey is the provider credential. Unused by Ollama.
	APIKey string

	// BaseURL overrides the provider endpoint (Azure, proxies, local).
	BaseURL string

	// OutputDir is where generated documents and run logs are written.
	OutputDir string

	// SummaryBudget is the character budget for code summaries.
	SummaryBudget int

	// MaxTokens is the per-call output token ceiling.
	MaxTokens int

	// ClarificationRounds bounds the interactive clarification loop.
	ClarificationRounds int

	// RequestsPerSecond is the sustained LLM call rate during fan-out.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size.
	Burst int
}

// DefaultSettings returns the baseline configuration.
func DefaultSettings() AppSettings {
	return AppSettings{
		Provider:            AIProviderOpenAI,
		Model:               "gpt-4o-mini",
		OutputDir:           "outputs",
		SummaryBudget:       12000,
		MaxTokens:           4096,
		ClarificationRounds: 3,
		RequestsPerSecond:   2.0,
		Burst:               4,
	}
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
	"github.com/docsmith-labs/docsmith-cli/internal/logger"
)

// RoleOverride adjusts a role's generation parameters, typically loaded
// from a user-editable roles file.
type RoleOverride struct {
	Temperature *float64
	MaxTokens   *int
}

// RoleAgent binds one persona to the shared LLM service. Agents are created
// once by the registry and reused for every invocation of that role.
type RoleAgent struct {
	role         domain.Role
	systemPrompt string
	temperature  float64
	maxTokens    int

	llm     driven.LLMService
	limiter *rate.Limiter
}

// Role returns the agent's role.
func (a *RoleAgent) Role() domain.Role {
	return a.role
}

// InvokeResult carries the generated text and its provenance.
type InvokeResult struct {
	Text         string
	Model        string
	StartedAt    time.Time
	FinishedAt   time.Time
	PromptTokens int
	OutputTokens int
}

// Invoke performs one role invocation: the agent's persona as the system
// message and the payload as the user message. The shared rate limiter is
// awaited first so concurrent fan-out never exceeds the configured upstream
// rate; limiter waits count against the caller's context.
func (a *RoleAgent) Invoke(ctx context.Context, payload string) (InvokeResult, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return InvokeResult{}, err
	}

	started := time.Now().UTC()
	logger.Debug("invoking role %s (%d chars payload)", a.role, len(payload))

	messages := []driven.ChatMessage{
		{Role: "system", Content: a.systemPrompt},
		{Role: "user", Content: payload},
	}
	text, err := a.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return InvokeResult{}, fmt.Errorf("role %s: %w", a.role, err)
	}

	return InvokeResult{
		Text:         text,
		Model:        a.llm.ModelName(),
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
		PromptTokens: domain.EstimateTokens(a.systemPrompt + payload),
		OutputTokens: domain.EstimateTokens(text),
	}, nil
}

// RoleRegistry is the process-wide lookup-or-create table of role agents.
// It is initialised once at orchestrator startup and torn down at process
// exit; drafting logic never reaches for agents outside of it.
type RoleRegistry struct {
	mu        sync.Mutex
	llm       driven.LLMService
	prompts   driven.PromptStore
	limiter   *rate.Limiter
	maxTokens int
	overrides map[domain.Role]RoleOverride
	agents    map[domain.Role]*RoleAgent
}

// NewRoleRegistry creates a registry over the given LLM service.
// The rate limiter is shared by every agent the registry creates.
func NewRoleRegistry(
	llm driven.LLMService,
	prompts driven.PromptStore,
	settings domain.AppSettings,
	overrides map[domain.Role]RoleOverride,
) (*RoleRegistry, error) {
	if llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	rps := settings.RequestsPerSecond
	if rps <= 0 {
		rps = domain.DefaultSettings().RequestsPerSecond
	}
	burst := settings.Burst
	if burst <= 0 {
		burst = domain.DefaultSettings().Burst
	}

	return &RoleRegistry{
		llm:       llm,
		prompts:   prompts,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		maxTokens: settings.MaxTokens,
		overrides: overrides,
		agents:    make(map[domain.Role]*RoleAgent),
	}, nil
}

// LookupOrCreate returns the agent for a role, creating it on first use.
func (r *RoleRegistry) LookupOrCreate(role domain.Role) (*RoleAgent, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, string(role))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if agent, ok := r.agents[role]; ok {
		return agent, nil
	}

	systemPrompt, err := r.prompts.Load(driven.RolePrompt(role.String()))
	if err != nil {
		return nil, fmt.Errorf("load persona for role %s: %w", role, err)
	}

	agent := &RoleAgent{
		role:         role,
		systemPrompt: systemPrompt,
		temperature:  role.DefaultTemperature(),
		maxTokens:    r.maxTokens,
		llm:          r.llm,
		limiter:      r.limiter,
	}
	if o, ok := r.overrides[role]; ok {
		if o.Temperature != nil {
			agent.temperature = *o.Temperature
		}
		if o.MaxTokens != nil {
			agent.maxTokens = *o.MaxTokens
		}
	}

	r.agents[role] = agent
	logger.Debug("registered role agent %s (temp %.1f)", role, agent.temperature)
	return agent, nil
}

// Roles lists the roles with instantiated agents.
func (r *RoleRegistry) Roles() []domain.Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	roles := make([]domain.Role, 0, len(r.agents))
	for role := range r.agents {
		roles = append(roles, role)
	}
	return roles
}

// Close tears the registry down and releases the underlying LLM service.
func (r *RoleRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents = make(map[domain.Role]*RoleAgent)
	return r.llm.Close()
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// --- Mock implementations shared by the service tests ---

// mockPromptStore serves fixed templates with the placeholder counts the
// services expect. Persona prompts encode the role name so mockLLM can tell
// which agent is calling.
type mockPromptStore struct {
	missing map[string]bool
	reloads int
}

func (s *mockPromptStore) Load(name string) (string, error) {
	if s.missing[name] {
		return "", fmt.Errorf("prompt %s not found", name)
	}
	switch name {
	case driven.PromptDispatch:
		return "Dispatch:\n%s", nil
	case driven.PromptRequirements:
		return "Request:\n%s\nCode:\n%s", nil
	case driven.PromptCodeResearch:
		return "Outline:\n%s", nil
	case driven.PromptDraft:
		return "Draft a %s.\nRequirements:\n%s\nCode:\n%s\nRequest:\n%s", nil
	case driven.PromptSecurityReview:
		return "Domain: %s\nBody:\n%s", nil
	case driven.PromptPackageSummary:
		return "Documents:\n%s", nil
	}
	// Persona prompts: role_<name>.
	return "persona:" + strings.TrimPrefix(name, "role_"), nil
}

func (s *mockPromptStore) Reload() { s.reloads++ }

// mockLLM scripts responses per role. The role is recovered from the persona
// system prompt mockPromptStore produces.
type mockLLM struct {
	mu      sync.Mutex
	respond func(role, payload string) (string, error)
	calls   map[string]int
	closed  bool
}

func newMockLLM(respond func(role, payload string) (string, error)) *mockLLM {
	if respond == nil {
		respond = defaultResponder()
	}
	return &mockLLM{respond: respond, calls: make(map[string]int)}
}

// defaultResponder answers every role with a plausible success payload.
func defaultResponder() func(role, payload string) (string, error) {
	return func(role, payload string) (string, error) {
		switch domain.Role(role) {
		case domain.RoleDispatcher:
			return `{"needs_clarification": false, "document_types": ["BRD", "API"], "domain": "ecommerce"}`, nil
		case domain.RoleAnalyst:
			return `{"features": ["guest checkout", "card payments"], "open_questions": []}`, nil
		case domain.RoleResearcher:
			return "Layered architecture with a storage core.", nil
		case domain.RoleWriter:
			return "# Document\n\nGenerated body.", nil
		case domain.RoleSecurityReviewer:
			return "Threat model and compliance notes.", nil
		case domain.RoleEditor:
			return "Package overview.", nil
		default:
			return "", fmt.Errorf("unexpected role %q", role)
		}
	}
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	role := strings.TrimPrefix(messages[0].Content, "persona:")
	m.mu.Lock()
	m.calls[role]++
	m.mu.Unlock()
	return m.respond(role, messages[1].Content)
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	return m.respond("", prompt)
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }

func (m *mockLLM) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// callCount returns how many times a role was invoked.
func (m *mockLLM) callCount(role domain.Role) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[role.String()]
}

// mockSummarizer implements driven.CodeSummarizer. A gate channel, when set,
// holds Summarize until closed so tests can order the code pipeline against
// extraction deterministically.
type mockSummarizer struct {
	summary domain.CodeSummary
	err     error
	gate    chan struct{}
	calls   int
}

func (m *mockSummarizer) Summarize(_ context.Context, _ domain.Request, _ int) (domain.CodeSummary, error) {
	m.calls++
	if m.gate != nil {
		<-m.gate
	}
	if m.err != nil {
		return domain.CodeSummary{}, m.err
	}
	return m.summary, nil
}

// mockArtifactStore records writes instead of touching the filesystem.
type mockArtifactStore struct {
	mu       sync.Mutex
	dir      string
	docs     map[domain.DocumentType]domain.DraftDocument
	summary  string
	runLogs  []*domain.RunLog
	writeErr error
}

func newMockArtifactStore() *mockArtifactStore {
	return &mockArtifactStore{docs: make(map[domain.DocumentType]domain.DraftDocument)}
}

func (s *mockArtifactStore) WriteDocument(_ context.Context, runID string, doc domain.DraftDocument) (string, error) {
	if s.writeErr != nil {
		return "", s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Type] = doc
	return fmt.Sprintf("%s_%s.md", doc.Type, runID), nil
}

func (s *mockArtifactStore) WriteSummary(_ context.Context, runID string, summary string) (string, error) {
	if s.writeErr != nil {
		return "", s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
	return fmt.Sprintf("SUMMARY_%s.md", runID), nil
}

func (s *mockArtifactStore) WriteRunLog(_ context.Context, log *domain.RunLog) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runLogs = append(s.runLogs, log)
	return fmt.Sprintf("runlog_%s.txt", log.RunID), nil
}

func (s *mockArtifactStore) WithOutputDir(dir string) driven.ArtifactStore {
	if dir == "" {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir = dir
	return s
}

// scriptedClarifier implements driving.Clarifier with canned answers.
type scriptedClarifier struct {
	answers []string
	proceed bool
	err     error
	calls   int
}

func (c *scriptedClarifier) Ask(_ context.Context, _ []string) (string, bool, error) {
	c.calls++
	if c.err != nil {
		return "", false, c.err
	}
	if c.proceed || len(c.answers) == 0 {
		return "", true, nil
	}
	answer := c.answers[0]
	if len(c.answers) > 1 {
		c.answers = c.answers[1:]
	}
	return answer, false, nil
}

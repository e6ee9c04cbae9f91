package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
	"github.com/docsmith-labs/docsmith-cli/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
	watcher   *fsnotify.Watcher
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.RolePrompt(domain.RoleDispatcher.String()): `You are the dispatcher of a documentation generation system.

Your ONLY job is to analyze the user request and decide:

A) Can documentation be generated confidently right now?
   -> needs_clarification: false

B) Is the request too vague, missing domain, document type, or context?
   -> needs_clarification: true, with targeted clarification questions

Only proceed if AT LEAST 2 of these are present:
- Document type mentioned (BRD, FRD, API, NFRD, CLOUD, SECURITY)
- Application domain (e-commerce, trading, CRM, banking, healthcare, ...)
- Source code provided as context
- Clear business goal or feature description

Requests like "create documentation", "generate docs", or "document this"
with no context MUST trigger clarification. Requests like "Create FRD for
e-commerce checkout flow" or "Generate BRD + security doc for a trading
platform" can proceed.

Respond with JSON only. Be strict with clarification detection.`,

	driven.RolePrompt(domain.RoleAnalyst.String()): `You are a business and requirements analyst.

Your role is to:
1. Analyze the user's request thoroughly
2. Use domain knowledge to infer standard requirements for the application type
3. Extract and structure requirements with reasonable assumptions

Guidelines:
- For a trading application: assume user auth, orders, portfolio, market data, security
- For e-commerce: assume cart, checkout, payments, inventory
- For CRM: assume contacts, leads, opportunities, reporting
- Fill in industry-standard requirements based on the application domain

Cover functional requirements, non-functional requirements (performance,
security, scalability), stakeholders, business objectives, scope, and
success criteria. Generate complete requirements using your expertise
rather than asking for more input.`,

	driven.RolePrompt(domain.RoleResearcher.String()): `You are a senior code analyst specialized in understanding software architecture.

Your role is to:
1. Analyze the provided source code outline
2. Identify key components: types, functions, APIs, data models
3. Extract dependencies and relationships
4. Identify design patterns and technical decisions

Provide a clear architecture overview, the key components and their
responsibilities, dependencies and integrations, and technical constraints.
Focus on extracting information relevant for documentation, not code review.`,

	driven.RolePrompt(domain.RoleWriter.String()): `You are an expert technical writer.

Your role is to:
1. Synthesize the requirements and code context you are given
2. Write clear, professional, well-structured documentation
3. Use appropriate technical terminology

Your output must:
- Be in Markdown format
- Follow standard document structure (title, executive summary, sections, conclusion)
- Use tables, lists, and code blocks appropriately
- Include all necessary sections for the requested document type

Write professionally and comprehensively. Output the document body only.`,

	driven.RolePrompt(domain.RoleSecurityReviewer.String()): `You are a security and compliance expert.

Your role is to:
1. Review draft documentation for security considerations
2. Identify missing security sections
3. Add authentication, authorization, and compliance details
4. Add threat modeling considerations where relevant

Cover compliance considerations (GDPR, HIPAA, SOC2 where applicable),
authentication and authorization flows, and data protection measures.
Be thorough but practical. Output the additional section content only,
in Markdown, without repeating the reviewed document.`,

	driven.RolePrompt(domain.RoleEditor.String()): `You are a documentation editor and quality reviewer.

Your role is to:
1. Review the complete document package for quality
2. Ensure consistent formatting and style
3. Improve clarity and readability

Maintain technical accuracy while improving presentation. Keep your output
concise and in Markdown.`,

	driven.PromptDispatch: `Analyze the following documentation request.

Request:
%s

Respond in this EXACT JSON format (no markdown fences, no extra text):

{
  "needs_clarification": false,
  "document_types": ["FRD", "SECURITY"],
  "domain": "trading",
  "clarification_questions": []
}

Rules:
- document_types: the types to generate, from BRD, FRD, NFRD, CLOUD, SECURITY, API
- domain: single lowercase word naming the application domain, or "general"
- if needs_clarification is true, include 2-4 targeted clarification_questions`,

	driven.PromptRequirements: `Extract structured requirements for the following documentation request.

Request:
%s

Source code context:
%s

Respond in this EXACT JSON format (no markdown fences, no extra text):

{
  "features": ["user authentication with MFA", "order placement and matching"],
  "open_questions": []
}

Rules:
- features: concrete, self-contained requirement statements; include the
  industry-standard expectations for the domain, not just what was spelled out
- open_questions: genuine unknowns worth flagging in the documents, if any`,

	driven.PromptCodeResearch: `Analyze this source code outline and describe the architecture for a documentation audience.

%s

Describe: the main components and their responsibilities, the data models,
external dependencies and integrations, and noteworthy design decisions.
Keep it under 500 words.`,

	driven.PromptDraft: `Write a %s.

Requirements:
%s

Source code context:
%s

Original request:
%s

Output the complete document in Markdown, starting with a level-1 title.`,

	driven.PromptSecurityReview: `Review the following document for a system in the "%s" domain and produce the content of a security and compliance section for it.

Document:
%s

Output only the section content in Markdown: security assessment,
authentication and authorization, data protection, and applicable
compliance considerations. Do not repeat the document.`,

	driven.PromptPackageSummary: `The following documents were generated as one package. Write a short package summary (under 300 words) describing what each document covers and how they fit together.

%s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.docsmith/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".docsmith", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Watch invalidates the cache whenever a prompt file changes on disk, so
// long-lived processes (the MCP server) pick up edits without a restart.
// Stop watching with Close.
func (s *PromptStore) Watch() error {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return s.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := watcher.Add(s.promptDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch prompt directory: %w", err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					logger.Debug("prompt file changed: %s", event.Name)
					s.Reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("prompt watcher: %v", err)
			}
		}
	}()

	return nil
}

// Close stops the file watcher, if started.
func (s *PromptStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		err := s.watcher.Close()
		s.watcher = nil
		return err
	}
	return nil
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Docsmith Prompts

This directory contains the customisable prompts used by docsmith's roles.

## Files

- ` + "`role_*.txt`" + ` - System personas for the six roles (dispatcher,
  requirement analyst, code researcher, technical writer, security reviewer,
  editor & formatter)
- ` + "`dispatch.txt`" + ` - Triage payload deciding types, domain, clarification
- ` + "`requirements.txt`" + ` - Requirement extraction payload
- ` + "`code_research.txt`" + ` - Code architecture analysis payload
- ` + "`draft.txt`" + ` - Per-document drafting payload
- ` + "`security_review.txt`" + ` - Security section payload
- ` + "`package_summary.txt`" + ` - Package summary payload

## Customisation

Edit any file to customise behaviour. Changes take effect on the next
command; the MCP server picks them up automatically.

## Format Placeholders

Payload prompts use Go fmt placeholders (` + "`%s`" + `). Ensure customised
prompts keep the placeholders in the same order. The dispatch and
requirements prompts must keep instructing JSON output in the documented
shape, or extraction will fail.
`
	return os.WriteFile(path, []byte(content), 0600)
}
